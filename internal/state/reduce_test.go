package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/skillshare/internal/talks"
)

func sampleState() AppState {
	return AppState{
		User: "Anon",
		Talks: []talks.Talk{{
			Title:     "Rust",
			Presenter: "Anon",
			Summary:   "intro",
			Comments:  []talks.Comment{{Author: "Bea", Message: "hi"}},
		}},
	}
}

func TestReduce_SetTalksReplacesOnlyTalks(t *testing.T) {
	s := sampleState()
	next := []talks.Talk{{Title: "Go", Presenter: "Cy", Summary: "gophers"}}

	got, cmd := Reduce(s, SetTalks{Talks: next})
	if cmd != nil {
		t.Fatalf("SetTalks produced command %#v, want none", cmd)
	}
	if diff := cmp.Diff(AppState{User: s.User, Talks: next}, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	// Replace, not merge: an empty snapshot clears the list.
	got, _ = Reduce(got, SetTalks{Talks: []talks.Talk{}})
	if len(got.Talks) != 0 {
		t.Fatalf("Talks = %v, want empty after empty snapshot", got.Talks)
	}
}

func TestReduce_SetTalksIsIdempotent(t *testing.T) {
	s := sampleState()
	list := []talks.Talk{{Title: "Go"}}

	once, _ := Reduce(s, SetTalks{Talks: list})
	twice, _ := Reduce(once, SetTalks{Talks: list})
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("repeated SetTalks changed state (-once +twice):\n%s", diff)
	}
}

func TestReduce_SetUserReplacesOnlyUser(t *testing.T) {
	s := sampleState()

	got, cmd := Reduce(s, SetUser{User: "Dana"})
	if cmd != nil {
		t.Fatalf("SetUser produced command %#v, want none", cmd)
	}
	if diff := cmp.Diff(AppState{User: "Dana", Talks: s.Talks}, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_MutationsLeaveStateAndEmitOneCommand(t *testing.T) {
	cases := []struct {
		name   string
		action Action
		want   Command
		method string
		path   string
	}{
		{
			name:   "new talk",
			action: NewTalk{Title: "Rust", Summary: "intro"},
			want:   PutTalk{Title: "Rust", Presenter: "Anon", Summary: "intro"},
			method: "PUT",
			path:   "/talks/Rust",
		},
		{
			name:   "new talk with awkward title",
			action: NewTalk{Title: "C/C++ tips", Summary: ""},
			want:   PutTalk{Title: "C/C++ tips", Presenter: "Anon"},
			method: "PUT",
			path:   "/talks/C%2FC++%20tips",
		},
		{
			name:   "empty title is sent as-is",
			action: NewTalk{},
			want:   PutTalk{Presenter: "Anon"},
			method: "PUT",
			path:   "/talks/",
		},
		{
			name:   "delete talk",
			action: DeleteTalk{Talk: "Rust"},
			want:   RemoveTalk{Title: "Rust"},
			method: "DELETE",
			path:   "/talks/Rust",
		},
		{
			name:   "new comment",
			action: NewComment{Talk: "Rust", Message: "great"},
			want:   PostComment{Talk: "Rust", Author: "Anon", Message: "great"},
			method: "POST",
			path:   "/talks/Rust/comments",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sampleState()
			got, cmd := Reduce(s, tc.action)
			if diff := cmp.Diff(s, got); diff != "" {
				t.Fatalf("state changed (-before +after):\n%s", diff)
			}
			if diff := cmp.Diff(tc.want, cmd); diff != "" {
				t.Fatalf("command mismatch (-want +got):\n%s", diff)
			}
			if cmd.Method() != tc.method || cmd.Path() != tc.path {
				t.Fatalf("request = %s %s, want %s %s", cmd.Method(), cmd.Path(), tc.method, tc.path)
			}
		})
	}
}

func TestReduce_CommandsUseCurrentUser(t *testing.T) {
	s, _ := Reduce(sampleState(), SetUser{User: "Dana"})

	_, cmd := Reduce(s, NewComment{Talk: "Rust", Message: "hi"})
	if c, ok := cmd.(PostComment); !ok || c.Author != "Dana" {
		t.Fatalf("command = %#v, want PostComment by Dana", cmd)
	}
	_, cmd = Reduce(s, NewTalk{Title: "Zig"})
	if c, ok := cmd.(PutTalk); !ok || c.Presenter != "Dana" {
		t.Fatalf("command = %#v, want PutTalk by Dana", cmd)
	}
}

type wrappedAction struct {
	SetUser
}

func TestReduce_UnknownActionIsNoop(t *testing.T) {
	s := sampleState()
	for _, a := range []Action{nil, wrappedAction{SetUser{User: "Eve"}}} {
		got, cmd := Reduce(s, a)
		if cmd != nil {
			t.Fatalf("Reduce(%#v) command = %#v, want none", a, cmd)
		}
		if diff := cmp.Diff(s, got); diff != "" {
			t.Fatalf("Reduce(%#v) changed state (-before +after):\n%s", a, diff)
		}
	}
}

func TestClone_CopiesTalkSlice(t *testing.T) {
	s := sampleState()
	c := s.Clone()
	c.Talks[0].Title = "changed"
	if s.Talks[0].Title != "Rust" {
		t.Fatalf("Clone shares talk slice with original")
	}
}
