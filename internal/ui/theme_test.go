package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesDefineEverySyncColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, s := range []string{syncConnecting, syncLive, syncRetrying, syncOffline} {
			if th.SyncColors[s] == "" {
				t.Fatalf("theme %s has no color for %q", name, s)
			}
		}
	}
}

func TestSyncState(t *testing.T) {
	cases := []struct {
		name string
		in   syncView
		want string
	}{
		{"before first poll", syncView{}, syncConnecting},
		{"live", syncView{live: true}, syncLive},
		{"one failure", syncView{live: true, failures: 1}, syncRetrying},
		{"offline", syncView{live: true, failures: 2, offline: true}, syncOffline},
	}
	for _, tc := range cases {
		if got := syncState(tc.in); got != tc.want {
			t.Fatalf("%s: syncState = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Unifying error handling", 10); got != "Unifyin..." {
		t.Fatalf("truncate = %q, want %q", got, "Unifyin...")
	}
	if got := truncate("Go", 10); got != "Go" {
		t.Fatalf("truncate short = %q, want Go", got)
	}
	if got := truncate("anything", 0); got != "" {
		t.Fatalf("truncate(0) = %q, want empty", got)
	}
}

func TestFreshnessStyleFollowsSyncState(t *testing.T) {
	theme := GetTheme("Nightfox")
	styles := theme.Styles()
	tests := []struct {
		state string
		want  string
	}{
		{syncLive, theme.Success},
		{syncRetrying, theme.Warning},
		{syncOffline, theme.Danger},
		{syncConnecting, theme.Muted},
	}
	for _, tt := range tests {
		got := freshnessStyle(styles, tt.state).GetForeground()
		if got != lipgloss.Color(tt.want) {
			t.Fatalf("freshnessStyle(%s) foreground = %v, want %s", tt.state, got, tt.want)
		}
	}
}
