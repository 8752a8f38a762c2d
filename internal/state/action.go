package state

import "github.com/five82/skillshare/internal/talks"

// Action is a user or network intent. The set is closed: only the types in
// this file implement it.
type Action interface {
	action()
}

// SetUser changes the display name.
type SetUser struct {
	User string
}

// SetTalks replaces the talk list with a server snapshot.
type SetTalks struct {
	Talks []talks.Talk
}

// NewTalk proposes a talk under the current display name.
type NewTalk struct {
	Title   string
	Summary string
}

// DeleteTalk removes a talk by title.
type DeleteTalk struct {
	Talk string
}

// NewComment adds a comment under the current display name.
type NewComment struct {
	Talk    string
	Message string
}

func (SetUser) action()    {}
func (SetTalks) action()   {}
func (NewTalk) action()    {}
func (DeleteTalk) action() {}
func (NewComment) action() {}
