package state

import "github.com/five82/skillshare/internal/talks"

// DefaultUser is the display name used until the user picks one.
const DefaultUser = "Anon"

// AppState is the client's view of the world. It is replaced, never
// mutated in place.
type AppState struct {
	User  string
	Talks []talks.Talk
}

// New builds the initial state, falling back to DefaultUser when no name is
// stored. Any non-empty name, whitespace included, is kept verbatim.
func New(user string, list []talks.Talk) AppState {
	if user == "" {
		user = DefaultUser
	}
	return AppState{User: user, Talks: list}
}

// Clone returns a copy whose talk slice can be handed to another goroutine.
// Comments are immutable so their slices are shared.
func (s AppState) Clone() AppState {
	if s.Talks == nil {
		return s
	}
	dup := make([]talks.Talk, len(s.Talks))
	copy(dup, s.Talks)
	s.Talks = dup
	return s
}
