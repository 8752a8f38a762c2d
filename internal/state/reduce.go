package state

// Reduce returns the state that follows s under a, plus the request the
// action calls for. It never performs I/O. Mutating actions leave s
// unchanged; their effect becomes visible once the server's next snapshot
// arrives through SetTalks. Unknown actions are a no-op.
func Reduce(s AppState, a Action) (AppState, Command) {
	switch a := a.(type) {
	case SetUser:
		s.User = a.User
		return s, nil
	case SetTalks:
		s.Talks = a.Talks
		return s, nil
	case NewTalk:
		return s, PutTalk{Title: a.Title, Presenter: s.User, Summary: a.Summary}
	case DeleteTalk:
		return s, RemoveTalk{Title: a.Talk}
	case NewComment:
		return s, PostComment{Talk: a.Talk, Author: s.User, Message: a.Message}
	}
	return s, nil
}
