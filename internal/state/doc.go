// Package state holds the client's application state and the pure reducer
// that advances it.
//
// # Overview
//
// Everything the client knows is an AppState: the display name and the
// last talk list observed from the server. State changes only through
// actions, and the only function that computes a next state is Reduce.
//
// # Actions
//
// The Action set is closed (an unexported marker method):
//
//   - SetUser{User}: change the display name
//   - SetTalks{Talks}: replace the list with a server snapshot
//   - NewTalk{Title, Summary}: propose a talk
//   - DeleteTalk{Talk}: remove a talk
//   - NewComment{Talk, Message}: comment on a talk
//
// # Commands
//
// Reduce performs no I/O. Mutating actions return the state unchanged
// together with a Command describing the request to issue:
//
//	NewTalk    → PutTalk      PUT    /talks/{title}          {presenter, summary}
//	DeleteTalk → RemoveTalk   DELETE /talks/{title}
//	NewComment → PostComment  POST   /talks/{title}/comments {author, message}
//
// The presenter and author come from the state's current User. The new talk
// or comment shows up only when the long-poll loop delivers the server's
// next snapshot as SetTalks.
//
// SetUser and SetTalks return no Command. Persisting the display name is
// done by the dispatcher, outside Reduce.
//
// Unknown actions return the state unchanged and no Command.
//
// # Sync Status
//
// SyncStatus is a small thread-safe store the long-poll loop writes and the
// UI reads: last update time, last error and consecutive failures. Its
// Snapshot returns copies, so readers never share the stored error.
//
//	status := &state.SyncStatus{}
//	status.RecordFailure(err)
//	if status.Snapshot().IsOffline() {
//		// two or more failures in a row
//	}
//
// # Ownership
//
// AppState values are replaced, never edited in place: the dispatcher is the
// single writer. Clone copies the talk slice before handing a state to
// another goroutine.
package state
