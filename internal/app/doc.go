// Package app wires the skillshare client together and coordinates state.
//
// # Composition
//
// Build is the composition root shared by both front ends:
//
//	config.Config
//	   ├── talks.Client (poll timeout = wait + grace) ──> longpoll.Poller
//	   ├── talks.Client (request timeout) ──────────────> effects.Executor
//	   ├── prefs.File (display name)
//	   └── Coordinator (reducer + executor + view)
//
// Run drives the Bubble Tea view with the sync loop in the background.
// Oneshot serves the CLI subcommands: one fetch, a few dispatches, then it
// waits for the executor to drain.
//
// # Coordinator
//
// The Coordinator owns the only AppState. Dispatch takes a mutex, runs
// state.Reduce, stores the result, persists SetUser through the NameStore,
// hands any Command to the Effector and calls View.Sync. The sync loop and
// the view are the two producers; the mutex keeps their dispatches from
// interleaving.
//
// Until the first talk list arrives there is no state and dispatches are
// dropped. The first Update builds the state from the persisted name
// (falling back to state.DefaultUser); later updates dispatch SetTalks.
//
// View.Sync runs with the lock held. Views must hand the state to their own
// event loop and dispatch from elsewhere.
package app
