// Package ui is the Bubble Tea terminal view for skillshare.
//
// # Overview
//
// The view renders the coordinator's state and turns key presses into
// actions. It owns no talk data of its own: every list it draws arrived
// through Program.Sync, and every change the user asks for leaves through
// Options.Dispatch.
//
// # Layout
//
//	┌──────────────────────────────────────────────────────┐
//	│ skillshare  LIVE  as Dana  3 talks  14:02:11         │ header
//	│ n:New  c:Comment  d:Delete  u:Name  j/down:Navigate  │ command bar
//	│ Error: PUT /talks/Rust failed with status 409        │ banner (optional)
//	│  Rust  by Anon                                       │
//	│    intro                                             │ talk list
//	│      Dana: looking forward                           │ (viewport)
//	└──────────────────────────────────────────────────────┘
//
// # Threading
//
// Sync and Report are called from other goroutines and forward to the
// event loop with tea.Program.Send. The coordinator holds its lock while
// calling Sync, so Update never calls it directly. New puts a queue in
// front of Options.Dispatch: Update only enqueues, and a single worker
// dispatches in the order the user acted.
//
// # Themes
//
// Nightfox, Kanagawa and Slate palettes. T cycles them and the choice is
// written to the prefs file next to the display name.
package ui
