// Package source produces the event stream that drives the coordinator.
//
// # Overview
//
// A Source merges three kinds of input into one blocking Next call:
//
//   - file changes, from fsnotify (Notify) or from stat polling (Poll)
//   - requests from the UI (resize, detail toggles, selection moves and
//     render acknowledgements), posted through an Inbox
//   - a periodic Rescan that makes the coordinator re-stat every file
//
// Both variants check the Inbox before anything else so that a key press
// wakes the coordinator immediately instead of waiting for the next poll
// tick. Next returns promptly with ctx.Err() when the context is cancelled.
//
// # Variants
//
// Notify keeps one fsnotify watch per file. Write, Create and Chmod events
// become FileChanged; Remove and Rename become FileChanged with Replaced set,
// after which the coordinator reopens the path and calls Rewatch. Watcher
// errors surface as Error events and the loop carries on.
//
// Poll stats every path each PollInterval (25ms unless configured) and emits
// FileChanged for each file whose modification time or size moved, with
// Replaced set when a different file now lives at the path. A path that can
// no longer be stat'ed is fatal and reported as ErrVanished.
//
// New picks the variant from a Mode. ModeAuto means Notify on platforms
// fsnotify supports and Poll elsewhere; an explicit mode that fails to start
// is an error, there is no fallback.
package source
