// Package registry holds the ordered set of monitored files and their state.
//
// # Overview
//
// Open turns the config entries into open file handles, in config order.
// Entries that cannot be opened are logged and skipped for the rest of the
// run; when none can be opened Open fails with ErrNoFiles.
//
// # Change markers
//
// Each File carries a marker that moves Unchanged → Updated when a change is
// observed. It moves back only after the text extracted for that change has
// reached the screen:
//
//   - MarkPublished records the snapshot that carried the text
//   - Acknowledge clears the marker once the UI has drawn that snapshot
//   - ClearMarker clears it directly for the file open in the detail pane
//
// # Ownership
//
// A Registry is owned by the coordinator goroutine; nothing in it is safe for
// concurrent use. The UI only ever sees copies published through state.Store.
package registry
