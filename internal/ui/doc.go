// Package ui provides the terminal dashboard for logtop.
//
// # Overview
//
// The UI is a Bubble Tea program. It never touches the monitored files: it
// renders the latest state.Snapshot published by the coordinator and reports
// what the user is looking at through a state.View.
//
// # Data Flow
//
//	coordinator --Publish--> state.Store --SnapshotMsg--> Model.Update
//	Model.Update --Resize/Select/Rendered--> state.View --inbox--> coordinator
//
// The coordinator sends a SnapshotMsg after each publish. The model fetches
// the snapshot, draws it, and acknowledges the sequence number with
// View.Rendered. Change markers on files other than the selected one are
// cleared only after that acknowledgement, so a marker is never dropped for
// a change the user has not seen.
//
// # Views
//
//   - File list: one row per file with a change marker, the name and the
//     last line of the file clipped to the terminal width.
//   - Detail: a bordered box titled "[name]" showing as much of the end of
//     the file as fits. Up and down keep moving the list cursor while the
//     box is open; any other key closes it.
//   - Help: key reference overlay.
//
// # Themes
//
// Three color themes are built in (Nightfox, Kanagawa, Slate). T cycles
// them and the choice is saved to the preferences file.
package ui
