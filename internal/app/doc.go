// Package app wires logtop together and runs the update coordinator.
//
// # Overview
//
// Run is the composition root. It loads the file list, opens the registry,
// starts a change source, and runs the Bubble Tea program alongside the
// Coordinator until the user quits or a fatal error occurs.
//
// # Startup
//
//  1. Load the file list (config.Load); an unreadable list is fatal.
//  2. Open every listed file (registry.Open); files that cannot be opened
//     are skipped with a warning, and an empty registry is fatal.
//  3. Start the change source in the resolved mode (notify or poll).
//  4. Create the shared state.Store and state.View.
//  5. Start the coordinator goroutine and the UI.
//
// # Coordinator
//
// The Coordinator is the only goroutine that touches monitored files. Each
// pass it reads the view state, extracts the tail of every file marked
// pending within the byte budget, publishes a snapshot when anything visible
// changed, and then blocks on the source for the next event.
//
// Change markers follow two rules:
//
//   - the file shown in the detail pane is cleared when it is published,
//     since the user is looking at it
//   - every other file is cleared once the UI acknowledges a snapshot that
//     contains its latest change
//
// A stat failure on a monitored path, or a replaced file that cannot be
// reopened, stops the coordinator. The error is sent to the UI as a
// ui.FatalMsg and returned from Run.
package app
