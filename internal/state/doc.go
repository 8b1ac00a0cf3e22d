// Package state holds the two pieces of state shared between the coordinator
// goroutine and the bubbletea program.
//
// # Overview
//
// Data flows in both directions, each guarded by its own mutex:
//
//	Coordinator                         UI
//	┌──────────────────┐               ┌──────────────────┐
//	│ extract tails    │               │                  │
//	│ store.Publish()  │──────────────→│ store.Snapshot() │
//	│                  │   (RWMutex)   │ render           │
//	│ view.Load()      │←──────────────│ view.Select()    │
//	│                  │    (Mutex)    │ view.Resize()    │
//	└──────────────────┘               └──────────────────┘
//
// Store carries published file rows and the detail tail from the
// coordinator to the UI. View carries the cursor, the selected file, the
// detail area size and the last rendered snapshot back to the coordinator.
//
// # Store
//
// Publish replaces the rows and detail in one step and bumps a sequence
// number. RecordError keeps the previous data and records the error, the same
// way a failed poll keeps the last good data on screen. Snapshot returns deep
// copies so the UI can hold on to a snapshot while the next one is built.
//
// # View
//
// Every View mutator posts a request into the source.Inbox after releasing the
// lock. The coordinator does not read the event payload for anything but
// Rendered; it reloads the whole ViewState instead, so coalesced requests
// never lose information.
//
// The byte budget for tail extraction is Rows × Cols of the detail content
// area. It stays 0 until the first WindowSizeMsg, and files stay pending until
// it is known.
//
// # Testing Considerations
//
// Store is safe to use as a zero value. View needs NewView because the closed
// detail pane is Selected == -1.
package state
