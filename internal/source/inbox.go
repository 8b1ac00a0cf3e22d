package source

import "sync"

// Inbox carries UI requests into a Source's wait set. Post never blocks.
type Inbox struct {
	mu    sync.Mutex
	queue []Event
	wake  chan struct{}
}

// NewInbox returns an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{wake: make(chan struct{}, 1)}
}

// Post queues ev and wakes the waiting source. Requests that only say "look
// at the view state again" replace an earlier queued request of the same kind
// instead of piling up.
func (in *Inbox) Post(ev Event) {
	in.mu.Lock()
	merged := false
	switch ev.Kind {
	case ResizeRequested, SelectionChanged, DetailToggled, Rendered:
		for i := range in.queue {
			if in.queue[i].Kind != ev.Kind {
				continue
			}
			if ev.Kind == Rendered && in.queue[i].Seq > ev.Seq {
				ev.Seq = in.queue[i].Seq
			}
			in.queue[i] = ev
			merged = true
			break
		}
	}
	if !merged {
		in.queue = append(in.queue, ev)
	}
	in.mu.Unlock()

	select {
	case in.wake <- struct{}{}:
	default:
	}
}

// Wake is signalled after every Post.
func (in *Inbox) Wake() <-chan struct{} {
	return in.wake
}

// Pop removes the oldest queued event.
func (in *Inbox) Pop() (Event, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.queue) == 0 {
		return Event{}, false
	}
	ev := in.queue[0]
	in.queue[0] = Event{}
	in.queue = in.queue[1:]
	return ev, true
}
