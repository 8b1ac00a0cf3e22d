package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Source is a blocking stream of events.
type Source interface {
	// Next blocks until an event is available, ctx is done, or a fatal
	// error occurs.
	Next(ctx context.Context) (Event, error)
	Close() error
}

// Rewatcher is implemented by sources that must re-register a path after
// the file behind it was replaced.
type Rewatcher interface {
	Rewatch(index int) error
}

// Mode selects the Source variant.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeNotify Mode = "notify"
	ModePoll   Mode = "poll"
)

// DefaultPollInterval is the stat interval of the Poll variant.
const DefaultPollInterval = 25 * time.Millisecond

// ParseMode validates a mode string. Empty means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeNotify, ModePoll:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want auto, notify or poll)", s)
	}
}

// Resolve maps ModeAuto to the variant this platform supports.
func (m Mode) Resolve() Mode {
	if m != ModeAuto {
		return m
	}
	if notifySupported {
		return ModeNotify
	}
	return ModePoll
}

// Options configures a Source.
type Options struct {
	// PollInterval is the Poll stat interval. Zero means DefaultPollInterval.
	PollInterval time.Duration
	// Rescan is the interval of Rescan events. Zero disables them.
	Rescan time.Duration
	Logger *slog.Logger
}

// New builds the Source for mode over paths. It returns the resolved mode.
func New(mode Mode, paths []string, inbox *Inbox, opts Options) (Source, Mode, error) {
	resolved := mode.Resolve()
	switch resolved {
	case ModeNotify:
		src, err := NewNotify(paths, inbox, opts)
		if err != nil {
			return nil, resolved, err
		}
		return src, resolved, nil
	case ModePoll:
		src, err := NewPoll(paths, inbox, opts)
		if err != nil {
			return nil, resolved, err
		}
		return src, resolved, nil
	default:
		return nil, resolved, fmt.Errorf("unknown mode %q", mode)
	}
}

// ticker wraps an optional time.Ticker; a nil channel blocks forever.
type ticker struct {
	t *time.Ticker
}

func newTicker(d time.Duration) ticker {
	if d <= 0 {
		return ticker{}
	}
	return ticker{t: time.NewTicker(d)}
}

func (t ticker) C() <-chan time.Time {
	if t.t == nil {
		return nil
	}
	return t.t.C
}

func (t ticker) Stop() {
	if t.t != nil {
		t.t.Stop()
	}
}
