package source

import (
	"context"
	"fmt"
	"os"
	"time"
)

type stamp struct {
	info    os.FileInfo
	modTime time.Time
	size    int64
}

func stampOf(info os.FileInfo) stamp {
	return stamp{info: info, modTime: info.ModTime(), size: info.Size()}
}

// Poll detects changes by stat'ing every path on a fixed interval.
type Poll struct {
	paths  []string
	stamps []stamp
	queued []Event
	inbox  *Inbox
	tick   ticker
	rescan ticker
}

// NewPoll records the current state of every path. A path that cannot be
// stat'ed is an error.
func NewPoll(paths []string, inbox *Inbox, opts Options) (*Poll, error) {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	p := &Poll{
		paths:  append([]string(nil), paths...),
		stamps: make([]stamp, len(paths)),
		inbox:  inbox,
	}
	for i, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		p.stamps[i] = stampOf(info)
	}
	p.tick = newTicker(interval)
	p.rescan = newTicker(opts.Rescan)
	return p, nil
}

// Next returns the next UI request, file change or rescan tick.
func (p *Poll) Next(ctx context.Context) (Event, error) {
	for {
		if ev, ok := p.inbox.Pop(); ok {
			return ev, nil
		}
		if len(p.queued) > 0 {
			ev := p.queued[0]
			p.queued = p.queued[1:]
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-p.inbox.Wake():
		case <-p.tick.C():
			if err := p.scan(); err != nil {
				return Event{}, err
			}
		case <-p.rescan.C():
			return Event{Kind: Rescan}, nil
		}
	}
}

func (p *Poll) scan() error {
	for i, path := range p.paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrVanished, err)
		}
		prev, next := p.stamps[i], stampOf(info)
		replaced := !os.SameFile(prev.info, next.info)
		if !replaced && next.modTime.Equal(prev.modTime) && next.size == prev.size {
			continue
		}
		p.stamps[i] = next
		p.queued = append(p.queued, Event{Kind: FileChanged, Index: i, Replaced: replaced})
	}
	return nil
}

// Close stops the tickers.
func (p *Poll) Close() error {
	p.tick.Stop()
	p.rescan.Stop()
	return nil
}
