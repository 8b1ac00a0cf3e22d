package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(paths[i], []byte("start\n"), 0o644))
	}
	return paths
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(line + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

// nextKind reads events until one of kind arrives or the timeout expires.
func nextKind(t *testing.T, src Source, kind Kind) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for {
		ev, err := src.Next(ctx)
		require.NoError(t, err)
		if ev.Kind == kind {
			return ev
		}
	}
}

func TestPollReportsModifiedFile(t *testing.T) {
	paths := tempFiles(t, "a.log", "b.log")
	src, err := NewPoll(paths, NewInbox(), Options{PollInterval: 5 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	appendLine(t, paths[1], "more")

	ev := nextKind(t, src, FileChanged)
	assert.Equal(t, 1, ev.Index)
	assert.False(t, ev.Replaced)
}

func TestPollReportsOneEventPerChange(t *testing.T) {
	paths := tempFiles(t, "a.log")
	src, err := NewPoll(paths, NewInbox(), Options{PollInterval: 5 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(paths[0], future, future))
	nextKind(t, src, FileChanged)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "no further change was made")
}

func TestPollReportsReplacement(t *testing.T) {
	paths := tempFiles(t, "a.log")
	src, err := NewPoll(paths, NewInbox(), Options{PollInterval: 5 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	require.NoError(t, os.Rename(paths[0], paths[0]+".1"))
	require.NoError(t, os.WriteFile(paths[0], []byte("fresh\n"), 0o644))

	ev := nextKind(t, src, FileChanged)
	assert.True(t, ev.Replaced)
}

func TestPollVanishedFileIsFatal(t *testing.T) {
	paths := tempFiles(t, "a.log")
	src, err := NewPoll(paths, NewInbox(), Options{PollInterval: 5 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	require.NoError(t, os.Remove(paths[0]))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err = src.Next(ctx)
	require.ErrorIs(t, err, ErrVanished)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewPollMissingFile(t *testing.T) {
	_, err := NewPoll([]string{filepath.Join(t.TempDir(), "missing")}, NewInbox(), Options{})
	require.Error(t, err)
}

func TestInboxWakesBlockedSource(t *testing.T) {
	paths := tempFiles(t, "a.log")
	inbox := NewInbox()
	src, err := NewPoll(paths, inbox, Options{PollInterval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	go func() {
		time.Sleep(20 * time.Millisecond)
		inbox.Post(Event{Kind: DetailToggled, On: true})
	}()

	ev := nextKind(t, src, DetailToggled)
	assert.True(t, ev.On)
}

func TestNextHonoursCancellation(t *testing.T) {
	paths := tempFiles(t, "a.log")
	src, err := NewPoll(paths, NewInbox(), Options{PollInterval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := src.Next(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Next did not return after cancel")
	}
}

func TestRescanTicks(t *testing.T) {
	paths := tempFiles(t, "a.log")
	src, err := NewPoll(paths, NewInbox(), Options{PollInterval: time.Hour, Rescan: 10 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	nextKind(t, src, Rescan)
}

func TestNotifyReportsWrites(t *testing.T) {
	if !notifySupported {
		t.Skip("fsnotify not available on this platform")
	}
	paths := tempFiles(t, "a.log", "b.log")
	src, err := NewNotify(paths, NewInbox(), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	appendLine(t, paths[0], "hello")

	ev := nextKind(t, src, FileChanged)
	assert.Equal(t, 0, ev.Index)
	assert.False(t, ev.Replaced)
}

func TestNotifyReportsRemoval(t *testing.T) {
	if !notifySupported {
		t.Skip("fsnotify not available on this platform")
	}
	paths := tempFiles(t, "a.log")
	src, err := NewNotify(paths, NewInbox(), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	require.NoError(t, os.Rename(paths[0], paths[0]+".1"))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for {
		ev, err := src.Next(ctx)
		require.NoError(t, err)
		if ev.Kind == FileChanged && ev.Replaced {
			assert.Equal(t, 0, ev.Index)
			break
		}
	}

	require.NoError(t, os.WriteFile(paths[0], []byte("new\n"), 0o644))
	require.NoError(t, src.Rewatch(0))
	appendLine(t, paths[0], "after")
	ev := nextKind(t, src, FileChanged)
	assert.Equal(t, 0, ev.Index)
}

func TestNotifyMissingFile(t *testing.T) {
	if !notifySupported {
		t.Skip("fsnotify not available on this platform")
	}
	_, err := NewNotify([]string{filepath.Join(t.TempDir(), "missing")}, NewInbox(), Options{})
	require.Error(t, err)
}

func TestNewResolvesMode(t *testing.T) {
	paths := tempFiles(t, "a.log")
	src, mode, err := New(ModePoll, paths, NewInbox(), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	assert.Equal(t, ModePoll, mode)
	_, ok := src.(*Poll)
	assert.True(t, ok)
}
