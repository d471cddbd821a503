package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type harness struct {
	calls  chan struct{}
	cancel context.CancelFunc
	done   chan error
}

func start(t *testing.T, root string) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{calls: make(chan struct{}, 16), cancel: cancel, done: make(chan error, 1)}
	w := Watcher{Root: root, Debounce: 20 * time.Millisecond}
	go func() {
		h.done <- w.Run(ctx, func(context.Context) { h.calls <- struct{}{} })
	}()
	return h
}

func (h *harness) expectCall(t *testing.T, what string) {
	t.Helper()
	select {
	case <-h.calls:
	case err := <-h.done:
		t.Fatalf("watcher stopped before %s: %v", what, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	h.cancel()
	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherFollowsNewRuns(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	h := start(t, root)
	h.expectCall(t, "initial selection")

	run := filepath.Join(root, "run-1")
	require.NoError(t, os.Mkdir(run, 0o755))
	h.expectCall(t, "run directory creation")

	require.NoError(t, os.WriteFile(filepath.Join(run, "fittest_1"), []byte("genomestart 1\n"), 0o644))
	h.expectCall(t, "file written inside new run")

	h.stop(t)
}

func TestWatcherWaitsForMissingRoot(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := filepath.Join(t.TempDir(), "experiments")
	h := start(t, root)
	h.expectCall(t, "initial selection")

	require.NoError(t, os.Mkdir(root, 0o755))
	h.expectCall(t, "root creation")

	require.NoError(t, os.Mkdir(filepath.Join(root, "run-1"), 0o755))
	h.expectCall(t, "run inside late root")

	h.stop(t)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	var (
		mu    sync.Mutex
		count int
	)
	started := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := Watcher{Root: root, Debounce: 200 * time.Millisecond}
	go func() {
		done <- w.Run(ctx, func(context.Context) {
			mu.Lock()
			count++
			if count == 1 {
				close(started)
			}
			mu.Unlock()
		})
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial call")
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "burst"), []byte{byte(i)}, 0o644))
	}
	time.Sleep(time.Second)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, count, "initial call plus one debounced call")
}

func TestWatcherRejectsFileRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "experiments")
	require.NoError(t, os.WriteFile(root, nil, 0o644))

	err := Watcher{Root: root}.Run(context.Background(), func(context.Context) {})
	require.Error(t, err)
}
