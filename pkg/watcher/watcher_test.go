//go:build !integration

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentsync/agentsync/pkg/testutil"
)

func startWatcher(t *testing.T, root string, fired chan<- struct{}) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	w := New(root, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, WithDebounce(50*time.Millisecond))

	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() returned %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop after cancel")
		}
	})

	// Give the watcher a moment to register the tree before mutating it.
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func TestWatcherFiresOnChange(t *testing.T) {
	root := testutil.TempDir(t, "watch-*")
	fired := make(chan struct{}, 1)
	startWatcher(t, root, fired)

	if err := os.WriteFile(filepath.Join(root, "rule.md"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after file write")
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	root := testutil.TempDir(t, "watch-burst-*")

	var count atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	w := New(root, func() { count.Add(1) }, WithDebounce(200*time.Millisecond))
	go func() { done <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "file"+string(rune('a'+i))+".md")
		if err := os.WriteFile(name, []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(time.Second)
	if got := count.Load(); got != 1 {
		t.Errorf("callback count = %d, want 1 for a single burst", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherPicksUpNewSubdirectories(t *testing.T) {
	root := testutil.TempDir(t, "watch-subdir-*")
	fired := make(chan struct{}, 1)
	startWatcher(t, root, fired)

	sub := filepath.Join(root, "rules")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	// Drain the mkdir event so the next signal is for the file below.
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after mkdir")
	}

	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "new.md"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback for file inside new subdirectory")
	}
}

func TestWatcherMissingRoot(t *testing.T) {
	w := New(filepath.Join(testutil.TempDir(t, "watch-missing-*"), "absent"), func() {})
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("Run() should fail when the root does not exist")
	}
}
