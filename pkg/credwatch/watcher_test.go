package credwatch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// collector gathers delivered keys.
type collector struct {
	mu   sync.Mutex
	keys []string
}

func (c *collector) add(key string) {
	c.mu.Lock()
	c.keys = append(c.keys, key)
	c.mu.Unlock()
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c *collector) waitFor(t *testing.T, key string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, k := range c.snapshot() {
			if k == key {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("key %q never delivered; got %v", key, c.snapshot())
}

func TestWatcherInitialDelivery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ris.key")
	if err := os.WriteFile(path, []byte(" first-key \n"), 0600); err != nil {
		t.Fatal(err)
	}

	var c collector
	w := New(path, c.add, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer func() { cancel(); w.Wait() }()

	keys := c.snapshot()
	if len(keys) != 1 || keys[0] != "first-key" {
		t.Fatalf("initial delivery = %v, want [first-key] (trimmed)", keys)
	}
}

func TestWatcherReloadOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ris.key")
	if err := os.WriteFile(path, []byte("first-key\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var c collector
	w := New(path, c.add, nil)
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer func() { cancel(); w.Wait() }()

	if err := os.WriteFile(path, []byte("\nsecond-key \n"), 0600); err != nil {
		t.Fatal(err)
	}
	c.waitFor(t, "second-key", 3*time.Second)
}

func TestWatcherMissingFile(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent.key"), func(string) {
		t.Error("callback invoked for a missing file")
	}, nil)

	if err := w.Start(context.Background()); err == nil {
		t.Fatal("Start() succeeded for a missing key file")
	}
}
