package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cities.json")

	w, err := New(target, func() {})
	require.NoError(t, err)
	defer w.Close()

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected bool
	}{
		{"create target", target, fsnotify.Create, true},
		{"write target", target, fsnotify.Write, true},
		{"remove target", target, fsnotify.Remove, true},
		{"rename target", target, fsnotify.Rename, true},
		{"chmod target", target, fsnotify.Chmod, false},
		{"write and chmod", target, fsnotify.Write | fsnotify.Chmod, true},
		{"other file", filepath.Join(dir, "other.json"), fsnotify.Write, false},
		{"unclean path", dir + "/./cities.json", fsnotify.Write, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.relevant(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent", "cities.json"), func() {})
	assert.Error(t, err)
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cities.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0600))

	var calls atomic.Int32
	w, err := New(target, func() { calls.Add(1) })
	require.NoError(t, err)
	w.settle = 100 * time.Millisecond
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte(`[{"name":"x"}]`), 0600))
	}
	// Unrelated files never trigger a reload
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_RunStopsOnClose(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "cities.db"), func() {})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}
