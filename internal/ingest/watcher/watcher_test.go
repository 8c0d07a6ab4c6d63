package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		ev     fsnotify.Event
		want   Event
		wantOK bool
	}{
		{
			name:   "write",
			ev:     fsnotify.Event{Name: "/l/Intel_20240101_200000.txt", Op: fsnotify.Write},
			want:   Event{Kind: FileChanged, Path: "/l/Intel_20240101_200000.txt"},
			wantOK: true,
		},
		{
			name:   "create",
			ev:     fsnotify.Event{Name: "/l/Intel_20240101_200000.txt", Op: fsnotify.Create},
			want:   Event{Kind: DirChanged, Path: "/l/Intel_20240101_200000.txt"},
			wantOK: true,
		},
		{name: "chmod", ev: fsnotify.Event{Name: "/l/a.txt", Op: fsnotify.Chmod}},
		{name: "other extension", ev: fsnotify.Event{Name: "/l/a.tmp", Op: fsnotify.Write}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.ev)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPoll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Intel_20240101_200000.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab"), 0o600))

	w := New(dir, Config{}, nil)
	out := make(chan Event, 4)
	ctx := context.Background()

	w.poll(ctx, nil)
	w.poll(ctx, out)
	assert.Empty(t, out, "unchanged files produce no events")

	require.NoError(t, os.WriteFile(path, []byte("abcd"), 0o600))
	w.poll(ctx, out)
	require.Len(t, out, 1)
	assert.Equal(t, Event{Kind: FileChanged, Path: path}, <-out)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Other_20240101_200000.txt"), nil, 0o600))
	w.poll(ctx, out)
	require.Len(t, out, 1)
	assert.Equal(t, DirChanged, (<-out).Kind)

	require.NoError(t, os.Remove(path))
	w.poll(ctx, out)
	require.Len(t, out, 1)
	assert.Equal(t, DirChanged, (<-out).Kind)
}

func TestRun_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Intel_20240101_200000.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(dir, Config{PollInterval: 20 * time.Millisecond}, nil)
	out := make(chan Event, 16)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, out) }()

	// Give the watcher time to register before the write.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("abcdef"), 0o600))

	select {
	case ev := <-out:
		assert.Equal(t, path, ev.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for a written file")
	}

	cancel()
	<-done
}
