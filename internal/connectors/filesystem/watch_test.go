package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// startWatch runs Watch in the background and returns a channel of
// change notifications and a stop function that waits for Watch to return.
func startWatch(t *testing.T, dir string, debounce time.Duration) (<-chan struct{}, func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 16)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, dir, debounce, func() { changes <- struct{}{} })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	return changes, func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("Watch did not return after cancellation")
			return nil
		}
	}
}

func TestWatch_DebouncesBurst(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	changes, stop := startWatch(t, dir, 150*time.Millisecond)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	select {
	case <-changes:
		t.Fatal("burst produced more than one notification")
	case <-time.After(400 * time.Millisecond):
	}

	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for removal notification")
	}

	assert.NoError(t, stop())
}

func TestWatch_IgnoresTempFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	changes, stop := startWatch(t, dir, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".swap"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$policy.docx"), []byte("x"), 0o644))

	select {
	case <-changes:
		t.Fatal("hidden and temp files must not trigger a change")
	case <-time.After(300 * time.Millisecond):
	}

	assert.NoError(t, stop())
}

func TestWatch_MissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	err := Watch(context.Background(), "/non/existent/path", time.Millisecond, func() {})
	assert.Error(t, err)
}

func TestIsContentEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "create", event: fsnotify.Event{Name: "/d/a.pdf", Op: fsnotify.Create}, want: true},
		{name: "write", event: fsnotify.Event{Name: "/d/a.pdf", Op: fsnotify.Write}, want: true},
		{name: "remove", event: fsnotify.Event{Name: "/d/a.pdf", Op: fsnotify.Remove}, want: true},
		{name: "rename", event: fsnotify.Event{Name: "/d/a.pdf", Op: fsnotify.Rename}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: "/d/a.pdf", Op: fsnotify.Chmod}, want: false},
		{name: "write with chmod", event: fsnotify.Event{Name: "/d/a.pdf", Op: fsnotify.Write | fsnotify.Chmod}, want: true},
		{name: "hidden", event: fsnotify.Event{Name: "/d/.a.pdf", Op: fsnotify.Create}, want: false},
		{name: "office lock", event: fsnotify.Event{Name: "/d/~$a.docx", Op: fsnotify.Create}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isContentEvent(tc.event))
		})
	}
}
