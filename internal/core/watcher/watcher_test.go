package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan []string, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case paths := <-ch:
			for _, p := range paths {
				if p == want {
					return
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for change event on %s", want)
		}
	}
}

func TestNew_RejectsNilCallback(t *testing.T) {
	w, err := New(Options{Debounce: 100 * time.Millisecond}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrInvalid))
	assert.Nil(t, w)
}

func TestNew_RejectsBadGlob(t *testing.T) {
	_, err := New(Options{ExcludeFiles: []string{"[oops"}}, func([]string) {})
	require.Error(t, err)
}

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	changed := make(chan []string, 8)
	w, err := New(Options{
		Debounce:     100 * time.Millisecond,
		ExcludeDirs:  []string{"build"},
		ExcludeFiles: []string{"*.generated.h"},
	}, func(paths []string) {
		changed <- paths
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{tmpDir}))

	header := filepath.Join(tmpDir, "View.h")
	require.NoError(t, os.WriteFile(header, []byte("@interface View\n@end\n"), 0o644))
	waitFor(t, changed, header, 2*time.Second)

	excluded := filepath.Join(tmpDir, "Model.generated.h")
	require.NoError(t, os.WriteFile(excluded, []byte("// generated"), 0o644))
	ignored := filepath.Join(tmpDir, "notes.txt")
	require.NoError(t, os.WriteFile(ignored, []byte("text"), 0o644))

	select {
	case paths := <-changed:
		for _, p := range paths {
			if p == excluded || p == ignored {
				t.Errorf("filtered file triggered event: %s", p)
			}
		}
	case <-time.After(500 * time.Millisecond):
	}

	// New directories are watched recursively after create.
	subdir := filepath.Join(tmpDir, "Sources")
	require.NoError(t, os.MkdirAll(subdir, 0o755))
	nested := filepath.Join(subdir, "main.m")
	require.NoError(t, os.WriteFile(nested, []byte("int main(void) { return 0; }"), 0o644))
	waitFor(t, changed, nested, 2*time.Second)
}

func TestWatcher_ExplicitFile(t *testing.T) {
	tmpDir := t.TempDir()
	trace := filepath.Join(tmpDir, "events.trace")
	require.NoError(t, os.WriteFile(trace, []byte("{}\n"), 0o644))

	changed := make(chan []string, 8)
	w, err := New(Options{Debounce: 50 * time.Millisecond}, func(paths []string) {
		changed <- paths
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{trace}))
	assert.False(t, w.shouldExcludeFile(trace), "explicit files bypass the extension filter")

	require.NoError(t, os.WriteFile(trace, []byte("{}\n{}\n"), 0o644))
	waitFor(t, changed, trace, 2*time.Second)
}

func TestWatcher_RenameTriggersChange(t *testing.T) {
	tmpDir := t.TempDir()

	changed := make(chan []string, 8)
	w, err := New(Options{Debounce: 100 * time.Millisecond}, func(paths []string) {
		changed <- paths
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{tmpDir}))

	oldPath := filepath.Join(tmpDir, "Old.h")
	newPath := filepath.Join(tmpDir, "New.h")
	require.NoError(t, os.WriteFile(oldPath, []byte("// old"), 0o644))
	require.NoError(t, os.Rename(oldPath, newPath))

	timeout := time.After(2 * time.Second)
	for {
		select {
		case paths := <-changed:
			for _, p := range paths {
				if p == oldPath || p == newPath {
					return
				}
			}
		case <-timeout:
			t.Fatalf("timed out waiting for rename event, old=%s new=%s", oldPath, newPath)
		}
	}
}

func TestWatcher_ExtensionFilters(t *testing.T) {
	w, err := New(Options{Extensions: []string{".h", ".m"}}, func([]string) {})
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.shouldExcludeFile("main.swift"))
	assert.False(t, w.shouldExcludeFile("View.H"))
	assert.False(t, w.shouldExcludeFile("main.m"))
	assert.True(t, w.shouldExcludeDir("/tmp/x/.git"))
}
