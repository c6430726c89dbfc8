package fitshovel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDirWatcherEmitsNewFilesOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.fit"), []byte("a"), 0o644))

	w := NewDirWatcher(dir, "*.fit", 20*time.Millisecond, nil)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	select {
	case path := <-w.Paths():
		require.Equal(t, filepath.Join(dir, "a.fit"), path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for discovered file")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.fit"), []byte("b"), 0o644))
	select {
	case path := <-w.Paths():
		require.Equal(t, filepath.Join(dir, "b.fit"), path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for second discovered file")
	}

	select {
	case path := <-w.Paths():
		t.Fatalf("unexpected extra path emitted: %s", path)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDirWatcherIgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))

	w := NewDirWatcher(dir, "*.fit", 20*time.Millisecond, nil)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	select {
	case path := <-w.Paths():
		t.Fatalf("unexpected path emitted for non-matching file: %s", path)
	case <-time.After(150 * time.Millisecond):
	}
}
