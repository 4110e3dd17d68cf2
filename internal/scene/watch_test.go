package scene

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "system.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: first\nbodies:\n  - { name: star, radius: 1, color: \"#ffffff\" }\n"), 0o644))

	w, err := Watch(path, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("name: second\nbodies:\n  - { name: star, radius: 1, color: \"#ffffff\" }\n"), 0o644))

	select {
	case c := <-w.Updates():
		assert.Equal(t, "second", c.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcherSkipsBrokenFile(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "system.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: ok\nbodies:\n  - { name: star, radius: 1, color: \"#ffffff\" }\n"), 0o644))

	w, err := Watch(path, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("bodies: []\n"), 0o644))

	select {
	case c := <-w.Updates():
		t.Fatalf("unexpected reload %q", c.Name)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "system.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: ok\nbodies:\n  - { name: star, radius: 1, color: \"#ffffff\" }\n"), 0o644))

	w, err := Watch(path, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	select {
	case <-w.Updates():
		t.Fatal("reload triggered by another file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope", "system.yaml"), time.Millisecond, zap.NewNop())
	assert.Error(t, err)
}
