package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvatarStore_Save(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	assert.NoError(t, err)

	name, err := store.Save(strings.NewReader("image-bytes"), ".png")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "avatar-"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	assert.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	// no temp files left behind
	entries, err := os.ReadDir(store.Dir())
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAvatarStore_Sweep(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	assert.NoError(t, err)

	orphan := filepath.Join(store.Dir(), "avatar-orphan.png")
	kept := filepath.Join(store.Dir(), "avatar-kept.png")
	assert.NoError(t, os.WriteFile(orphan, []byte("x"), 0o644))
	assert.NoError(t, os.WriteFile(kept, []byte("x"), 0o644))

	old := time.Now().Add(-2 * time.Hour)
	assert.NoError(t, os.Chtimes(orphan, old, old))
	assert.NoError(t, os.Chtimes(kept, old, old))

	err = store.Sweep(func(name string) (bool, error) {
		return name == "avatar-kept.png", nil
	})
	assert.NoError(t, err)

	assert.NoFileExists(t, orphan)
	assert.FileExists(t, kept)
}

func TestAvatarStore_SweepSkipsRecentFiles(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	assert.NoError(t, err)

	fresh := filepath.Join(store.Dir(), "avatar-fresh.png")
	assert.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))

	err = store.Sweep(func(name string) (bool, error) {
		return false, nil
	})
	assert.NoError(t, err)
	assert.FileExists(t, fresh)
}

func TestAvatarStore_Remove(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	assert.NoError(t, err)

	name, err := store.Save(strings.NewReader("x"), ".jpg")
	assert.NoError(t, err)
	assert.NoError(t, store.Remove(name))
	assert.NoFileExists(t, filepath.Join(store.Dir(), name))
}
