package infra

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemDiskStore(t *testing.T) (*DiskAssetStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewDiskAssetStore(fs, "public/assets")
	require.NoError(t, err)
	return store, fs
}

func TestDiskAssetStoreSave(t *testing.T) {
	store, fs := newMemDiskStore(t)
	ctx := context.Background()

	name, err := store.Save(ctx, []byte("png-bytes"), "cake.PNG", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	data, err := afero.ReadFile(fs, "public/assets/"+name)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	other, err := store.Save(ctx, []byte("more"), "cake.PNG", "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}

func TestDiskAssetStoreNeverOverwrites(t *testing.T) {
	store, fs := newMemDiskStore(t)
	fixed := time.UnixMilli(1700000000000)
	store.now = func() time.Time { return fixed }

	name, err := store.Save(context.Background(), []byte("first"), "a.png", "image/png")
	require.NoError(t, err)

	// same millisecond, names still differ by their random part
	second, err := store.Save(context.Background(), []byte("second"), "a.png", "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, name, second)

	data, err := afero.ReadFile(fs, "public/assets/"+name)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}

func TestDiskAssetStoreDeleteIsIdempotent(t *testing.T) {
	store, fs := newMemDiskStore(t)
	ctx := context.Background()

	name, err := store.Save(ctx, []byte("x"), "a.png", "image/png")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, name))
	exists, err := afero.Exists(fs, "public/assets/"+name)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.Delete(ctx, name))
	assert.NoError(t, store.Delete(ctx, "never-existed.png"))
}

func TestDiskAssetStoreDeleteRejectsPaths(t *testing.T) {
	store, _ := newMemDiskStore(t)
	assert.Error(t, store.Delete(context.Background(), "../config.env"))
}

func TestDiskAssetStoreList(t *testing.T) {
	store, fs := newMemDiskStore(t)
	ctx := context.Background()

	a, err := store.Save(ctx, []byte("aa"), "a.png", "image/png")
	require.NoError(t, err)
	b, err := store.Save(ctx, []byte("bbb"), "b.jpg", "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll("public/assets/nested", 0o755))

	assets, err := store.List(ctx)
	require.NoError(t, err)

	names := map[string]int64{}
	for _, asset := range assets {
		names[asset.Name] = asset.Size
	}
	assert.Equal(t, map[string]int64{a: 2, b: 3}, names)
}
