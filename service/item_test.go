package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func validItemInput(t *testing.T) ItemInput {
	return ItemInput{
		Name:        "Croissant",
		Description: "Buttery and flaky",
		Price:       "350",
		Image:       &Upload{Filename: "croissant.png", Data: pngBytes(t, 4, 4)},
	}
}

type itemFixture struct {
	store   *fakeItemStore
	assets  *fakeAssets
	cache   *fakeCache
	queue   *fakeQueue
	service *ItemService
}

func newItemFixture() *itemFixture {
	f := &itemFixture{
		store:  newFakeItemStore(),
		assets: newFakeAssets(),
		cache:  newFakeCache(),
		queue:  &fakeQueue{},
	}
	f.service = NewItemService(f.store, f.assets, nopLogger{},
		WithItemListCache(f.cache, 0),
		WithCleanupQueue(f.queue),
	)
	return f
}

func TestItemCreateStoresAssetAndRow(t *testing.T) {
	f := newItemFixture()

	item, err := f.service.Create(context.Background(), validItemInput(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "Croissant", item.Name)
	assert.Equal(t, int64(350), item.Price)
	assert.True(t, f.assets.has(item.Image))
	assert.Equal(t, item.Image, f.store.rows[1].Image)
	assert.Equal(t, int64(1), f.cache.counters[ItemListGenerationKey])
}

func TestItemCreateRejectsInvalidInputWithoutSideEffects(t *testing.T) {
	f := newItemFixture()

	_, err := f.service.Create(context.Background(), ItemInput{Name: "Pie", Description: "short", Price: "abc"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "description")
	assert.Contains(t, verr.Fields, "price")
	assert.Contains(t, verr.Fields, "image")
	assert.Zero(t, f.assets.count())
	assert.Empty(t, f.store.rows)
}

func TestItemCreateAssetFailureLeavesNoRow(t *testing.T) {
	f := newItemFixture()
	f.assets.saveErr = errors.New("disk full")

	_, err := f.service.Create(context.Background(), validItemInput(t))

	var assetErr *AssetWriteError
	require.ErrorAs(t, err, &assetErr)
	assert.Empty(t, f.store.rows)
}

func TestItemCreateInsertFailureRemovesSavedAsset(t *testing.T) {
	f := newItemFixture()
	f.store.createErr = errors.New("connection reset")

	_, err := f.service.Create(context.Background(), validItemInput(t))

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Zero(t, f.assets.count())
	assert.Len(t, f.assets.deleted, 1)
	assert.Empty(t, f.queue.published)
}

func TestItemCreateInsertFailureQueuesCleanupWhenDeleteFails(t *testing.T) {
	f := newItemFixture()
	f.store.createErr = errors.New("connection reset")
	f.assets.deleteErr = errors.New("permission denied")

	_, err := f.service.Create(context.Background(), validItemInput(t))
	require.Error(t, err)

	require.Len(t, f.queue.published, 1)
	assert.True(t, f.assets.has(f.queue.published[0]))
}

func TestItemUpdateReplacesImage(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)
	oldImage := created.Image

	in := validItemInput(t)
	in.Name = "Pain au chocolat"
	in.Image = &Upload{Filename: "pain.png", Data: pngBytes(t, 8, 8)}

	updated, err := f.service.Update(ctx, created.ID, in)
	require.NoError(t, err)

	assert.NotEqual(t, oldImage, updated.Image)
	assert.False(t, f.assets.has(oldImage))
	assert.True(t, f.assets.has(updated.Image))
	assert.Equal(t, "Pain au chocolat", f.store.rows[created.ID].Name)
	assert.Equal(t, updated.Image, f.store.rows[created.ID].Image)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestItemUpdateWithoutImageKeepsCurrentOne(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	in := validItemInput(t)
	in.Image = nil
	in.Price = "400"

	updated, err := f.service.Update(ctx, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, int64(400), updated.Price)
	assert.True(t, f.assets.has(created.Image))
	assert.Equal(t, 1, f.assets.count())
}

func TestItemUpdateSaveFailureKeepsOldImage(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	f.assets.saveErr = errors.New("disk full")
	_, err = f.service.Update(ctx, created.ID, validItemInput(t))

	var assetErr *AssetWriteError
	require.ErrorAs(t, err, &assetErr)
	assert.True(t, f.assets.has(created.Image))
	assert.Equal(t, created.Image, f.store.rows[created.ID].Image)
}

func TestItemUpdateOldImageDeleteFailureStillSucceeds(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	f.assets.deleteErr = errors.New("busy")
	updated, err := f.service.Update(ctx, created.ID, validItemInput(t))
	require.NoError(t, err)

	assert.NotEqual(t, created.Image, updated.Image)
	assert.Equal(t, []string{created.Image}, f.queue.published)
}

func TestItemUpdateFailureDoesNotQueueStillReferencedImage(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	f.assets.deleteErr = errors.New("busy")
	f.store.updateErr = errors.New("connection reset")
	_, err = f.service.Update(ctx, created.ID, validItemInput(t))

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, created.Image, f.store.rows[created.ID].Image)
	assert.NotContains(t, f.queue.published, created.Image)
	require.Len(t, f.queue.published, 1)
	assert.NotEqual(t, created.Image, f.queue.published[0])
}

func TestItemUpdateMissingReturnsNotFoundBeforeValidation(t *testing.T) {
	f := newItemFixture()

	_, err := f.service.Update(context.Background(), 42, ItemInput{})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, f.assets.count())
}

func TestItemUpdateInvalidInputChangesNothing(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	in := validItemInput(t)
	in.Price = "-5"
	_, err = f.service.Update(ctx, created.ID, in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")
	assert.Equal(t, 1, f.assets.count())
	assert.Equal(t, created.Image, f.store.rows[created.ID].Image)
}

func TestItemDeleteRemovesAssetAndRow(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID))

	assert.Empty(t, f.store.rows)
	assert.False(t, f.assets.has(created.Image))
}

func TestItemDeleteProceedsWhenAssetDeleteFails(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	f.assets.deleteErr = errors.New("busy")
	require.NoError(t, f.service.Delete(ctx, created.ID))

	assert.Empty(t, f.store.rows)
	assert.Equal(t, []string{created.Image}, f.queue.published)
}

func TestItemDeleteMissing(t *testing.T) {
	f := newItemFixture()
	assert.ErrorIs(t, f.service.Delete(context.Background(), 7), ErrNotFound)
}

func TestItemGet(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	created, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	got, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Image, got.Image)

	_, err = f.service.Get(ctx, created.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemListIsNewestFirstAndCached(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.service.Create(ctx, validItemInput(t))
		require.NoError(t, err)
	}

	items, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, 1, f.store.listCalls)

	_, err = f.service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.listCalls)

	_, err = f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)
	items, err = f.service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, 2, f.store.listCalls)
}

func TestItemListFillRacingDeleteIsNotServed(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	item, err := f.service.Create(ctx, validItemInput(t))
	require.NoError(t, err)

	f.store.afterList = func() {
		require.NoError(t, f.service.Delete(ctx, item.ID))
	}
	inFlight, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, inFlight, 1)

	items, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 2, f.store.listCalls)
}

func TestItemListEmpty(t *testing.T) {
	f := newItemFixture()
	items, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemCreateDownscalesWideImages(t *testing.T) {
	store := newFakeItemStore()
	assets := newFakeAssets()
	svc := NewItemService(store, assets, nopLogger{}, WithMaxImageWidth(16))

	in := validItemInput(t)
	in.Image = &Upload{Filename: "wide.png", Data: pngBytes(t, 64, 32)}

	item, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	stored, err := png.Decode(bytes.NewReader(assets.files[item.Image]))
	require.NoError(t, err)
	assert.Equal(t, 16, stored.Bounds().Dx())
	assert.Equal(t, 8, stored.Bounds().Dy())
}
