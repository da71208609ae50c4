package service

import (
	"context"
	"errors"
	"time"

	"github.com/tnqbao/gau-bakery-service/entity"
	"github.com/tnqbao/gau-bakery-service/repository"
)

type ItemService struct {
	store    ItemStore
	assets   AssetStore
	logger   Logger
	cache    ListCache
	cacheTTL time.Duration
	cleanup  CleanupQueue
	metrics  AssetMetrics
	maxWidth uint
}

type ItemOption func(*ItemService)

func WithItemListCache(cache ListCache, ttl time.Duration) ItemOption {
	return func(s *ItemService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

func WithCleanupQueue(queue CleanupQueue) ItemOption {
	return func(s *ItemService) { s.cleanup = queue }
}

func WithAssetMetrics(metrics AssetMetrics) ItemOption {
	return func(s *ItemService) { s.metrics = metrics }
}

// WithMaxImageWidth enables downscaling of wide uploads; zero disables it.
func WithMaxImageWidth(width uint) ItemOption {
	return func(s *ItemService) { s.maxWidth = width }
}

func NewItemService(store ItemStore, assets AssetStore, logger Logger, opts ...ItemOption) *ItemService {
	s := &ItemService{
		store:  store,
		assets: assets,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input, stores the image and inserts the row. When the
// insert fails the freshly stored image is removed again.
func (s *ItemService) Create(ctx context.Context, in ItemInput) (*entity.Item, error) {
	fields, err := ValidateItem(in, true)
	if err != nil {
		return nil, err
	}

	filename, err := s.saveImage(ctx, fields)
	if err != nil {
		return nil, err
	}

	item := &entity.Item{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Image:       filename,
	}
	if err := s.store.Create(ctx, item); err != nil {
		s.logger.ErrorWithContextf(ctx, err, "[Item] Failed to insert item, discarding asset %s", filename)
		s.discardAsset(ctx, filename, "create rollback")
		return nil, &StorageError{Op: "insert", Err: err}
	}

	s.invalidate(ctx)
	s.logger.InfoWithContextf(ctx, "[Item] Created item %d with image %s", item.ID, filename)
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (*entity.Item, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	return item, nil
}

// List returns all items, newest first.
func (s *ItemService) List(ctx context.Context) ([]entity.Item, error) {
	generation, cacheable, err := listGeneration(ctx, s.cache, ItemListGenerationKey)
	if err != nil {
		s.logger.WarningWithContextf(ctx, "[Item] Failed to read item list generation: %v", err)
	}
	key := listKey(ItemListCacheKey, generation)
	if cacheable {
		var cached []entity.Item
		if err := s.cache.Get(ctx, key, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	if items == nil {
		items = []entity.Item{}
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
			s.logger.WarningWithContextf(ctx, "[Item] Failed to cache item list: %v", err)
		}
	}
	return items, nil
}

// Update replaces the editable fields of an existing item. A new image is
// stored before the previous one is removed, so a failed save leaves the
// item pointing at its still valid old image.
func (s *ItemService) Update(ctx context.Context, id int64, in ItemInput) (*entity.Item, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}

	fields, err := ValidateItem(in, false)
	if err != nil {
		return nil, err
	}

	image := existing.Image
	replaced := false
	oldPending := false
	if fields.Image != nil {
		filename, err := s.saveImage(ctx, fields)
		if err != nil {
			return nil, err
		}
		oldPending = !s.deleteAsset(ctx, existing.Image, "superseded")
		image = filename
		replaced = true
	}

	updated := &entity.Item{
		ID:          existing.ID,
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Image:       image,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.store.Update(ctx, updated); err != nil {
		if replaced {
			s.discardAsset(ctx, image, "update rollback")
		}
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "update", Err: err}
	}
	// The old image is only handed to the worker once the row no longer
	// references it.
	if oldPending {
		s.queueCleanup(ctx, existing.Image, "superseded")
	}

	s.invalidate(ctx)
	s.logger.InfoWithContextf(ctx, "[Item] Updated item %d", id)
	return updated, nil
}

// Delete removes the item's image and then its row. A failing image delete
// is logged and does not stop the row delete.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return lookupError(err)
	}

	s.discardAsset(ctx, existing.Image, "item deleted")

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrNotFound
		}
		return &StorageError{Op: "delete", Err: err}
	}

	s.invalidate(ctx)
	s.logger.InfoWithContextf(ctx, "[Item] Deleted item %d", id)
	return nil
}

func (s *ItemService) saveImage(ctx context.Context, fields *ItemFields) (string, error) {
	data, err := downscale(fields.Image.Data, fields.ContentType, s.maxWidth)
	if err != nil {
		s.logger.WarningWithContextf(ctx, "[Asset] Could not downscale %s, storing original: %v", fields.Image.Filename, err)
		data = fields.Image.Data
	}

	filename, err := s.assets.Save(ctx, data, fields.Image.Filename, fields.ContentType)
	if err != nil {
		s.record(ctx, "save", "error")
		s.logger.ErrorWithContextf(ctx, err, "[Asset] Failed to save upload %s", fields.Image.Filename)
		return "", &AssetWriteError{Err: err}
	}
	s.record(ctx, "save", "ok")
	return filename, nil
}

// discardAsset is best-effort: failures are logged and, when a cleanup queue
// is configured, handed to the background worker.
func (s *ItemService) discardAsset(ctx context.Context, filename, reason string) {
	if !s.deleteAsset(ctx, filename, reason) {
		s.queueCleanup(ctx, filename, reason)
	}
}

// deleteAsset reports whether filename is gone. An empty name counts as gone.
func (s *ItemService) deleteAsset(ctx context.Context, filename, reason string) bool {
	if filename == "" {
		return true
	}

	err := s.assets.Delete(ctx, filename)
	if err == nil {
		s.record(ctx, "delete", "ok")
		return true
	}

	s.record(ctx, "delete", "error")
	s.logger.WarningWithContextf(ctx, "[Asset] Failed to delete %s (%s): %v", filename, reason, err)
	return false
}

func (s *ItemService) queueCleanup(ctx context.Context, filename, reason string) {
	if s.cleanup == nil {
		return
	}
	if err := s.cleanup.PublishAssetCleanup(ctx, filename, reason); err != nil {
		s.logger.ErrorWithContextf(ctx, err, "[Asset] Failed to queue cleanup for %s", filename)
	}
}

func (s *ItemService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, ItemListGenerationKey); err != nil {
		s.logger.WarningWithContextf(ctx, "[Item] Failed to invalidate item list cache: %v", err)
	}
}

func (s *ItemService) record(ctx context.Context, op, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordAssetOperation(ctx, op, outcome)
	}
}

func lookupError(err error) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: "lookup", Err: err}
}
