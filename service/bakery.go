package service

import (
	"context"
	"errors"
	"time"

	"github.com/tnqbao/gau-bakery-service/entity"
	"github.com/tnqbao/gau-bakery-service/repository"
)

type BakeryService struct {
	store    BakeryStore
	logger   Logger
	cache    ListCache
	cacheTTL time.Duration
}

func NewBakeryService(store BakeryStore, logger Logger) *BakeryService {
	return &BakeryService{store: store, logger: logger}
}

// WithListCache enables the read-through list cache.
func (s *BakeryService) WithListCache(cache ListCache, ttl time.Duration) *BakeryService {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

func (s *BakeryService) Create(ctx context.Context, in BakeryInput) (*entity.Bakery, error) {
	fields, err := ValidateBakery(in)
	if err != nil {
		return nil, err
	}

	bakery := &entity.Bakery{Name: fields.Name, Pincode: fields.Pincode}
	if err := s.store.Create(ctx, bakery); err != nil {
		s.logger.ErrorWithContextf(ctx, err, "[Bakery] Failed to insert bakery %s", fields.Name)
		return nil, &StorageError{Op: "insert", Err: err}
	}

	s.invalidate(ctx)
	s.logger.InfoWithContextf(ctx, "[Bakery] Created bakery %d", bakery.ID)
	return bakery, nil
}

func (s *BakeryService) Get(ctx context.Context, id int64) (*entity.Bakery, error) {
	bakery, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	return bakery, nil
}

// List returns all bakeries, oldest first.
func (s *BakeryService) List(ctx context.Context) ([]entity.Bakery, error) {
	generation, cacheable, err := listGeneration(ctx, s.cache, BakeryListGenerationKey)
	if err != nil {
		s.logger.WarningWithContextf(ctx, "[Bakery] Failed to read bakery list generation: %v", err)
	}
	key := listKey(BakeryListCacheKey, generation)
	if cacheable {
		var cached []entity.Bakery
		if err := s.cache.Get(ctx, key, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	bakeries, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	if bakeries == nil {
		bakeries = []entity.Bakery{}
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, bakeries, s.cacheTTL); err != nil {
			s.logger.WarningWithContextf(ctx, "[Bakery] Failed to cache bakery list: %v", err)
		}
	}
	return bakeries, nil
}

func (s *BakeryService) Update(ctx context.Context, id int64, in BakeryInput) (*entity.Bakery, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}

	fields, err := ValidateBakery(in)
	if err != nil {
		return nil, err
	}

	updated := &entity.Bakery{
		ID:        existing.ID,
		Name:      fields.Name,
		Pincode:   fields.Pincode,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.store.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "update", Err: err}
	}

	s.invalidate(ctx)
	s.logger.InfoWithContextf(ctx, "[Bakery] Updated bakery %d", id)
	return updated, nil
}

func (s *BakeryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return lookupError(err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrNotFound
		}
		return &StorageError{Op: "delete", Err: err}
	}

	s.invalidate(ctx)
	s.logger.InfoWithContextf(ctx, "[Bakery] Deleted bakery %d", id)
	return nil
}

func (s *BakeryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, BakeryListGenerationKey); err != nil {
		s.logger.WarningWithContextf(ctx, "[Bakery] Failed to invalidate bakery list cache: %v", err)
	}
}
