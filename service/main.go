// Package service sequences validation, asset I/O and record I/O for the
// item and bakery endpoints.
package service

import (
	"context"
	"time"

	"github.com/tnqbao/gau-bakery-service/entity"
)

// Logger is satisfied by infra.LoggerClient.
type Logger interface {
	InfoWithContextf(ctx context.Context, format string, args ...interface{})
	WarningWithContextf(ctx context.Context, format string, args ...interface{})
	ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{})
}

// AssetStore persists uploaded images addressed by generated filename.
// Delete must treat a missing file as success.
type AssetStore interface {
	Save(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	List(ctx context.Context) ([]entity.Asset, error)
}

type ItemStore interface {
	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id int64) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]entity.Item, error)
}

type BakeryStore interface {
	Create(ctx context.Context, bakery *entity.Bakery) error
	FindByID(ctx context.Context, id int64) (*entity.Bakery, error)
	Update(ctx context.Context, bakery *entity.Bakery) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]entity.Bakery, error)
}

// ListCache is satisfied by infra.RedisClient. Counter returns zero for an
// absent key.
type ListCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// CleanupQueue hands asset deletions that failed inline to a background worker.
type CleanupQueue interface {
	PublishAssetCleanup(ctx context.Context, filename, reason string) error
}

// AssetMetrics is satisfied by infra.TelemetryClient.
type AssetMetrics interface {
	RecordAssetOperation(ctx context.Context, op, outcome string)
}

// Cached lists live under <prefix>:<generation>. Every mutation bumps the
// generation, so a fill that raced a mutation lands under a key nobody reads.
const (
	ItemListCacheKey        = "items:list"
	ItemListGenerationKey   = "items:gen"
	BakeryListCacheKey      = "bakeries:list"
	BakeryListGenerationKey = "bakeries:gen"
)
