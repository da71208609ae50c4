package service

import (
	"context"
	"time"

	"github.com/tnqbao/gau-bakery-service/utils"
)

type ImageLister interface {
	ListImages(ctx context.Context) ([]string, error)
}

// Reconciler removes stored assets that no item references. Only names this
// service generates are considered, and assets younger than the grace period
// are skipped so an in-flight create is never raced.
type Reconciler struct {
	images ImageLister
	assets AssetStore
	logger Logger
	grace  time.Duration
	now    func() time.Time
}

func NewReconciler(images ImageLister, assets AssetStore, logger Logger, grace time.Duration) *Reconciler {
	return &Reconciler{
		images: images,
		assets: assets,
		logger: logger,
		grace:  grace,
		now:    time.Now,
	}
}

// Sweep performs one pass and returns the names of the removed assets.
func (r *Reconciler) Sweep(ctx context.Context) ([]string, error) {
	stored, err := r.assets.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list assets", Err: err}
	}

	referenced, err := r.images.ListImages(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list images", Err: err}
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		inUse[name] = struct{}{}
	}

	cutoff := r.now().Add(-r.grace)
	removed := make([]string, 0)
	for _, asset := range stored {
		if !utils.IsGeneratedAssetName(asset.Name) {
			continue
		}
		if _, ok := inUse[asset.Name]; ok {
			continue
		}
		if asset.ModTime.After(cutoff) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := r.assets.Delete(ctx, asset.Name); err != nil {
			r.logger.WarningWithContextf(ctx, "[Reconcile] Failed to delete orphan %s: %v", asset.Name, err)
			continue
		}
		removed = append(removed, asset.Name)
	}

	if len(removed) > 0 {
		r.logger.InfoWithContextf(ctx, "[Reconcile] Removed %d orphaned assets", len(removed))
	}
	return removed, nil
}
