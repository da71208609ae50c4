package repository

import (
	"context"
	"time"

	"github.com/tnqbao/gau-bakery-service/entity"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts the item; gorm assigns ID, CreatedAt and UpdatedAt.
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// Update replaces every mutable field and refreshes updated_at.
func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entity.Item{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"price":       item.Price,
			"image":       item.Image,
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	item.UpdatedAt = now
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entity.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListAll returns every item, newest first.
func (r *ItemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	items := make([]entity.Item, 0)
	err := r.db.WithContext(ctx).Order("id DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListImages returns the asset filenames referenced by any item.
func (r *ItemRepository) ListImages(ctx context.Context) ([]string, error) {
	var images []string
	err := r.db.WithContext(ctx).Model(&entity.Item{}).
		Where("image IS NOT NULL AND image <> ''").
		Pluck("image", &images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
