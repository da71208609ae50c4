package repository

import (
	"context"
	"time"

	"github.com/tnqbao/gau-bakery-service/entity"
	"gorm.io/gorm"
)

type BakeryRepository struct {
	db *gorm.DB
}

func NewBakeryRepository(db *gorm.DB) *BakeryRepository {
	return &BakeryRepository{db: db}
}

func (r *BakeryRepository) Create(ctx context.Context, bakery *entity.Bakery) error {
	return r.db.WithContext(ctx).Create(bakery).Error
}

func (r *BakeryRepository) FindByID(ctx context.Context, id int64) (*entity.Bakery, error) {
	var bakery entity.Bakery
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bakery).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &bakery, nil
}

func (r *BakeryRepository) Update(ctx context.Context, bakery *entity.Bakery) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entity.Bakery{}).Where("id = ?", bakery.ID).
		Updates(map[string]interface{}{
			"name":       bakery.Name,
			"pincode":    bakery.Pincode,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	bakery.UpdatedAt = now
	return nil
}

func (r *BakeryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entity.Bakery{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListAll returns every bakery in ascending id order.
func (r *BakeryRepository) ListAll(ctx context.Context) ([]entity.Bakery, error) {
	bakeries := make([]entity.Bakery, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&bakeries).Error
	if err != nil {
		return nil, err
	}
	return bakeries, nil
}
