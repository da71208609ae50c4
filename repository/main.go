package repository

import (
	"errors"

	"github.com/tnqbao/gau-bakery-service/infra"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when no row matches the requested id.
var ErrRecordNotFound = errors.New("record not found")

type Repository struct {
	ItemRepo   *ItemRepository
	BakeryRepo *BakeryRepository
}

func InitRepository(infra *infra.Infra) *Repository {
	return NewRepository(infra.Postgres.DB)
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		ItemRepo:   NewItemRepository(db),
		BakeryRepo: NewBakeryRepository(db),
	}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
