package controller

import (
	"github.com/tnqbao/gau-bakery-service/config"
	"github.com/tnqbao/gau-bakery-service/infra"
	"github.com/tnqbao/gau-bakery-service/repository"
	"github.com/tnqbao/gau-bakery-service/service"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Items      *service.ItemService
	Bakeries   *service.BakeryService
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}

	env := config.EnvConfig
	itemOpts := []service.ItemOption{
		service.WithMaxImageWidth(env.Asset.MaxImageWidth),
	}
	bakeries := service.NewBakeryService(repo.BakeryRepo, infra.Logger)

	// optional integrations are only attached when present, a nil pointer
	// inside a non-nil interface would defeat the service's nil checks
	if infra.Redis != nil {
		itemOpts = append(itemOpts, service.WithItemListCache(infra.Redis, env.Redis.ListTTL))
		bakeries.WithListCache(infra.Redis, env.Redis.ListTTL)
	}
	if infra.Produce != nil && infra.Produce.AssetService != nil {
		itemOpts = append(itemOpts, service.WithCleanupQueue(infra.Produce.AssetService))
	}
	if infra.Telemetry != nil {
		itemOpts = append(itemOpts, service.WithAssetMetrics(infra.Telemetry))
	}

	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Items:      service.NewItemService(repo.ItemRepo, infra.Assets, infra.Logger, itemOpts...),
		Bakeries:   bakeries,
	}
}
