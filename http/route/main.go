package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-bakery-service/http/controller"
	middlewares "github.com/tnqbao/gau-bakery-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}
	r.Use(middles.CORSMiddleware, middles.TelemetryMiddleware)

	r.GET("/healthz", ctrl.Health)

	// stored images are public when kept on local disk
	if ctrl.Infra.Disk != nil {
		r.Static(ctrl.Config.EnvConfig.Asset.PublicPath, ctrl.Infra.Disk.Dir())
	}

	apiRoutes := r.Group("/api")
	{
		itemRoutes := apiRoutes.Group("/items")
		{
			itemRoutes.GET("", ctrl.ListItems)
			itemRoutes.POST("", ctrl.CreateItem)
			itemRoutes.GET("/:id", ctrl.GetItemByID)
			itemRoutes.PUT("/:id", ctrl.UpdateItem)
			itemRoutes.DELETE("/:id", ctrl.DeleteItem)
		}

		bakeryRoutes := apiRoutes.Group("/bakeries")
		{
			bakeryRoutes.GET("", ctrl.ListBakeries)
			bakeryRoutes.POST("", ctrl.CreateBakery)
			bakeryRoutes.GET("/:id", ctrl.GetBakeryByID)
			bakeryRoutes.PUT("/:id", ctrl.UpdateBakery)
			bakeryRoutes.DELETE("/:id", ctrl.DeleteBakery)
		}
	}
	return r
}
