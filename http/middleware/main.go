package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-bakery-service/http/controller"
)

type Middlewares struct {
	CORSMiddleware      gin.HandlerFunc
	TelemetryMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors := CORSMiddleware(ctrl.Config.EnvConfig)
	telemetry := TelemetryMiddleware(ctrl.Infra.Telemetry)

	return &Middlewares{
		CORSMiddleware:      cors,
		TelemetryMiddleware: telemetry,
	}, nil
}
