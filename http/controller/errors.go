package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-bakery-service/service"
	"github.com/tnqbao/gau-bakery-service/utils"
)

// respondError maps service errors onto status codes. Not-found becomes a 404.
func (ctrl *Controller) respondError(c *gin.Context, tag, entityName string, err error) {
	ctx := c.Request.Context()

	var validationErr *service.ValidationError
	var assetErr *service.AssetWriteError

	switch {
	case errors.As(err, &validationErr):
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[%s] Rejected input: %v", tag, err)
		utils.JSON400Fields(c, "Invalid input", validationErr.Fields)
	case errors.Is(err, service.ErrNotFound):
		utils.JSON404(c, entityName+" not found")
	case errors.As(err, &assetErr):
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[%s] Asset write failed", tag)
		utils.JSON500(c, "Failed to save image")
	default:
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[%s] Request failed: %v", tag, err)
		utils.JSON500(c, "Internal server error")
	}
}
