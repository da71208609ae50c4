package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-bakery-service/http/controller/dto"
	"github.com/tnqbao/gau-bakery-service/service"
	"github.com/tnqbao/gau-bakery-service/utils"
)

func (ctrl *Controller) CreateBakery(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BakeryRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Bakery] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	bakery, err := ctrl.Bakeries.Create(ctx, service.BakeryInput{Name: req.Name, Pincode: req.Pincode})
	if err != nil {
		ctrl.respondError(c, "Bakery", "Bakery", err)
		return
	}

	utils.JSON201(c, gin.H{
		"message": "OK",
		"bakery":  bakery,
	})
}

func (ctrl *Controller) ListBakeries(c *gin.Context) {
	bakeries, err := ctrl.Bakeries.List(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, "Bakery", "Bakery", err)
		return
	}
	c.JSON(http.StatusOK, bakeries)
}

// GetBakeryByID answers a missing bakery with 400, like GetItemByID.
func (ctrl *Controller) GetBakeryByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid bakery ID")
		return
	}

	bakery, err := ctrl.Bakeries.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Bakery] Bakery %d not found", id)
		utils.JSON400(c, "Bakery not found")
		return
	}
	if err != nil {
		ctrl.respondError(c, "Bakery", "Bakery", err)
		return
	}

	c.JSON(http.StatusOK, bakery)
}

func (ctrl *Controller) UpdateBakery(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid bakery ID")
		return
	}

	if _, err := ctrl.Bakeries.Get(ctx, id); err != nil {
		ctrl.respondError(c, "Bakery", "Bakery", err)
		return
	}

	var req dto.BakeryRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Bakery] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	bakery, err := ctrl.Bakeries.Update(ctx, id, service.BakeryInput{Name: req.Name, Pincode: req.Pincode})
	if err != nil {
		ctrl.respondError(c, "Bakery", "Bakery", err)
		return
	}

	utils.JSON200(c, gin.H{
		"message": "Bakery updated successfully",
		"bakery":  bakery,
	})
}

func (ctrl *Controller) DeleteBakery(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid bakery ID")
		return
	}

	if err := ctrl.Bakeries.Delete(ctx, id); err != nil {
		ctrl.respondError(c, "Bakery", "Bakery", err)
		return
	}

	utils.JSON200(c, gin.H{"message": "Bakery deleted successfully"})
}
