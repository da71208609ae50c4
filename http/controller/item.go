package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-bakery-service/service"
	"github.com/tnqbao/gau-bakery-service/utils"
)

func (ctrl *Controller) CreateItem(c *gin.Context) {
	ctx := c.Request.Context()

	input, ok := ctrl.readItemForm(c)
	if !ok {
		return
	}

	item, err := ctrl.Items.Create(ctx, input)
	if err != nil {
		ctrl.respondError(c, "Item", "Item", err)
		return
	}

	utils.JSON201(c, gin.H{
		"message": "OK",
		"item":    item,
	})
}

func (ctrl *Controller) ListItems(c *gin.Context) {
	items, err := ctrl.Items.List(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, "Item", "Item", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItemByID answers a missing item with 400, which existing clients rely on.
func (ctrl *Controller) GetItemByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid item ID")
		return
	}

	item, err := ctrl.Items.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Item] Item %d not found", id)
		utils.JSON400(c, "Item not found")
		return
	}
	if err != nil {
		ctrl.respondError(c, "Item", "Item", err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (ctrl *Controller) UpdateItem(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid item ID")
		return
	}

	// Answer a missing item before the upload is read.
	if _, err := ctrl.Items.Get(ctx, id); err != nil {
		ctrl.respondError(c, "Item", "Item", err)
		return
	}

	input, ok := ctrl.readItemForm(c)
	if !ok {
		return
	}

	item, err := ctrl.Items.Update(ctx, id, input)
	if err != nil {
		ctrl.respondError(c, "Item", "Item", err)
		return
	}

	utils.JSON200(c, gin.H{
		"message": "Item updated successfully",
		"item":    item,
	})
}

func (ctrl *Controller) DeleteItem(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := utils.ParseID(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid item ID")
		return
	}

	if err := ctrl.Items.Delete(ctx, id); err != nil {
		ctrl.respondError(c, "Item", "Item", err)
		return
	}

	utils.JSON200(c, gin.H{"message": "Item deleted successfully"})
}
