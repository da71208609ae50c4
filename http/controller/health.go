package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-bakery-service/utils"
)

func (ctrl *Controller) Health(c *gin.Context) {
	if err := ctrl.Infra.Postgres.Ping(); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "[Health] Postgres ping failed")
		utils.JSON500(c, "database unavailable")
		return
	}
	utils.JSON200(c, gin.H{"status": "ok"})
}
