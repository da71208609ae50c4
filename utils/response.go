package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func JSON200(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, data)
}

func JSON201(c *gin.Context, data gin.H) {
	c.JSON(http.StatusCreated, data)
}

func JSON400(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// JSON400Fields reports a validation failure with the per-field rules.
func JSON400Fields(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message, "errors": fields})
}

func JSON404(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

func JSON413(c *gin.Context, message string) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": message})
}

func JSON500(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
