package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type MigrationController struct {
	Migration *services.MigrationService
}

func NewMigrationController(migration *services.MigrationService) *MigrationController {
	return &MigrationController{Migration: migration}
}

func (mc *MigrationController) Status(c *gin.Context) {
	pending, err := mc.Migration.HasLocalData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

func (mc *MigrationController) Run(c *gin.Context) {
	uid := c.GetUint("userID")

	count, err := mc.Migration.Migrate(c.Request.Context(), uid)
	if err != nil {
		// local data is untouched on failure; the client may retry
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"migrated": count})
}
