package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{Foods: foods}
}

func (fc *FoodController) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, fc.Foods.Categories())
}

func (fc *FoodController) GetCategory(c *gin.Context) {
	cat, ok := fc.Foods.FindCategory(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, cat)
}
