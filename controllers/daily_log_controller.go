package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type DailyLogController struct {
	Logs *services.DailyLogService
}

func NewDailyLogController(logs *services.DailyLogService) *DailyLogController {
	return &DailyLogController{Logs: logs}
}

type addMealInput struct {
	Meal  models.Meal      `json:"meal" binding:"required"`
	Goals models.TargetMap `json:"goals"`
}

// GetLog returns the day's record with its portion progress. Progress is
// computed by the same aggregator the dashboard and menu previews use.
func (dc *DailyLogController) GetLog(c *gin.Context) {
	uid := c.GetUint("userID")
	date := c.Param("date")

	log, err := dc.Logs.Get(uid, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if log == nil {
		c.JSON(http.StatusOK, services.LogSnapshot{State: services.SnapshotAbsent})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":    services.SnapshotPresent,
		"log":      log,
		"progress": services.Summarize(log.Meals, log.Goals),
	})
}

func (dc *DailyLogController) History(c *gin.Context) {
	uid := c.GetUint("userID")

	logs, err := dc.Logs.History(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (dc *DailyLogController) AddMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	date := c.Param("date")

	var input addMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Meal.ID == "" {
		input.Meal.ID = models.NewMealID()
	}

	if err := dc.Logs.AddMeal(uid, date, input.Meal, input.Goals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, input.Meal)
}

func (dc *DailyLogController) UpdateMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	date := c.Param("date")

	var meal models.Meal
	if err := c.ShouldBindJSON(&meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal.ID = c.Param("mealId")

	if err := dc.Logs.UpdateMeal(uid, date, meal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (dc *DailyLogController) DeleteMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := dc.Logs.DeleteMeal(uid, c.Param("date"), c.Param("mealId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal removed"})
}

func (dc *DailyLogController) UpdateGoals(c *gin.Context) {
	uid := c.GetUint("userID")
	date := c.Param("date")

	var goals models.TargetMap
	if err := c.ShouldBindJSON(&goals); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for cat, v := range goals {
		if v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target for " + cat + " must be >= 0"})
			return
		}
	}

	if err := dc.Logs.UpdateGoals(uid, date, goals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}
