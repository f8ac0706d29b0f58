package controllers

import (
	"fmt"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

// BuilderController drives the meal-in-progress: add/remove ingredients
// against the draft, preview progress, and commit the finished meal to
// today's log.
type BuilderController struct {
	Builder *services.BuilderService
	Logs    *services.DailyLogService
	Users   *services.UserService
}

func NewBuilderController(builder *services.BuilderService, logs *services.DailyLogService, users *services.UserService) *BuilderController {
	return &BuilderController{Builder: builder, Logs: logs, Users: users}
}

type ingredientInput struct {
	CategoryID string `json:"category_id" binding:"required"`
	GroupID    string `json:"group_id" binding:"required"`
	Ingredient string `json:"ingredient"`
}

type finalizeInput struct {
	Name  string `json:"name"`
	Date  string `json:"date" binding:"required"`
	Clear *bool  `json:"clear"` // default true: reset the draft once saved
}

func (bc *BuilderController) GetSelection(c *gin.Context) {
	uid := c.GetUint("userID")

	b, err := bc.Builder.Load(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"selection": b.Selection(),
		"empty":     b.IsEmpty(),
	})
}

func (bc *BuilderController) AddIngredient(c *gin.Context) {
	uid := c.GetUint("userID")

	var input ingredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := bc.Builder.Load(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	b.AddIngredient(input.CategoryID, input.GroupID, input.Ingredient)

	if err := bc.Builder.Save(c.Request.Context(), uid, b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": b.Selection()})
}

func (bc *BuilderController) RemoveIngredient(c *gin.Context) {
	uid := c.GetUint("userID")

	var input ingredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := bc.Builder.Load(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	b.RemoveIngredient(input.CategoryID, input.GroupID, input.Ingredient)

	if err := bc.Builder.Save(c.Request.Context(), uid, b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": b.Selection()})
}

func (bc *BuilderController) ClearSelection(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := bc.Builder.Reset(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "draft cleared"})
}

// Finalize turns the draft into a Meal and appends it to the given
// date's log, stamping the day's goals from the user's working targets
// (covers the "first meal of the day sets the goals" flow).
func (bc *BuilderController) Finalize(c *gin.Context) {
	uid := c.GetUint("userID")

	var input finalizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := bc.Builder.Load(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if b.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selection is empty"})
		return
	}

	user, err := bc.Users.Profile(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	name := input.Name
	if name == "" {
		if log, _ := bc.Logs.Get(uid, input.Date); log != nil {
			name = fmt.Sprintf("Comida %d", len(log.Meals)+1)
		} else {
			name = "Comida 1"
		}
	}

	meal := b.Finalize(name)
	if err := bc.Logs.AddMeal(uid, input.Date, meal, user.Targets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if input.Clear == nil || *input.Clear {
		if err := bc.Builder.Reset(c.Request.Context(), uid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusCreated, meal)
}
