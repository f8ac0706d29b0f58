package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type SavedMenuController struct {
	Menus *services.SavedMenuService
	Logs  *services.DailyLogService
}

func NewSavedMenuController(menus *services.SavedMenuService, logs *services.DailyLogService) *SavedMenuController {
	return &SavedMenuController{Menus: menus, Logs: logs}
}

func (mc *SavedMenuController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	menus, err := mc.Menus.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// previews reuse the same aggregator as the day dashboard
	type menuWithProgress struct {
		models.SavedMenu
		Progress []services.CategoryProgress `json:"progress"`
	}
	out := make([]menuWithProgress, 0, len(menus))
	for _, m := range menus {
		out = append(out, menuWithProgress{SavedMenu: m, Progress: services.Summarize(m.Meals, m.Goals)})
	}
	c.JSON(http.StatusOK, out)
}

func (mc *SavedMenuController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var menu models.SavedMenu
	if err := c.ShouldBindJSON(&menu); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.Menus.AddMenu(uid, menu); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "menu saved"})
}

func (mc *SavedMenuController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	var menu models.SavedMenu
	if err := c.ShouldBindJSON(&menu); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	menu.MenuID = c.Param("id")

	if err := mc.Menus.UpdateMenu(uid, menu); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu updated"})
}

func (mc *SavedMenuController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := mc.Menus.DeleteMenu(uid, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}

type renameInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (mc *SavedMenuController) Rename(c *gin.Context) {
	uid := c.GetUint("userID")

	var input renameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.Menus.RenameMenu(uid, c.Param("id"), input.Name, input.Description); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu renamed"})
}

// SaveDayAsMenu clones a day's meals and goals into a new menu. Meals
// are value copies under fresh ids; the log keeps sole ownership of the
// originals.
func (mc *SavedMenuController) SaveDayAsMenu(c *gin.Context) {
	uid := c.GetUint("userID")
	date := c.Param("date")

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := mc.Logs.Get(uid, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if log == nil || len(log.Meals) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing logged for " + date})
		return
	}

	meals := make(models.MealList, 0, len(log.Meals))
	for _, m := range log.Meals {
		meals = append(meals, m.Clone())
	}

	menu := models.SavedMenu{
		MenuID:      utils.NewMenuID(),
		Name:        input.Name,
		Description: input.Description,
		Goals:       log.Goals.Clone(),
		Meals:       meals,
		CreatedAtMS: utils.NowMillis(),
	}

	if err := mc.Menus.AddMenu(uid, menu); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, menu)
}

// LoadMenuIntoDay copies a menu's meals onto a date. Each meal is a deep
// copy under a fresh id, appended one write at a time; the goals write
// follows separately. No transaction spans the two stores, so a crash
// mid-way leaves a partially applied day, which the next full snapshot
// makes visible rather than hiding.
func (mc *SavedMenuController) LoadMenuIntoDay(c *gin.Context) {
	uid := c.GetUint("userID")
	date := c.Param("date")

	menu, err := mc.Menus.Find(uid, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if menu == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}

	for _, m := range menu.Meals {
		if err := mc.Logs.AddMeal(uid, date, m.Clone(), nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if len(menu.Goals) > 0 {
		if err := mc.Logs.UpdateGoals(uid, date, menu.Goals); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "menu loaded", "meals": len(menu.Meals)})
}
