package routes

import (
	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Food      *controllers.FoodController
	Builder   *controllers.BuilderController
	Logs      *controllers.DailyLogController
	Menus     *controllers.SavedMenuController
	Migration *controllers.MigrationController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(c Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// Static food taxonomy, public so the builder UI can render pre-login
	food := r.Group("/food")
	{
		food.GET("/categories", c.Food.ListCategories)
		food.GET("/categories/:id", c.Food.GetCategory)
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", c.User.GetProfile)
		user.PUT("/profile", c.User.UpdateProfile)
		user.PUT("/targets", c.User.UpdateTargets)
		user.POST("/onboarding/complete", c.User.CompleteOnboarding)
	}

	builder := r.Group("/builder")
	builder.Use(middlewares.AuthMiddleware())
	{
		builder.GET("/selection", c.Builder.GetSelection)
		builder.POST("/selection", c.Builder.AddIngredient)
		builder.POST("/selection/remove", c.Builder.RemoveIngredient)
		builder.DELETE("/selection", c.Builder.ClearSelection)
		builder.POST("/finalize", c.Builder.Finalize)
	}

	logs := r.Group("/logs")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.GET("", c.Logs.History)
		logs.GET("/:date", c.Logs.GetLog)
		logs.POST("/:date/meals", c.Logs.AddMeal)
		logs.PUT("/:date/meals/:mealId", c.Logs.UpdateMeal)
		logs.DELETE("/:date/meals/:mealId", c.Logs.DeleteMeal)
		logs.PUT("/:date/goals", c.Logs.UpdateGoals)
		logs.POST("/:date/save-menu", c.Menus.SaveDayAsMenu)
	}

	menus := r.Group("/menus")
	menus.Use(middlewares.AuthMiddleware())
	{
		menus.GET("", c.Menus.List)
		menus.POST("", c.Menus.Create)
		menus.PUT("/:id", c.Menus.Update)
		menus.DELETE("/:id", c.Menus.Delete)
		menus.PATCH("/:id/name", c.Menus.Rename)
		menus.POST("/:id/load/:date", c.Menus.LoadMenuIntoDay)
	}

	migration := r.Group("/migration")
	migration.Use(middlewares.AuthMiddleware())
	{
		migration.GET("/status", c.Migration.Status)
		migration.POST("/run", c.Migration.Run)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/logs/:date", c.Realtime.DailyLogWS)
		ws.GET("/menus", c.Realtime.SavedMenusWS)
	}

	return r
}
