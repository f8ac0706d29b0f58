package main

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	var store services.LocalStore
	if client := config.NewRedisClient(); client != nil {
		store = services.NewRedisStore(client)
	} else {
		log.Println("REDIS_ADDR not set, using in-memory local store")
		store = services.NewMemoryStore()
	}

	hub := services.NewRealtimeHub()
	foods := services.NewFoodService()

	authSvc := services.NewAuthService(config.DB)
	userSvc := services.NewUserService(config.DB)
	logSvc := services.NewDailyLogService(config.DB, hub)
	menuSvc := services.NewSavedMenuService(config.DB, hub)
	builderSvc := services.NewBuilderService(store, foods)
	migrationSvc := services.NewMigrationService(config.DB, store, hub)

	r := routes.SetupRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc),
		User:      controllers.NewUserController(userSvc),
		Food:      controllers.NewFoodController(foods),
		Builder:   controllers.NewBuilderController(builderSvc, logSvc, userSvc),
		Logs:      controllers.NewDailyLogController(logSvc),
		Menus:     controllers.NewSavedMenuController(menuSvc, logSvc),
		Migration: controllers.NewMigrationController(migrationSvc),
		Realtime:  controllers.NewRealtimeController(logSvc, menuSvc),
	})
	r.Run(":8080")
}
