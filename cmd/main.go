package main

import (
	"backend/config"
	"backend/routes"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync()

	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		utils.Logger.Fatalw("database connection failed", "error", err)
	}
	utils.Logger.Infow("connected to MongoDB", "database", cfg.MongoDB)

	if err := utils.InitS3(cfg); err != nil {
		utils.Logger.Warnw("S3 not available, image uploads disabled", "error", err)
	}

	r := routes.SetupRouter(cfg, db)

	utils.Logger.Infow("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Logger.Fatalw("server stopped", "error", err)
	}
}
