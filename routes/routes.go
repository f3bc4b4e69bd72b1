package routes

import (
	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires every service and controller off the shared database
// handle and configuration.
func SetupRouter(cfg *config.Config, db *mongo.Database) *gin.Engine {
	router := services.NewCollectionRouter(db)
	store := services.NewNutritionStore(router)
	users := services.NewUserService(db)
	vlm := services.NewVLMService(services.NewOpenRouterClient(cfg))
	hub := services.NewAnalysisHub()

	authController := controllers.NewAuthController(users, cfg)
	nutritionController := controllers.NewNutritionController(store)
	llmController := controllers.NewLLMController(vlm)
	wsController := controllers.NewAnalysisWSController(hub, vlm, store, cfg)

	r := gin.Default()
	authRequired := middlewares.AuthMiddleware(cfg.JWTSecret)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/reset-password", authController.ResetPassword)
			auth.GET("/me", authRequired, authController.GetCurrentUser)
		}

		nutrition := api.Group("/nutrition")
		nutrition.Use(authRequired)
		{
			nutrition.POST("", nutritionController.Create)
			nutrition.GET("", nutritionController.List)
			nutrition.GET("/:id", nutritionController.Get)
			nutrition.PUT("/:id", nutritionController.Update)
			nutrition.DELETE("/:id", nutritionController.Delete)
		}

		api.POST("/llm/generate", llmController.Generate)
		api.POST("/images", authRequired, controllers.UploadImage)
	}

	// Websocket auth happens at handshake inside the controller, not via the
	// bearer middleware: browsers cannot set headers on websocket upgrades.
	r.GET("/ws/analyze", wsController.AnalyzeWS)

	return r
}
