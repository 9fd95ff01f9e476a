package main

import (
	"os"
	"time"

	"highlaunchpad/config"
	"highlaunchpad/database"
	aiapi "highlaunchpad/internal/api/ai"
	authapi "highlaunchpad/internal/api/auth"
	routes "highlaunchpad/internal/app/http"
	"highlaunchpad/internal/infra/ai"
	"highlaunchpad/internal/infra/identity"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	authapi.Setup(identity.New(config.FIREBASE_PROJECT_ID, config.JWT_SECRET))
	aiapi.Setup(ai.NewClient(config.GEMINI_API_KEY))

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
