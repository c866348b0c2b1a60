package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"opdrape-backend/ai"
	"opdrape-backend/config"
	"opdrape-backend/database"
	"opdrape-backend/middleware"
	"opdrape-backend/routes"
)

func main() {
	config.LoadEnv()

	uri := config.MustGetEnv("MONGO_URI")
	dbName := config.MustGetEnv("DB_NAME")
	jwtSecret := []byte(config.MustGetEnv("JWT_SECRET"))

	store, err := database.Connect(context.Background(), uri, dbName)
	if err != nil {
		log.Fatal("MongoDB connection error: ", err)
	}
	defer store.Close(context.Background())

	generator := ai.NewHTTPClient(
		config.GetEnv("AI_API_URL", "http://localhost:9090/generate"),
		config.GetEnv("AI_API_KEY", ""),
	)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.GetEnv("FRONTEND_URL", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, store, generator, jwtSecret)

	port := config.GetEnv("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server error: ", err)
	}
}
