package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/cache"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/database"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/handlers"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/middleware"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/utils"
)

func main() {
	if err := utils.EnsureJWTReady(); err != nil {
		log.Fatal("JWT configuration error:", err)
	}

	database.InitDB()
	defer database.CloseDB()

	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		githubCache, err := cache.Connect(ctx, addr, "github:", 5*time.Minute)
		cancel()
		if err != nil {
			log.Fatal("Redis connection error:", err)
		}
		defer githubCache.Close()
		handlers.SetGithubCache(githubCache)
		log.Println("Github lookup cache enabled")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)

	router.POST("/api/users", handlers.Register)
	router.POST("/api/auth", handlers.Login)
	router.GET("/api/auth", middleware.AuthRequired(), handlers.CurrentUser)

	profile := router.Group("/api/profile")
	{
		profile.GET("", handlers.ListProfiles)
		profile.GET("/user/:user_id", handlers.GetProfileByUserID)
		profile.GET("/github/:username", handlers.GithubRepos)

		authed := profile.Group("", middleware.AuthRequired())
		{
			authed.GET("/me", handlers.GetMyProfile)
			authed.POST("", handlers.UpsertProfile)
			authed.DELETE("", handlers.DeleteProfileAndUser)
			authed.PUT("/experience", handlers.AddExperience)
			authed.DELETE("/experience/:exp_id", handlers.DeleteExperience)
			authed.PUT("/education", handlers.AddEducation)
			authed.DELETE("/education/:edu_id", handlers.DeleteEducation)
		}
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	log.Println("DevConnect API starting on :" + port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
