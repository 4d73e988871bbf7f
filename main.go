package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ShubhamPatel2305/Vroomify/config"
	"github.com/ShubhamPatel2305/Vroomify/controllers"
	"github.com/ShubhamPatel2305/Vroomify/database"
	"github.com/ShubhamPatel2305/Vroomify/helpers"
	"github.com/ShubhamPatel2305/Vroomify/middleware"
	"github.com/ShubhamPatel2305/Vroomify/pinning"
	"github.com/ShubhamPatel2305/Vroomify/routes"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Successfully connected to MongoDB")

	users := database.OpenCollection(client, cfg.MongoDatabase, "users")
	cars := database.OpenCollection(client, cfg.MongoDatabase, "cars")
	if err := database.EnsureUserIndexes(ctx, users); err != nil {
		log.Fatal("Failed to create user indexes:", err)
	}
	if err := database.EnsureCarIndexes(ctx, cars); err != nil {
		log.Fatal("Failed to create car indexes:", err)
	}

	tokens := helpers.NewTokenMaker(cfg.JWTSecret)
	mailer := helpers.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail)
	pinner := pinning.NewClient(cfg.PinningEndpoint, cfg.PinningGateway, cfg.PinningJWT)

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Vroomify API running"})
	})

	authenticate := middleware.Authenticate(tokens, users)
	routes.UserRoutes(r, controllers.NewUserController(users, tokens, mailer), authenticate)
	routes.CarRoutes(r, controllers.NewCarController(cars, pinner), authenticate)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	log.Println("Server is running on port", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
