package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/quantamisecode-hub/groona-sub009/db"
	"github.com/quantamisecode-hub/groona-sub009/internal/auth"
	"github.com/quantamisecode-hub/groona-sub009/internal/handlers"
	"github.com/quantamisecode-hub/groona-sub009/internal/mailer"
	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
	"github.com/quantamisecode-hub/groona-sub009/internal/router"
	"github.com/quantamisecode-hub/groona-sub009/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gormStore := store.NewGorm(db.DB)
	mailClient := mailer.New(os.Getenv("MAIL_API_URL"), os.Getenv("MAIL_API_KEY"))

	engine := notifier.New(gormStore, gormStore, mailClient, notifier.Config{
		BaseURL:     os.Getenv("APP_BASE_URL"),
		ProductName: "Groona",
		FromName:    os.Getenv("MAIL_FROM_NAME"),
		Broadcast:   handlers.BroadcastNotification,
	})

	handlers.InitNotifier(engine)

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
