package main

import (
	"log"
	"os"

	"sendloop-api/internal/database"
	"sendloop-api/internal/notify"
	"sendloop-api/internal/realtime"
	"sendloop-api/internal/routes"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	db, err := database.Open(getEnv("SENDLOOP_DB", "sendloop.db"))
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	hub := realtime.NewHub()

	scheduler := notify.NewScheduler(db, hub)
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start reminder scheduler: ", err)
	}
	defer scheduler.Stop()

	ginRoutes := routes.SetupRoutes(routes.Deps{
		DB:        db,
		Hub:       hub,
		Scheduler: scheduler,
	})

	port := ":" + getEnv("PORT", "8008")
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/register")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  GET    /api/tasks/:id")
	log.Println("  PUT    /api/tasks/:id")
	log.Println("  POST   /api/tasks/:id/archive")
	log.Println("  DELETE /api/tasks/:id")
	log.Println("  GET    /api/tasks/:id/summary")
	log.Println("  POST   /api/tasks/:id/progress")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
