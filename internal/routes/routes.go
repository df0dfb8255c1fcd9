package routes

import (
	"sendloop-api/internal/cache"
	"sendloop-api/internal/handlers"
	"sendloop-api/internal/middleware"
	"sendloop-api/internal/notify"
	"sendloop-api/internal/realtime"
	"sendloop-api/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the shared services the handlers hang off. Everything is
// constructed in main (or a test) and injected; no package globals.
type Deps struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	Scheduler *notify.Scheduler
}

func SetupRoutes(deps Deps) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "sendloop API is running",
		})
	})

	tasks := store.NewTaskStore(deps.DB)
	ledger := store.NewProgressLedger(deps.DB)
	summaries := cache.NewTTLCache[string, handlers.TaskSummary]()

	authHandler := &handlers.AuthHandler{DB: deps.DB}
	subHandler := &handlers.SubscriptionHandler{DB: deps.DB}
	taskHandler := &handlers.TaskHandler{
		Tasks:     tasks,
		Ledger:    ledger,
		Hub:       deps.Hub,
		Summaries: summaries,
		Scheduler: deps.Scheduler,
	}
	progressHandler := &handlers.ProgressHandler{
		Tasks:     tasks,
		Ledger:    ledger,
		Hub:       deps.Hub,
		Summaries: summaries,
	}
	notificationHandler := &handlers.NotificationHandler{
		DB:        deps.DB,
		Tasks:     tasks,
		Scheduler: deps.Scheduler,
	}
	wsHandler := &handlers.WSHandler{Hub: deps.Hub}

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", taskHandler.List)
		protectedRoutes.POST("/tasks", taskHandler.Create)
		protectedRoutes.GET("/tasks/:id", taskHandler.Get)
		protectedRoutes.PUT("/tasks/:id", taskHandler.Update)
		protectedRoutes.POST("/tasks/:id/archive", taskHandler.Archive)
		protectedRoutes.DELETE("/tasks/:id", taskHandler.Delete)
		protectedRoutes.GET("/tasks/:id/summary", taskHandler.Summary)
		protectedRoutes.GET("/tasks/:id/export", taskHandler.Export)
		// Progress ledger endpoints
		protectedRoutes.POST("/tasks/:id/progress", progressHandler.Record)
		protectedRoutes.GET("/tasks/:id/progress", progressHandler.List)
		protectedRoutes.DELETE("/tasks/:id/progress/:date", progressHandler.Delete)
		// Reminder settings
		protectedRoutes.GET("/tasks/:id/notification", notificationHandler.Get)
		protectedRoutes.PUT("/tasks/:id/notification", notificationHandler.Set)
		// Subscription surface
		protectedRoutes.GET("/subscription", subHandler.Status)
		protectedRoutes.POST("/subscription/upgrade", subHandler.Upgrade)
		protectedRoutes.POST("/subscription/downgrade", subHandler.Downgrade)
		// Realtime events
		protectedRoutes.GET("/ws", wsHandler.Serve)
	}

	return ginRouter
}
