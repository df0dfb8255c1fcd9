package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sendloop-api/internal/auth"
	"sendloop-api/internal/cache"
	"sendloop-api/internal/middleware"
	"sendloop-api/internal/notify"
	"sendloop-api/internal/realtime"
	"sendloop-api/internal/store"
	"sendloop-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	hub       *realtime.Hub
	scheduler *notify.Scheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	hub := realtime.NewHub()
	scheduler := notify.NewScheduler(db, hub)

	tasks := store.NewTaskStore(db)
	ledger := store.NewProgressLedger(db)
	summaries := cache.NewTTLCache[string, TaskSummary]()

	taskHandler := &TaskHandler{Tasks: tasks, Ledger: ledger, Hub: hub, Summaries: summaries, Scheduler: scheduler}
	progressHandler := &ProgressHandler{Tasks: tasks, Ledger: ledger, Hub: hub, Summaries: summaries}
	notificationHandler := &NotificationHandler{DB: db, Tasks: tasks, Scheduler: scheduler}
	authHandler := &AuthHandler{DB: db}
	subHandler := &SubscriptionHandler{DB: db}

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())
	protected.GET("/tasks", taskHandler.List)
	protected.POST("/tasks", taskHandler.Create)
	protected.GET("/tasks/:id", taskHandler.Get)
	protected.PUT("/tasks/:id", taskHandler.Update)
	protected.POST("/tasks/:id/archive", taskHandler.Archive)
	protected.DELETE("/tasks/:id", taskHandler.Delete)
	protected.GET("/tasks/:id/summary", taskHandler.Summary)
	protected.GET("/tasks/:id/export", taskHandler.Export)
	protected.POST("/tasks/:id/progress", progressHandler.Record)
	protected.GET("/tasks/:id/progress", progressHandler.List)
	protected.DELETE("/tasks/:id/progress/:date", progressHandler.Delete)
	protected.GET("/tasks/:id/notification", notificationHandler.Get)
	protected.PUT("/tasks/:id/notification", notificationHandler.Set)
	protected.GET("/subscription", subHandler.Status)
	protected.POST("/subscription/upgrade", subHandler.Upgrade)
	protected.POST("/subscription/downgrade", subHandler.Downgrade)

	return &testEnv{router: r, db: db, hub: hub, scheduler: scheduler}
}

func tokenFor(t *testing.T, userID, plan string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, "tester", plan)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func (e *testEnv) createTask(t *testing.T, token, title string, cycle int) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":       title,
		"cycleLength": cycle,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Task struct {
			ID string `json:"id"`
		} `json:"task"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Task.ID)
	return resp.Task.ID
}
