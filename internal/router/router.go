package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/config"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/handler"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/middleware"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Attempt *handler.AttemptHandler
	WS      *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Attempt Group (Optional JWT) ──────────────────────────────────
	// Attempts run with or without a logged-in learner; the token, when
	// present, only enriches the result record.
	attemptAPI := router.Group("/api/v1/attempts")
	attemptAPI.Use(middleware.OptionalStudentJWT(cfg.JWTSecret))
	{
		attemptAPI.POST("", handlers.Attempt.StartAttempt)
		attemptAPI.GET("/:attempt_id/paper", handlers.Attempt.GetPaper)
		attemptAPI.GET("/:attempt_id/state", handlers.Attempt.GetState)
		attemptAPI.POST("/:attempt_id/navigate", handlers.Attempt.Navigate)
		attemptAPI.POST("/:attempt_id/answers/single", handlers.Attempt.AnswerSingle)
		attemptAPI.POST("/:attempt_id/answers/multiple", handlers.Attempt.AnswerMultiple)
		attemptAPI.POST("/:attempt_id/answers/matching", handlers.Attempt.AnswerMatching)
		attemptAPI.POST("/:attempt_id/review", handlers.Attempt.MarkReview)
		attemptAPI.POST("/:attempt_id/skip", handlers.Attempt.Skip)
		attemptAPI.POST("/:attempt_id/proctor-events", handlers.Attempt.ProctorEvent)
		attemptAPI.POST("/:attempt_id/submit", handlers.Attempt.Submit)
	}

	// ─── WebSocket Group ───────────────────────────────────────────────
	wsGroup := router.Group("/ws/v1")
	wsGroup.Use(middleware.OptionalStudentJWT(cfg.JWTSecret))
	{
		wsGroup.GET("/attempts/:attempt_id/stream", handlers.WS.AttemptStream)
	}

	return router
}
