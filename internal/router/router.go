package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bookquiz/quiz-backend/internal/config"
	"github.com/bookquiz/quiz-backend/internal/handler"
	"github.com/bookquiz/quiz-backend/internal/middleware"
	"github.com/bookquiz/quiz-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz *handler.QuizHandler
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
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"message": "Quiz backend is running"})
	})

	// Rate limiter for the public quiz API (60 requests per minute per IP).
	quizLimiter := middleware.NewRateLimiter(60, time.Minute)

	// ─── Quiz Group (Public, Rate Limited) ─────────────────────────────
	quizAPI := router.Group("/api/v1/quiz")
	quizAPI.Use(quizLimiter.Middleware())
	{
		quizAPI.GET("/questions", handlers.Quiz.IssueQuestions)
		quizAPI.POST("/answers", handlers.Quiz.SubmitAnswers)
	}

	return router
}
