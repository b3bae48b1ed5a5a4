package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/skillbase/skillbase-backend/internal/config"
	"github.com/skillbase/skillbase-backend/internal/handler"
	"github.com/skillbase/skillbase-backend/internal/middleware"
	"github.com/skillbase/skillbase-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Subject    *handler.SubjectHandler
	Topic      *handler.TopicHandler
	Quiz       *handler.QuizHandler
	Assignment *handler.AssignmentHandler
	User       *handler.UserHandler
	Customer   *handler.CustomerHandler
	Product    *handler.ProductHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// rateLimiter may be nil when rate limiting is disabled.
func SetupRouter(
	handlers *Handlers,
	rateLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *gin.Engine {
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

	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware())
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// ─── 1. Catalog Group (subjects, topics, quizzes) ──────────────────
	{
		api.GET("/subjects", handlers.Subject.GetAll)
		api.POST("/subjects", handlers.Subject.Create)
		api.GET("/subjects/:id", handlers.Subject.GetByID)
		api.PUT("/subjects/:id", handlers.Subject.Update)
		api.DELETE("/subjects/:id", handlers.Subject.Delete)

		api.GET("/subjects/:id/topics", handlers.Topic.ListBySubject)
		api.POST("/subjects/:id/topics", handlers.Topic.Create)
		api.GET("/topics/:id", handlers.Topic.GetByID)
		api.PUT("/topics/:id", handlers.Topic.Update)
		api.DELETE("/topics/:id", handlers.Topic.Delete)

		api.GET("/subjects/:id/quizzes", handlers.Quiz.ListBySubject)
		api.POST("/subjects/:id/quizzes", handlers.Quiz.Create)
		api.GET("/quizzes/:id", handlers.Quiz.GetByID)
		api.PUT("/quizzes/:id", handlers.Quiz.Update)
		api.DELETE("/quizzes/:id", handlers.Quiz.Delete)
	}

	// ─── 2. Assignment Group ───────────────────────────────────────────
	{
		api.POST("/subjects/:id/assignments", handlers.Assignment.AssignMany)
		api.DELETE("/subjects/:id/assignments", handlers.Assignment.UnassignMany)
		api.GET("/subjects/:id/assignments/:user_id", handlers.Assignment.Get)
		api.PUT("/subjects/:id/assignments/:user_id", handlers.Assignment.UpdateCompletionRate)
		api.DELETE("/subjects/:id/assignments/:user_id", handlers.Assignment.Unassign)
		api.GET("/subjects/:id/users", handlers.Assignment.ListUsers)
		api.GET("/users/:id/subjects", handlers.Assignment.ListSubjects)
	}

	// ─── 3. User Group ─────────────────────────────────────────────────
	{
		api.GET("/users", handlers.User.GetAll)
		api.POST("/users", handlers.User.Create)
		api.GET("/users/:id", handlers.User.GetByID)
		api.PUT("/users/:id", handlers.User.Update)
		api.PUT("/users/:id/enabled", handlers.User.SetEnabled)
		api.DELETE("/users/:id", handlers.User.Delete)
	}

	// ─── 4. Commerce Group (customers, products) ───────────────────────
	{
		api.GET("/customers", handlers.Customer.GetAll)
		api.POST("/customers", handlers.Customer.Create)
		api.GET("/customers/:id", handlers.Customer.GetByID)
		api.PUT("/customers/:id", handlers.Customer.Update)
		api.DELETE("/customers/:id", handlers.Customer.Delete)

		api.GET("/products", handlers.Product.GetAll)
		api.POST("/products", handlers.Product.Create)
		api.GET("/products/:id", handlers.Product.GetByID)
		api.PUT("/products/:id", handlers.Product.Update)
		api.DELETE("/products/:id", handlers.Product.Delete)
	}

	return router
}
