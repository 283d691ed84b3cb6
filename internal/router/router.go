package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/handler"
	"github.com/kashafa/tadreeb-backend/internal/middleware"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Course   *handler.CourseHandler
	Exam     *handler.ExamHandler
	Schedule *handler.ScheduleHandler
	Setting  *handler.SettingHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-Admin-Secret"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve certificate images statically with aggressive caching (1 year).
	certificates := router.Group("/certificates")
	certificates.Use(middleware.CacheControl(31536000))
	{
		certificates.Static("/", cfg.CertificateDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for barcode login (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/barcode-login", handlers.Auth.BarcodeLogin)
	}

	// ─── 2. Public Group (No Auth) ─────────────────────────────────────
	// The login screen shows the exam window countdown before any token
	// exists.
	router.GET("/api/schedule", handlers.Schedule.GetSchedule)

	// ─── 3. User Group (JWT) ───────────────────────────────────────────
	userAPI := router.Group("/api")
	userAPI.Use(middleware.RequireUserJWT(authService))
	{
		userAPI.GET("/users/:id", handlers.User.GetUser)
		userAPI.PATCH("/users/:id/progress", handlers.User.UpdateProgress)

		userAPI.GET("/courses", handlers.Course.ListCourses)
		userAPI.GET("/courses/:id/exam", handlers.Course.GetExamPaper)

		userAPI.POST("/courses/:id/exam/start", handlers.Exam.StartExam)
		userAPI.POST("/courses/:id/exam/answers", handlers.Exam.AnswerQuestion)
		userAPI.POST("/courses/:id/exam/page", handlers.Exam.ChangePage)
		userAPI.POST("/courses/:id/exam/submit", handlers.Exam.SubmitExam)
		userAPI.GET("/courses/:id/exam/state", handlers.Exam.GetExamState)
	}

	// ─── 4. WebSocket Group (User WS Auth) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/schedule/stream", handlers.WS.ScheduleStream)
	}

	// ─── 5. Admin Group (Shared Secret) ────────────────────────────────
	adminAPI := router.Group("/api/admin")
	adminAPI.Use(middleware.RequireAdminSecret(authService))
	{
		adminAPI.PUT("/schedule", handlers.Schedule.UpdateSchedule)
		adminAPI.GET("/settings", handlers.Setting.GetSettings)
		adminAPI.PUT("/settings", handlers.Setting.UpdateSettings)
	}

	return router
}
