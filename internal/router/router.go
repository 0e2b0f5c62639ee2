package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/internal/auth"
	"github.com/navhub-dev/navhub/internal/config"
	"github.com/navhub-dev/navhub/internal/handlers"
	"github.com/navhub-dev/navhub/internal/linkcheck"
	"github.com/navhub-dev/navhub/internal/middleware"
	"github.com/navhub-dev/navhub/internal/repository"
	"github.com/navhub-dev/navhub/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the shared components every route is built from.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Tokens *auth.TokenService
	Logger *zap.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	users := repository.NewUserRepository(deps.DB, logger)
	authService := service.NewAuthService(users, deps.Tokens, logger)
	checker := linkcheck.NewChecker(cfg.LinkCheck.Timeout, logger)

	healthHandler := handlers.NewHealthHandler(deps.DB)
	authHandler := handlers.NewAuthHandler(authService, logger)
	categoryHandler := handlers.NewCategoryHandler(repository.NewCategoryRepository(deps.DB, logger), logger)
	tagHandler := handlers.NewTagHandler(repository.NewTagRepository(deps.DB, logger), checker, logger)
	engineHandler := handlers.NewSearchEngineHandler(repository.NewSearchEngineRepository(deps.DB, logger), logger)
	settingHandler := handlers.NewSettingHandler(repository.NewSettingRepository(deps.DB, logger), logger)

	requireAuth := middleware.AuthMiddleware(deps.Tokens, logger)

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.HealthCheck)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/change-password", requireAuth, authHandler.ChangePassword)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", requireAuth, categoryHandler.CreateCategory)
			categories.PUT("/:id", requireAuth, categoryHandler.UpdateCategory)
			categories.DELETE("/:id", requireAuth, categoryHandler.DeleteCategory)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.ListTags)
			tags.POST("", requireAuth, tagHandler.CreateTag)
			tags.PUT("/:id", requireAuth, tagHandler.UpdateTag)
			tags.DELETE("/:id", requireAuth, tagHandler.DeleteTag)
			tags.POST("/:id/check", requireAuth, tagHandler.CheckTag)
		}

		engines := api.Group("/search-engines")
		{
			engines.GET("", engineHandler.ListSearchEngines)
			engines.POST("", requireAuth, engineHandler.CreateSearchEngine)
			engines.PUT("/:id", requireAuth, engineHandler.UpdateSearchEngine)
			engines.DELETE("/:id", requireAuth, engineHandler.DeleteSearchEngine)
		}

		settings := api.Group("/settings")
		{
			settings.GET("", settingHandler.ListSettings)
			settings.POST("", requireAuth, settingHandler.SaveSettings)
		}
	}

	r.NoRoute(frontendFallback(cfg.Frontend.Dir))

	return r
}

// frontendFallback serves the built single-page app. Existing files are
// returned as-is and any other GET path gets index.html so client-side
// routes survive a reload. Unknown /api paths always answer with JSON.
func frontendFallback(dir string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		reqPath := ctx.Request.URL.Path

		if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		if dir == "" || (ctx.Request.Method != http.MethodGet && ctx.Request.Method != http.MethodHead) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+reqPath)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			ctx.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		ctx.File(index)
	}
}
