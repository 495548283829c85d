package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/forumhub/forum-backend/docs"
	"github.com/forumhub/forum-backend/internal/api/handler"
	"github.com/forumhub/forum-backend/internal/api/middleware"
	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
	"github.com/forumhub/forum-backend/internal/core/service"
	"github.com/forumhub/forum-backend/internal/infrastructure/config"
	mongodb "github.com/forumhub/forum-backend/internal/infrastructure/db/mongo"
	"github.com/forumhub/forum-backend/internal/infrastructure/db/postgres"
	redisdb "github.com/forumhub/forum-backend/internal/infrastructure/db/redis"
)

// Dependencies carries everything the router needs to assemble the service
// graph. Infrastructure clients are opened by the caller so they can be
// closed on shutdown.
type Dependencies struct {
	Config   *config.Config
	Postgres *gorm.DB
	Mongo    *mongo.Database
	Redis    *redis.Client
	Mailer   ports.Mailer
	Storage  ports.FileStorage
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	cfg := d.Config
	secure := !cfg.IsDev()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
	}))
	e.Use(echoprometheus.NewMiddleware("forum"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(d.Postgres)
	sessionRepo := postgres.NewRefreshTokenRepository(d.Postgres)
	themeRepo := postgres.NewThemeRepository(d.Postgres)
	commentRepo := postgres.NewCommentRepository(d.Postgres)
	likeRepo := postgres.NewLikeRepository(d.Postgres)
	categoryRepo := postgres.NewCategoryRepository(d.Postgres)
	newsRepo := mongodb.NewNewsRepository(d.Mongo)

	// --- Services ---
	tokenService := service.NewTokenService(&service.TokenConfig{
		AccessSecret:  []byte(cfg.JWT.AccessSecret),
		RefreshSecret: []byte(cfg.JWT.RefreshSecret),
		VerifySecret:  []byte(cfg.JWT.VerifySecret),
		ResetSecret:   []byte(cfg.JWT.ResetSecret),
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		VerifyTTL:     cfg.JWT.VerifyTTL,
		ResetTTL:      cfg.JWT.ResetTTL,
	}, sessionRepo)
	authService := service.NewAuthService(userRepo, sessionRepo, tokenService, d.Mailer, d.Storage, cfg.ClientURL, d.Logger)
	themeService := service.NewThemeService(themeRepo, commentRepo, likeRepo, d.Logger)
	categoryService := service.NewCategoryService(categoryRepo)
	newsService := service.NewNewsService(newsRepo, d.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.ClientURL, secure)
	themeHandler := handler.NewThemeHandler(themeService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	newsHandler := handler.NewNewsHandler(newsService)

	// --- Guards ---
	authGuard := middleware.Auth(tokenService)
	refreshGuard := middleware.Refresh(tokenService, sessionRepo, secure)
	staffGuard := middleware.RBAC(domain.RoleModerator, domain.RoleAdmin)

	limiter := redisdb.NewRateLimiter(d.Redis)
	globalLimit := middleware.RateLimit(limiter, middleware.RateLimitConfig{
		Scope:  "global",
		Limit:  100,
		Window: time.Minute,
	}, d.Logger)
	loginLimit := middleware.RateLimit(limiter, middleware.RateLimitConfig{
		Scope:  "login",
		Limit:  10,
		Window: time.Minute,
	}, d.Logger)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Postgres, d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api", globalLimit)
	api.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
		Skipper: func(c echo.Context) bool {
			// The refresh and logout flows are guarded by the httpOnly
			// session cookie plus token checks; docs is read-only.
			switch c.Path() {
			case "/api/auth/refresh", "/api/auth/logout":
				return true
			}
			return strings.HasPrefix(c.Path(), "/api/docs")
		},
	}))

	api.GET("/docs/*", echoswagger.WrapHandler)
	api.GET("/csrf-token", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"csrfToken": c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string),
		})
	})

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, loginLimit)
	auth.POST("/logout", authHandler.Logout, authGuard)
	auth.GET("/profile", authHandler.Profile, authGuard)
	auth.PUT("/profile", authHandler.EditProfile, authGuard)
	auth.POST("/refresh", authHandler.RefreshToken, refreshGuard)
	auth.GET("/verify-email/:token", authHandler.VerifyEmail)
	auth.POST("/resend-email", authHandler.ResendEmail)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/change-password", authHandler.ChangePassword, authGuard)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Forum routes ---
	api.GET("/themes/last-five", themeHandler.LastFive)
	api.GET("/themes/:id", themeHandler.Get)
	api.POST("/themes", themeHandler.Create, authGuard)
	api.POST("/themes/:id/comments", themeHandler.AddComment, authGuard)
	api.POST("/likes", themeHandler.Like, authGuard)
	api.DELETE("/likes", themeHandler.Unlike, authGuard)
	api.GET("/categories", categoryHandler.List)

	// --- News routes (mutations restricted to staff) ---
	api.GET("/news", newsHandler.List)
	api.GET("/news/:id", newsHandler.Get)
	api.POST("/news", newsHandler.Create, authGuard, staffGuard)
	api.PUT("/news/:id", newsHandler.Edit, authGuard, staffGuard)
	api.DELETE("/news/:id", newsHandler.Remove, authGuard, staffGuard)

	return e
}
