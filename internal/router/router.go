package router

import (
	"context"
	"time"

	"fuelpos/internal/cache"
	"fuelpos/internal/config"
	"fuelpos/internal/handler"
	"fuelpos/internal/infra"
	"fuelpos/internal/middleware"
	"fuelpos/internal/model"
	"fuelpos/internal/repository"
	"fuelpos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App is the wired application: the Gin engine plus the services the
// composition root needs outside of HTTP (startup recovery, shutdown guard).
type App struct {
	Engine *gin.Engine
	Shifts service.ShiftService
	Seeder service.SeedService

	limiters []*middleware.WindowLimiter
}

// New wires all dependencies and returns the configured application.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb and smtpCB may be nil; reports receives the summary of every ended shift.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, reports service.ReportSink, smtpCB *infra.CircuitBreaker) *App {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loginLimiter := middleware.NewWindowLimiter(20, time.Minute)
	apiLimiter := middleware.NewWindowLimiter(1000, time.Minute)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(apiLimiter))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	fuelRepo := repository.NewFuelRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	pricingSvc := service.NewPricingService(priceRepo, fuelRepo, cache.NewPriceCache(rdb), cfg.BulkThresholdLiters)
	shiftSvc := service.NewShiftService(shiftRepo, txRepo, fuelRepo, reports, nil)
	txSvc := service.NewTransactionService(txRepo, shiftSvc, pricingSvc)
	reportSvc := service.NewReportService(txRepo, fuelRepo)
	seedSvc := service.NewSeedService(fuelRepo, userRepo, priceRepo, pricingSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	shiftsH := handler.NewShiftsHandler(shiftSvc)
	pricingH := handler.NewPricingHandler(pricingSvc)
	txH := handler.NewTransactionsHandler(txSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(loginLimiter), authH.Login)
	}

	// Protected routes: every authenticated role operates the station,
	// management endpoints are admin only.
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	admin := middleware.RequireRole(model.RoleAdmin)
	{
		v1.GET("/pumps", pricingH.Pumps)
		v1.POST("/pricing/quote", pricingH.Quote)

		shifts := v1.Group("/shifts")
		{
			shifts.GET("/current", shiftsH.Current)
			shifts.POST("/start", shiftsH.Start)
			shifts.POST("/end", shiftsH.End)
			shifts.GET("/:id/summary", shiftsH.Summary)
			shifts.GET("", admin, shiftsH.List)
			shifts.GET("/stale", admin, shiftsH.Stale)
			shifts.POST("/stale/close", admin, shiftsH.CloseStale)
		}

		v1.POST("/transactions", txH.Submit)
		v1.GET("/transactions", txH.List)

		v1.GET("/prices", pricingH.Current)
		v1.GET("/prices/history", admin, pricingH.History)
		v1.POST("/prices", admin, pricingH.Set)

		reports := v1.Group("/reports", admin)
		{
			reports.GET("/dashboard", reportsH.Dashboard)
			reports.GET("/series", reportsH.Series)
			reports.GET("/export.xlsx", reportsH.Export)
		}

		users := v1.Group("/users", admin)
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.POST("/password", usersH.ChangePassword)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &App{
		Engine:   r,
		Shifts:   shiftSvc,
		Seeder:   seedSvc,
		limiters: []*middleware.WindowLimiter{loginLimiter, apiLimiter},
	}
}

// PurgeLimiters drops expired rate-limit entries every interval until ctx is done.
func (a *App) PurgeLimiters(ctx context.Context, interval time.Duration) {
	for _, l := range a.limiters {
		go l.RunPurge(ctx, interval)
	}
}
