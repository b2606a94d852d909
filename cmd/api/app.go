package main

import (
	"time"

	"ai-interviewer/internal/adapter"
	"ai-interviewer/internal/adapter/evaluator"
	"ai-interviewer/internal/adapter/payment"
	"ai-interviewer/internal/config"
	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/handler"
	"ai-interviewer/internal/logger"
	"ai-interviewer/internal/metrics"
	"ai-interviewer/internal/middleware"
	"ai-interviewer/internal/repository"
	"ai-interviewer/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	deviceLockWait = 5 * time.Second

	// 락은 질문 생성(LLM) 과 consume 트랜잭션까지 버텨야 한다
	deviceLockMargin = 30 * time.Second
)

// appDeps are the live clients main opens before assembling the app.
type appDeps struct {
	cfg      *config.Config
	db       *sqlx.DB
	redis    *redis.Client // nil: no view cache, no device locks
	model    llms.Model    // nil: fallback questions and evaluations
	registry *prometheus.Registry
}

// deviceLockTTL keeps the per-device lock alive for a full question generation.
func deviceLockTTL(llmTimeout time.Duration) time.Duration {
	return llmTimeout + deviceLockMargin
}

func newApp(deps appDeps) *fiber.App {
	cfg := deps.cfg
	appLogger := logger.Get()

	viewCache := service.NewInterviewViewCache(nil, cfg.Cache.InterviewTTL)
	var locker domain.DeviceLocker
	if deps.redis != nil {
		viewCache = service.NewInterviewViewCache(adapter.NewRedisCacheAdapter(deps.redis), cfg.Cache.InterviewTTL)
		locker = adapter.NewRedisDeviceLocker(deps.redis, deviceLockTTL(cfg.LLM.Timeout), deviceLockWait)
	}

	var provider domain.PaymentProvider
	if cfg.Payment.PaymentConfigured() {
		provider = payment.NewCreemClient(cfg.Payment.APIURL, cfg.Payment.APIKey, cfg.Payment.Timeout)
		appLogger.Info("Payment provider configured", zap.String("api_url", cfg.Payment.APIURL))
	} else {
		appLogger.Warn("Payment provider not configured, checkout will return 503")
	}

	appMetrics := metrics.New(deps.registry, cfg.App.ToolName)

	// Repositories
	interviewRepo := repository.NewSQLXInterviewRepository(deps.db)
	submissionRepo := repository.NewSQLXSubmissionRepository(deps.db)
	balanceRepo := repository.NewSQLXTokenBalanceRepository(deps.db)
	paymentRepo := repository.NewSQLXPaymentTransactionRepository(deps.db)
	txManager := repository.NewTransactionManagerAdapter(deps.db)

	// Services
	ledger := service.NewCreditLedger(balanceRepo, cfg.Credits.FreeTrialLimit, appMetrics)
	interviewService := service.NewInterviewService(service.InterviewServiceDeps{
		Interviews:    interviewRepo,
		Submissions:   submissionRepo,
		TxManager:     txManager,
		Ledger:        ledger,
		Gateway:       evaluator.NewLLMGateway(deps.model, cfg.LLM.Timeout),
		Locker:        locker,
		ViewCache:     viewCache,
		Metrics:       appMetrics,
		PublicBaseURL: cfg.App.PublicBaseURL,
	})
	paymentService := service.NewPaymentService(cfg.Payment, provider, paymentRepo, balanceRepo, txManager, appMetrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.ToolName,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(appMetrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.HeaderDeviceID + "," + handler.HeaderWebhookSignature,
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/metrics", adaptor.HTTPHandler(appMetrics.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app, handler.Handlers{
		Interviews: handler.NewInterviewHandler(interviewService),
		Payments:   handler.NewPaymentHandler(paymentService, ledger),
		Health:     handler.NewHealthHandler(cfg.App.ToolName),
	})
	return app
}
