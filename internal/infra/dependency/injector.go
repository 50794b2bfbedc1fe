// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/payontime/backend/config"
	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/application/usecase/dashboard"
	"github.com/payontime/backend/internal/application/usecase/payment"
	"github.com/payontime/backend/internal/application/usecase/reminder"
	"github.com/payontime/backend/internal/application/usecase/settings"
	"github.com/payontime/backend/internal/application/usecase/user"
	"github.com/payontime/backend/internal/infra/metrics"
	"github.com/payontime/backend/internal/infra/server/router"
	"github.com/payontime/backend/internal/integration/adapters"
	"github.com/payontime/backend/internal/integration/cache"
	"github.com/payontime/backend/internal/integration/catalog"
	"github.com/payontime/backend/internal/integration/email"
	"github.com/payontime/backend/internal/integration/email/templates"
	"github.com/payontime/backend/internal/integration/entrypoint/controller"
	"github.com/payontime/backend/internal/integration/entrypoint/middleware"
	"github.com/payontime/backend/internal/integration/persistence"
)

// jobRateLimit bounds manual triggers of the reminder job per client IP.
const jobRateLimit = 10

// External holds collaborators created outside the injector. Redis may be nil; a nil Sender
// selects Resend when an API key is configured and the mock sender otherwise.
type External struct {
	Redis  *redis.Client
	Sender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Reminders *reminder.RunRemindersUseCase
	Metrics   *metrics.Registry
	Sender    adapter.EmailSender
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, ext External) (*Injector, error) {
	// Create repositories
	paymentRepo := persistence.NewPaymentRepository(db)
	settingsRepo := persistence.NewUserSettingsRepository(db)
	logRepo := persistence.NewNotificationLogRepository(db)
	userRepo := persistence.NewUserRepository(db)

	identity := persistence.NewIdentityProvider(db)
	var identityCache adapter.IdentityCache
	if ext.Redis != nil {
		identity = cache.NewIdentityCache(identity, ext.Redis, cfg.Redis.IdentityCacheTTL)
		identityCache = cache.NewIdentityInvalidator(ext.Redis)
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Audience)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create email renderer: %w", err)
	}

	categories, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load payment categories: %w", err)
	}

	sender := ext.Sender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		} else {
			sender = email.NewMockEmailSender()
		}
	}

	registry := metrics.NewRegistry()

	// Create payment use cases
	createPaymentUseCase := payment.NewCreatePaymentUseCase(paymentRepo)
	listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo)
	getPaymentUseCase := payment.NewGetPaymentUseCase(paymentRepo)
	updatePaymentUseCase := payment.NewUpdatePaymentUseCase(paymentRepo)
	setPaymentActiveUseCase := payment.NewSetPaymentActiveUseCase(paymentRepo)
	deletePaymentUseCase := payment.NewDeletePaymentUseCase(paymentRepo)
	previewRemindersUseCase := payment.NewPreviewRemindersUseCase(settingsRepo)
	listCategoriesUseCase := payment.NewListCategoriesUseCase(categories)

	// Create dashboard, settings and user use cases
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(paymentRepo, settingsRepo)
	getSettingsUseCase := settings.NewGetSettingsUseCase(settingsRepo, userRepo)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(settingsRepo, userRepo)
	syncUserUseCase := user.NewSyncUserUseCase(userRepo, identityCache)

	// Create reminder use case
	runRemindersUseCase := reminder.NewRunRemindersUseCase(
		settingsRepo,
		paymentRepo,
		logRepo,
		identity,
		sender,
		renderer,
		registry.Reminders(),
		reminder.Config{
			BatchSize:       cfg.Reminder.BatchSize,
			DefaultTimezone: cfg.Reminder.DefaultTimezone,
			Concurrency:     cfg.Reminder.Concurrency,
			SendTimeout:     cfg.Email.SendTimeout,
			AppName:         cfg.Email.AppName,
			AppBaseURL:      cfg.Email.AppBaseURL,
		},
	)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	paymentController := controller.NewPaymentController(
		createPaymentUseCase,
		listPaymentsUseCase,
		getPaymentUseCase,
		updatePaymentUseCase,
		setPaymentActiveUseCase,
		deletePaymentUseCase,
		previewRemindersUseCase,
		listCategoriesUseCase,
	)
	dashboardController := controller.NewDashboardController(getDashboardUseCase)
	settingsController := controller.NewSettingsController(getSettingsUseCase, updateSettingsUseCase)
	reminderJobController := controller.NewReminderJobController(runRemindersUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var jobRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		jobRateLimiter = middleware.NewRateLimiterWithConfig(1000, time.Minute)
	} else {
		jobRateLimiter = middleware.NewRateLimiterWithConfig(jobRateLimit, time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, syncUserUseCase)

	// Create router
	r := router.NewRouter(router.Options{
		HealthController:      healthController,
		PaymentController:     paymentController,
		DashboardController:   dashboardController,
		SettingsController:    settingsController,
		ReminderJobController: reminderJobController,
		AuthMiddleware:        authMiddleware,
		JobRateLimiter:        jobRateLimiter,
		MetricsHandler:        registry.Handler(),
		CronSecret:            cfg.Reminder.CronSecret,
	})

	return &Injector{
		Config:    cfg,
		DB:        db,
		Router:    r,
		Reminders: runRemindersUseCase,
		Metrics:   registry,
		Sender:    sender,
	}, nil
}
