// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payontime/backend/internal/integration/entrypoint/controller"
	"github.com/payontime/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	paymentController     *controller.PaymentController
	dashboardController   *controller.DashboardController
	settingsController    *controller.SettingsController
	reminderJobController *controller.ReminderJobController
	authMiddleware        *middleware.AuthMiddleware
	jobRateLimiter        *middleware.RateLimiter
	metricsHandler        http.Handler
	cronSecret            string
}

// Options carries the optional pieces of the HTTP surface. Nil controllers leave their routes out.
type Options struct {
	HealthController      *controller.HealthController
	PaymentController     *controller.PaymentController
	DashboardController   *controller.DashboardController
	SettingsController    *controller.SettingsController
	ReminderJobController *controller.ReminderJobController
	AuthMiddleware        *middleware.AuthMiddleware
	JobRateLimiter        *middleware.RateLimiter
	MetricsHandler        http.Handler
	CronSecret            string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(opts Options) *Router {
	return &Router{
		healthController:      opts.HealthController,
		paymentController:     opts.PaymentController,
		dashboardController:   opts.DashboardController,
		settingsController:    opts.SettingsController,
		reminderJobController: opts.ReminderJobController,
		authMiddleware:        opts.AuthMiddleware,
		jobRateLimiter:        opts.JobRateLimiter,
		metricsHandler:        opts.MetricsHandler,
		cronSecret:            opts.CronSecret,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger())

	r.setupOperationalRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupOperationalRoutes configures health check and metrics endpoints.
func (r *Router) setupOperationalRoutes() {
	if r.healthController != nil {
		r.engine.GET("/health", r.healthController.Check)
	}
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.reminderJobController != nil {
		jobs := v1.Group("/jobs")
		handlers := []gin.HandlerFunc{}
		if r.jobRateLimiter != nil {
			handlers = append(handlers, r.jobRateLimiter.Middleware())
		}
		handlers = append(handlers, middleware.RequireCronSecret(r.cronSecret), r.reminderJobController.Run)
		jobs.POST("/reminders", handlers...)
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			jobs.Handle(method, "/reminders", r.reminderJobController.MethodNotAllowed)
		}
	}

	if r.authMiddleware == nil {
		return
	}

	// Payment routes (require authentication)
	if r.paymentController != nil {
		payments := v1.Group("/payments")
		payments.Use(r.authMiddleware.Authenticate())
		{
			payments.GET("", r.paymentController.List)
			payments.POST("", r.paymentController.Create)
			payments.GET("/categories", r.paymentController.Categories)
			payments.POST("/reminder-preview", r.paymentController.PreviewReminders)
			payments.GET("/:id", r.paymentController.Get)
			payments.PATCH("/:id", r.paymentController.Update)
			payments.PATCH("/:id/active", r.paymentController.SetActive)
			payments.DELETE("/:id", r.paymentController.Delete)
		}
	}

	// Dashboard routes (require authentication)
	if r.dashboardController != nil {
		v1.GET("/dashboard", r.authMiddleware.Authenticate(), r.dashboardController.Get)
	}

	// Settings routes (require authentication)
	if r.settingsController != nil {
		settings := v1.Group("/settings")
		settings.Use(r.authMiddleware.Authenticate())
		{
			settings.GET("", r.settingsController.Get)
			settings.PUT("", r.settingsController.Update)
		}
	}
}
