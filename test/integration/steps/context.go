// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/payontime/backend/config"
	"github.com/payontime/backend/internal/infra/dependency"
	"github.com/payontime/backend/internal/integration/email"
	"github.com/payontime/backend/internal/integration/persistence/model"
	"github.com/payontime/backend/test/integration/mock"
)

const (
	testJWTSecret      = "test-jwt-secret-key-for-testing-purposes"
	testJWTAudience    = "authenticated"
	testCronSecret     = "test-cron-secret"
	testTimezone       = "Europe/Warsaw"
	resendEmailsPath   = "/emails"
	mockResendEmailID  = "mock-email-id"
	testResendAPIKey   = "re_test_key"
	testSenderAddress  = "no-reply@payontime.test"
	testAppBaseURL     = "https://payontime.test"
	testIdentityTTL    = time.Hour
	testServerEnv      = "test"
	testReminderBatch  = 2
	testReminderFanout = 1
)

// suiteEnv holds the resources shared by every scenario.
type suiteEnv struct {
	db     *mock.Db
	redis  *redis.Client
	resend *mock.ApiMock
	clock  *mock.Clock
	server *httptest.Server
}

var env *suiteEnv

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		var err error
		env, err = startSuite()
		if err != nil {
			panic(err)
		}
	})

	ctx.AfterSuite(func() {
		if env == nil {
			return
		}
		env.server.Close()
		env.resend.Close()
	})
}

func startSuite() (*suiteEnv, error) {
	database := mock.NewDb(map[string]any{
		"users":            &model.UserModel{},
		"user_settings":    &model.UserSettingsModel{},
		"payments":         &model.PaymentModel{},
		"notification_log": &model.NotificationLogModel{},
	})
	redisClient, _ := mock.NewRedis()

	resendAPI := mock.NewApiServer()
	resendAPI.Start()
	base, err := url.Parse(resendAPI.GetUrl() + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid resend mock url: %w", err)
	}
	sender := email.NewResendClient(testResendAPIKey, "ZapłaćNaCzas", testSenderAddress, email.WithBaseURL(base))

	cfg := config.Load()
	cfg.Server.Environment = testServerEnv
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.Audience = testJWTAudience
	cfg.Redis.IdentityCacheTTL = testIdentityTTL
	cfg.Email.AppName = "ZapłaćNaCzas"
	cfg.Email.AppBaseURL = testAppBaseURL
	cfg.Reminder.CronSecret = testCronSecret
	cfg.Reminder.DefaultTimezone = testTimezone
	cfg.Reminder.BatchSize = testReminderBatch
	cfg.Reminder.Concurrency = testReminderFanout

	injector, err := dependency.NewInjector(cfg, database.DbConn, dependency.External{
		Redis:  redisClient,
		Sender: sender,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}

	return &suiteEnv{
		db:     database,
		redis:  redisClient,
		resend: resendAPI,
		clock:  mock.NewClock(testTimezone),
		server: httptest.NewServer(injector.Router.Setup(testServerEnv)),
	}, nil
}

// reset returns the shared resources to a blank state between scenarios.
func (e *suiteEnv) reset() error {
	if err := e.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(e.redis); err != nil {
		return err
	}
	e.resend.Reset()
	e.resend.SetResponse(http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": mockResendEmailID})
	return nil
}
