// Package reminder contains the daily reminder run.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// Status is the outcome of a reminder run for one user.
type Status string

const (
	StatusSent                 Status = "sent"
	StatusFailed               Status = "failed"
	StatusFailedQueue          Status = "failed_queue"
	StatusSkippedEmailDisabled Status = "skipped_email_disabled"
	StatusSkippedNoCandidates  Status = "skipped_no_candidates"
	StatusSkippedDuplicate     Status = "skipped_duplicate"
	StatusSkippedMissingEmail  Status = "skipped_missing_email"
)

// EmailSubject is the subject of the aggregated reminder email.
const EmailSubject = "Przypomnienia o płatnościach"

const (
	defaultBatchSize   = 1000
	defaultSendTimeout = 15 * time.Second
	missingEmailError  = "Missing email"
	reminderTemplate   = "reminder"
)

// Config holds the tunables of a reminder run.
type Config struct {
	BatchSize       int
	DefaultTimezone string
	Concurrency     int
	SendTimeout     time.Duration
	AppName         string
	AppBaseURL      string
}

// Item is one payment whose reminders fire today.
type Item struct {
	Payment *entity.Payment
	DueDate valueobject.Date
	Offsets []int
}

// UserReminders groups the firing items of one user with the settings they were evaluated under.
type UserReminders struct {
	UserID       uuid.UUID
	Timezone     string
	EmailEnabled bool
	CopyEmail    string
	Items        []Item
}

// UserResult records what happened to one user's reminders.
type UserResult struct {
	UserID uuid.UUID
	Email  string
	Status Status
	Error  string
}

// RunRemindersInput represents the input of a reminder run.
type RunRemindersInput struct {
	// Now overrides the clock; the zero value means the current time.
	Now time.Time
}

// RunRemindersOutput represents the output of a reminder run.
type RunRemindersOutput struct {
	Users   []UserReminders
	Results []UserResult
}

// RunRemindersUseCase finds the reminders that fire today and emails one summary per user.
// The notification log is the only coordination between overlapping runs: a reminder is emailed
// only by the run that claimed its log row.
type RunRemindersUseCase struct {
	settingsRepo adapter.UserSettingsRepository
	paymentRepo  adapter.PaymentRepository
	logRepo      adapter.NotificationLogRepository
	identity     adapter.IdentityProvider
	sender       adapter.EmailSender
	renderer     adapter.TemplateRenderer
	metrics      adapter.ReminderMetrics
	config       Config
	now          func() time.Time
}

// NewRunRemindersUseCase creates a new RunRemindersUseCase instance. metrics may be nil.
func NewRunRemindersUseCase(
	settingsRepo adapter.UserSettingsRepository,
	paymentRepo adapter.PaymentRepository,
	logRepo adapter.NotificationLogRepository,
	identity adapter.IdentityProvider,
	sender adapter.EmailSender,
	renderer adapter.TemplateRenderer,
	metrics adapter.ReminderMetrics,
	config Config,
) *RunRemindersUseCase {
	if config.BatchSize < 1 {
		config.BatchSize = defaultBatchSize
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.SendTimeout <= 0 {
		config.SendTimeout = defaultSendTimeout
	}
	if config.DefaultTimezone == "" {
		config.DefaultTimezone = entity.DefaultTimezone
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &RunRemindersUseCase{
		settingsRepo: settingsRepo,
		paymentRepo:  paymentRepo,
		logRepo:      logRepo,
		identity:     identity,
		sender:       sender,
		renderer:     renderer,
		metrics:      metrics,
		config:       config,
		now:          time.Now,
	}
}

// Execute performs one reminder run. Only a failure to load settings or payments is returned as an
// error; per-user failures are reported in the results.
func (uc *RunRemindersUseCase) Execute(ctx context.Context, input RunRemindersInput) (*RunRemindersOutput, error) {
	started := time.Now()
	now := input.Now
	if now.IsZero() {
		now = uc.now()
	}

	users, err := uc.collect(ctx, now)
	if err != nil {
		uc.metrics.ObserveRun("error", time.Since(started))
		return nil, domainerror.NewReminderError(
			domainerror.ErrCodeReminderBatchLoad,
			"failed to load reminder batch",
			fmt.Errorf("%w: %w", domainerror.ErrReminderBatchLoad, err),
		)
	}
	slog.Info("Reminder users prepared", "count", len(users))

	results := make([]UserResult, len(users))
	var g errgroup.Group
	g.SetLimit(uc.config.Concurrency)
	for i := range users {
		i := i
		g.Go(func() error {
			results[i] = uc.processUser(ctx, users[i], now)
			uc.metrics.IncUserOutcome(string(results[i].Status))
			return nil
		})
	}
	_ = g.Wait()

	uc.metrics.ObserveRun("success", time.Since(started))
	slog.Info("Reminder run completed",
		"users", len(users),
		"results", len(results),
		"duration", time.Since(started),
	)

	return &RunRemindersOutput{
		Users:   users,
		Results: results,
	}, nil
}

// collect loads every active payment page by page and keeps those with an offset firing today in
// the owner's timezone.
func (uc *RunRemindersUseCase) collect(ctx context.Context, now time.Time) ([]UserReminders, error) {
	settingsList, err := uc.settingsRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to load user settings", "error", err)
		return nil, err
	}
	slog.Info("User settings loaded", "count", len(settingsList))

	settingsByUser := make(map[uuid.UUID]*entity.UserSettings, len(settingsList))
	for _, s := range settingsList {
		settingsByUser[s.UserID] = s
	}

	zones := newZoneResolver(uc.config.DefaultTimezone)
	grouped := make(map[uuid.UUID]*UserReminders)

	for offset := 0; ; offset += uc.config.BatchSize {
		payments, err := uc.paymentRepo.ListActive(ctx, offset, uc.config.BatchSize)
		if err != nil {
			slog.Error("Failed to load payments", "offset", offset, "error", err)
			return nil, err
		}
		slog.Info("Payment batch loaded", "count", len(payments), "offset", offset)

		for _, p := range payments {
			if !p.IsActive {
				continue
			}

			settings, ok := settingsByUser[p.UserID]
			if !ok {
				settings = entity.DefaultUserSettings(p.UserID)
				settings.Timezone = uc.config.DefaultTimezone
			}
			timezone, loc := zones.resolve(settings.Timezone)
			today := valueobject.DateOf(now, loc)

			item, ok := firingItem(p, today)
			if !ok {
				continue
			}
			slog.Debug("Payment eligible",
				"payment_id", p.ID,
				"user_id", p.UserID,
				"due_date", item.DueDate.String(),
				"offsets", item.Offsets,
			)

			entry, ok := grouped[p.UserID]
			if !ok {
				entry = &UserReminders{
					UserID:       p.UserID,
					Timezone:     timezone,
					EmailEnabled: settings.EmailEnabled,
					CopyEmail:    settings.CopyEmail(),
				}
				grouped[p.UserID] = entry
			}
			entry.Items = append(entry.Items, item)
		}

		if len(payments) < uc.config.BatchSize {
			break
		}
	}

	users := make([]UserReminders, 0, len(grouped))
	for _, entry := range grouped {
		users = append(users, *entry)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].UserID.String() < users[j].UserID.String()
	})
	return users, nil
}

// processUser runs the claim / resolve / send / record sequence for one user.
func (uc *RunRemindersUseCase) processUser(ctx context.Context, user UserReminders, now time.Time) UserResult {
	logger := slog.With("user_id", user.UserID)
	logger.Info("Processing user reminders",
		"email_enabled", user.EmailEnabled,
		"items", len(user.Items),
	)
	result := UserResult{UserID: user.UserID}

	if !user.EmailEnabled {
		logger.Info("Skipping user, email disabled")
		result.Status = StatusSkippedEmailDisabled
		return result
	}

	keys := candidateKeys(user)
	if len(keys) == 0 {
		result.Status = StatusSkippedNoCandidates
		return result
	}

	claimed, err := uc.logRepo.Claim(ctx, keys, now)
	if err != nil {
		logger.Error("Failed to queue notification log rows", "error", err)
		result.Status = StatusFailedQueue
		result.Error = err.Error()
		// Rows claimed before the error would otherwise stay queued and block every later run.
		uc.markFailed(ctx, logger, entryIDs(claimed), err.Error())
		return result
	}
	if len(claimed) == 0 {
		logger.Info("Skipping user, reminders already queued or sent")
		result.Status = StatusSkippedDuplicate
		return result
	}

	items := claimedItems(user.Items, claimed)
	ids := entryIDs(claimed)

	email, err := uc.identity.GetUserEmail(ctx, user.UserID)
	if err != nil || email == "" {
		logger.Warn("Skipping user, email address unavailable", "error", err)
		result.Status = StatusSkippedMissingEmail
		uc.markFailed(ctx, logger, ids, missingEmailError)
		return result
	}
	result.Email = email

	html, text, err := uc.renderer.Render(reminderTemplate, uc.emailData(items))
	if err != nil {
		logger.Error("Failed to render reminder email", "error", err)
		result.Status = StatusFailed
		result.Error = err.Error()
		uc.markFailed(ctx, logger, ids, err.Error())
		return result
	}

	input := adapter.SendEmailInput{
		To:      email,
		Subject: EmailSubject,
		HTML:    html,
		Text:    text,
	}
	if user.CopyEmail != "" {
		input.Cc = []string{user.CopyEmail}
	}

	sendCtx, cancel := context.WithTimeout(ctx, uc.config.SendTimeout)
	_, err = uc.sender.Send(sendCtx, input)
	cancel()
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Permanent()
		logger.Error("Failed to send reminder email", "email", email, "permanent", permanent, "error", err)
		result.Status = StatusFailed
		result.Error = err.Error()
		uc.markFailed(ctx, logger, ids, err.Error())
		return result
	}

	logger.Info("Reminder email sent", "email", email, "reminders", len(ids))
	result.Status = StatusSent
	uc.metrics.AddRemindersSent(len(ids))
	if err := uc.logRepo.MarkSent(ctx, ids, now); err != nil {
		logger.Error("Failed to mark notification log rows as sent", "error", err)
	}
	return result
}

func (uc *RunRemindersUseCase) markFailed(ctx context.Context, logger *slog.Logger, ids []uuid.UUID, message string) {
	if len(ids) == 0 {
		return
	}
	if err := uc.logRepo.MarkFailed(ctx, ids, message); err != nil {
		logger.Error("Failed to mark notification log rows as failed", "error", err)
	}
}

func (uc *RunRemindersUseCase) emailData(items []Item) adapter.ReminderEmailData {
	data := adapter.ReminderEmailData{
		AppName:    uc.config.AppName,
		AppBaseURL: uc.config.AppBaseURL,
		Items:      make([]adapter.ReminderEmailItem, len(items)),
	}
	for i, item := range items {
		row := adapter.ReminderEmailItem{
			Name:    item.Payment.DisplayName(),
			DueDate: item.DueDate.String(),
		}
		if item.Payment.ProviderAddress != nil {
			row.ProviderAddress = *item.Payment.ProviderAddress
		}
		data.Items[i] = row
	}
	return data
}

func candidateKeys(user UserReminders) []entity.NotificationKey {
	var keys []entity.NotificationKey
	for _, item := range user.Items {
		for _, offset := range item.Offsets {
			keys = append(keys, entity.NotificationKey{
				UserID:     user.UserID,
				PaymentID:  item.Payment.ID,
				DueDate:    item.DueDate,
				OffsetDays: offset,
				Channel:    entity.NotificationChannelEmail,
			})
		}
	}
	return keys
}

// claimedItems keeps the items with at least one offset claimed by this run.
func claimedItems(items []Item, claimed []*entity.NotificationLogEntry) []Item {
	type itemKey struct {
		paymentID uuid.UUID
		dueDate   int
	}
	keep := make(map[itemKey]bool, len(claimed))
	for _, entry := range claimed {
		keep[itemKey{entry.Key.PaymentID, entry.Key.DueDate.Number()}] = true
	}

	var out []Item
	for _, item := range items {
		if keep[itemKey{item.Payment.ID, item.DueDate.Number()}] {
			out = append(out, item)
		}
	}
	return out
}

func entryIDs(entries []*entity.NotificationLogEntry) []uuid.UUID {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

type noopMetrics struct{}

func (noopMetrics) ObserveRun(string, time.Duration) {}
func (noopMetrics) IncUserOutcome(string)            {}
func (noopMetrics) AddRemindersSent(int)             {}
