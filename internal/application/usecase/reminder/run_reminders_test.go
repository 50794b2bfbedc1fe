package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/valueobject"
)

type fakeSettingsRepo struct {
	settings []*entity.UserSettings
	err      error
}

func (f *fakeSettingsRepo) FindAll(ctx context.Context) ([]*entity.UserSettings, error) {
	return f.settings, f.err
}

func (f *fakeSettingsRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	for _, s := range f.settings {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, domainerror.ErrSettingsNotFound
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, settings *entity.UserSettings) error {
	return nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*entity.Payment
	err      error
	calls    []int
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error { return nil }
func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return nil, domainerror.ErrPaymentNotFound
}
func (f *fakePaymentRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Payment, error) {
	return nil, nil
}
func (f *fakePaymentRepo) Update(ctx context.Context, p *entity.Payment) error { return nil }
func (f *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (f *fakePaymentRepo) ListActive(ctx context.Context, offset, limit int) ([]*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, offset)
	if f.err != nil {
		return nil, f.err
	}
	if offset >= len(f.payments) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.payments) {
		end = len(f.payments)
	}
	return f.payments[offset:end], nil
}

// fakeLogRepo keeps the claim semantics of the store: failed rows are requeued, queued and sent rows block.
type fakeLogRepo struct {
	mu       sync.Mutex
	rows     map[entity.NotificationKey]*entity.NotificationLogEntry
	claimErr error
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{rows: make(map[entity.NotificationKey]*entity.NotificationLogEntry)}
}

func (f *fakeLogRepo) Claim(ctx context.Context, keys []entity.NotificationKey, scheduledFor time.Time) ([]*entity.NotificationLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return nil, f.claimErr
	}

	var claimed []*entity.NotificationLogEntry
	for _, key := range keys {
		row, ok := f.rows[key]
		if ok && row.BlocksRedelivery() {
			continue
		}
		if !ok {
			row = entity.NewNotificationLogEntry(key, scheduledFor)
			f.rows[key] = row
		}
		row.Status = entity.NotificationStatusQueued
		row.Error = nil
		claimed = append(claimed, row)
	}
	return claimed, nil
}

func (f *fakeLogRepo) MarkSent(ctx context.Context, ids []uuid.UUID, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.byIDs(ids) {
		row.Status = entity.NotificationStatusSent
		row.SentAt = &sentAt
	}
	return nil
}

func (f *fakeLogRepo) MarkFailed(ctx context.Context, ids []uuid.UUID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.byIDs(ids) {
		row.Status = entity.NotificationStatusFailed
		msg := message
		row.Error = &msg
	}
	return nil
}

func (f *fakeLogRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.NotificationLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.NotificationLogEntry
	for _, row := range f.rows {
		if row.Key.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) byIDs(ids []uuid.UUID) []*entity.NotificationLogEntry {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*entity.NotificationLogEntry
	for _, row := range f.rows {
		if want[row.ID] {
			out = append(out, row)
		}
	}
	return out
}

type fakeIdentity struct {
	emails map[uuid.UUID]string
	err    map[uuid.UUID]error
}

func (f *fakeIdentity) GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	if err := f.err[userID]; err != nil {
		return "", err
	}
	email, ok := f.emails[userID]
	if !ok {
		return "", domainerror.ErrUserNotFound
	}
	return email, nil
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []adapter.SendEmailInput
	failTo map[string]error
}

func (f *fakeSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failTo[input.To]; err != nil {
		return nil, err
	}
	f.sent = append(f.sent, input)
	return &adapter.SendEmailResult{ResendID: "re_" + input.To}, nil
}

// blockingSender holds every send until release is closed.
type blockingSender struct {
	fakeSender
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.fakeSender.Send(ctx, input)
}

type fakeRenderer struct {
	mu   sync.Mutex
	data []adapter.ReminderEmailData
}

func (f *fakeRenderer) Render(name string, data interface{}) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = append(f.data, data.(adapter.ReminderEmailData))
	return "<p>" + name + "</p>", name, nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	runs     []string
	outcomes map[string]int
	sent     int
}

func (f *fakeMetrics) ObserveRun(outcome string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, outcome)
}

func (f *fakeMetrics) IncUserOutcome(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.outcomes == nil {
		f.outcomes = make(map[string]int)
	}
	f.outcomes[status]++
}

func (f *fakeMetrics) AddRemindersSent(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent += n
}

type fixture struct {
	settings *fakeSettingsRepo
	payments *fakePaymentRepo
	logs     *fakeLogRepo
	identity *fakeIdentity
	sender   *fakeSender
	renderer *fakeRenderer
	metrics  *fakeMetrics
	config   Config
}

func newFixture() *fixture {
	return &fixture{
		settings: &fakeSettingsRepo{},
		payments: &fakePaymentRepo{},
		logs:     newFakeLogRepo(),
		identity: &fakeIdentity{emails: map[uuid.UUID]string{}, err: map[uuid.UUID]error{}},
		sender:   &fakeSender{failTo: map[string]error{}},
		renderer: &fakeRenderer{},
		metrics:  &fakeMetrics{},
		config:   Config{BatchSize: 100, Concurrency: 4, AppName: "PayOnTime", AppBaseURL: "https://payontime.app"},
	}
}

func (f *fixture) useCase() *RunRemindersUseCase {
	return NewRunRemindersUseCase(f.settings, f.payments, f.logs, f.identity, f.sender, f.renderer, f.metrics, f.config)
}

func oneTimePayment(userID uuid.UUID, name, due string, offsets ...int) *entity.Payment {
	p := entity.NewPayment(userID, "electricity", entity.ScheduleModeOneTime)
	d := valueobject.MustParseDate(due)
	p.DueDate = &d
	p.Name = &name
	p.RemindOffsets = offsets
	return p
}

func resultFor(t *testing.T, out *RunRemindersOutput, userID uuid.UUID) UserResult {
	t.Helper()
	for _, r := range out.Results {
		if r.UserID == userID {
			return r
		}
	}
	t.Fatalf("no result for user %s", userID)
	return UserResult{}
}

// 2024-05-07 10:00 UTC is 12:00 in Warsaw.
var runInstant = time.Date(2024, time.May, 7, 10, 0, 0, 0, time.UTC)

func TestRunReminders_SendsAndDeduplicates(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.identity.emails[userID] = "anna@example.com"
	f.payments.payments = []*entity.Payment{
		oneTimePayment(userID, "Prąd", "2024-05-10", -3, 0),
		oneTimePayment(userID, "Gaz", "2024-05-20", -3, 0),
	}
	uc := f.useCase()

	out, err := uc.Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Users) != 1 || len(out.Users[0].Items) != 1 {
		t.Fatalf("expected 1 user with 1 item, got %+v", out.Users)
	}
	item := out.Users[0].Items[0]
	if item.DueDate.String() != "2024-05-10" || len(item.Offsets) != 1 || item.Offsets[0] != -3 {
		t.Errorf("unexpected item: due %s offsets %v", item.DueDate, item.Offsets)
	}
	if r := resultFor(t, out, userID); r.Status != StatusSent || r.Email != "anna@example.com" {
		t.Errorf("expected sent to anna@example.com, got %+v", r)
	}
	if len(f.sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(f.sender.sent))
	}
	if f.sender.sent[0].Subject != EmailSubject {
		t.Errorf("expected subject %q, got %q", EmailSubject, f.sender.sent[0].Subject)
	}
	if f.sender.sent[0].Cc != nil {
		t.Errorf("expected no copy recipients, got %v", f.sender.sent[0].Cc)
	}
	if data := f.renderer.data[0]; len(data.Items) != 1 || data.Items[0].Name != "Prąd" || data.AppName != "PayOnTime" {
		t.Errorf("unexpected template data: %+v", data)
	}

	rows, _ := f.logs.FindByUserID(context.Background(), userID)
	if len(rows) != 1 || rows[0].Status != entity.NotificationStatusSent || rows[0].SentAt == nil {
		t.Fatalf("expected one sent log row, got %+v", rows)
	}

	out, err = uc.Execute(context.Background(), RunRemindersInput{Now: runInstant.Add(time.Hour)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := resultFor(t, out, userID); r.Status != StatusSkippedDuplicate {
		t.Errorf("expected %s on second run, got %s", StatusSkippedDuplicate, r.Status)
	}
	if len(f.sender.sent) != 1 {
		t.Errorf("expected no additional email, got %d total", len(f.sender.sent))
	}
	if f.metrics.sent != 1 || f.metrics.outcomes[string(StatusSent)] != 1 || f.metrics.outcomes[string(StatusSkippedDuplicate)] != 1 {
		t.Errorf("unexpected metrics: %+v", f.metrics)
	}
}

func TestRunReminders_OverlappingRunsSendOnce(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.identity.emails[userID] = "anna@example.com"
	f.payments.payments = []*entity.Payment{oneTimePayment(userID, "Prąd", "2024-05-10", -3)}
	sender := &blockingSender{
		fakeSender: fakeSender{failTo: map[string]error{}},
		entered:    make(chan struct{}, 2),
		release:    make(chan struct{}),
	}
	uc := NewRunRemindersUseCase(f.settings, f.payments, f.logs, f.identity, sender, f.renderer, f.metrics, f.config)

	type outcome struct {
		out *RunRemindersOutput
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		out, err := uc.Execute(context.Background(), RunRemindersInput{Now: runInstant})
		first <- outcome{out, err}
	}()

	select {
	case <-sender.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("expected the first run to reach the sender")
	}

	second, err := uc.Execute(context.Background(), RunRemindersInput{Now: runInstant.Add(time.Minute)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := resultFor(t, second, userID); r.Status != StatusSkippedDuplicate {
		t.Errorf("expected %s for the overlapping run, got %s", StatusSkippedDuplicate, r.Status)
	}

	close(sender.release)
	var res outcome
	select {
	case res = <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("expected the first run to finish")
	}
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if r := resultFor(t, res.out, userID); r.Status != StatusSent {
		t.Errorf("expected %s for the first run, got %s", StatusSent, r.Status)
	}

	sender.mu.Lock()
	sent := len(sender.sent)
	sender.mu.Unlock()
	if sent != 1 {
		t.Errorf("expected exactly 1 email, got %d", sent)
	}
	rows, _ := f.logs.FindByUserID(context.Background(), userID)
	if len(rows) != 1 || rows[0].Status != entity.NotificationStatusSent {
		t.Errorf("expected one sent log row, got %+v", rows)
	}
}

func TestRunReminders_FailedDeliveryIsRetried(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.identity.emails[userID] = "anna@example.com"
	f.payments.payments = []*entity.Payment{oneTimePayment(userID, "Prąd", "2024-05-07", 0)}
	f.sender.failTo["anna@example.com"] = errors.New("provider unavailable")
	uc := f.useCase()

	out, err := uc.Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resultFor(t, out, userID)
	if r.Status != StatusFailed || r.Error != "provider unavailable" {
		t.Errorf("expected failed with provider error, got %+v", r)
	}
	rows, _ := f.logs.FindByUserID(context.Background(), userID)
	if len(rows) != 1 || rows[0].Status != entity.NotificationStatusFailed {
		t.Fatalf("expected failed log row, got %+v", rows)
	}
	firstID := rows[0].ID

	delete(f.sender.failTo, "anna@example.com")
	out, err = uc.Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := resultFor(t, out, userID); r.Status != StatusSent {
		t.Errorf("expected retry to be sent, got %s", r.Status)
	}
	rows, _ = f.logs.FindByUserID(context.Background(), userID)
	if len(rows) != 1 || rows[0].ID != firstID || rows[0].Status != entity.NotificationStatusSent {
		t.Errorf("expected the same row to become sent, got %+v", rows)
	}
}

func TestRunReminders_UserOutcomes(t *testing.T) {
	f := newFixture()
	disabled := uuid.New()
	missing := uuid.New()
	lookupFails := uuid.New()
	withCopy := uuid.New()

	copyEmail := "partner@example.com"
	f.settings.settings = []*entity.UserSettings{
		{UserID: disabled, Timezone: "Europe/Warsaw", EmailEnabled: false},
		{UserID: withCopy, Timezone: "Europe/Warsaw", EmailEnabled: true, NotificationCopyEmail: &copyEmail},
	}
	f.identity.emails[withCopy] = "owner@example.com"
	f.identity.emails[lookupFails] = "never@example.com"
	f.identity.err[lookupFails] = errors.New("identity service down")

	f.payments.payments = []*entity.Payment{
		oneTimePayment(disabled, "A", "2024-05-10", -3),
		oneTimePayment(missing, "B", "2024-05-10", -3),
		oneTimePayment(lookupFails, "C", "2024-05-10", -3),
		oneTimePayment(withCopy, "D", "2024-05-10", -3),
	}

	out, err := f.useCase().Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(out.Results))
	}

	expected := map[uuid.UUID]Status{
		disabled:    StatusSkippedEmailDisabled,
		missing:     StatusSkippedMissingEmail,
		lookupFails: StatusSkippedMissingEmail,
		withCopy:    StatusSent,
	}
	for userID, status := range expected {
		if r := resultFor(t, out, userID); r.Status != status {
			t.Errorf("user %s: expected %s, got %s", userID, status, r.Status)
		}
	}

	if len(f.sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(f.sender.sent))
	}
	if cc := f.sender.sent[0].Cc; len(cc) != 1 || cc[0] != copyEmail {
		t.Errorf("expected copy to %s, got %v", copyEmail, cc)
	}

	rows, _ := f.logs.FindByUserID(context.Background(), disabled)
	if len(rows) != 0 {
		t.Errorf("expected no log rows for disabled user, got %d", len(rows))
	}
	rows, _ = f.logs.FindByUserID(context.Background(), missing)
	if len(rows) != 1 || rows[0].Status != entity.NotificationStatusFailed || rows[0].Error == nil || *rows[0].Error != "Missing email" {
		t.Errorf("expected failed row with missing email, got %+v", rows)
	}
}

func TestRunReminders_ClaimFailure(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.identity.emails[userID] = "anna@example.com"
	f.payments.payments = []*entity.Payment{oneTimePayment(userID, "Prąd", "2024-05-10", -3)}
	f.logs.claimErr = errors.New("connection reset")

	out, err := f.useCase().Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := resultFor(t, out, userID); r.Status != StatusFailedQueue || r.Error != "connection reset" {
		t.Errorf("expected failed_queue, got %+v", r)
	}
	if len(f.sender.sent) != 0 {
		t.Errorf("expected no email, got %d", len(f.sender.sent))
	}
}

func TestRunReminders_LoadFailure(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
	}{
		{"settings", func(f *fixture) { f.settings.err = errors.New("settings down") }},
		{"payments", func(f *fixture) { f.payments.err = errors.New("payments down") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.prepare(f)

			_, err := f.useCase().Execute(context.Background(), RunRemindersInput{Now: runInstant})
			if err == nil {
				t.Fatal("expected error")
			}
			var remErr *domainerror.ReminderError
			if !errors.As(err, &remErr) || remErr.Code != domainerror.ErrCodeReminderBatchLoad {
				t.Errorf("expected %s, got %v", domainerror.ErrCodeReminderBatchLoad, err)
			}
			if !errors.Is(err, domainerror.ErrReminderBatchLoad) {
				t.Error("expected error to wrap ErrReminderBatchLoad")
			}
			if len(f.metrics.runs) != 1 || f.metrics.runs[0] != "error" {
				t.Errorf("expected error run metric, got %v", f.metrics.runs)
			}
		})
	}
}

func TestRunReminders_Pagination(t *testing.T) {
	f := newFixture()
	f.config.BatchSize = 2
	for i := 0; i < 5; i++ {
		userID := uuid.New()
		f.identity.emails[userID] = userID.String() + "@example.com"
		f.payments.payments = append(f.payments.payments, oneTimePayment(userID, "P", "2024-05-10", -3))
	}

	out, err := f.useCase().Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Users) != 5 {
		t.Errorf("expected 5 users, got %d", len(out.Users))
	}
	expectedOffsets := []int{0, 2, 4}
	if len(f.payments.calls) != len(expectedOffsets) {
		t.Fatalf("expected pages %v, got %v", expectedOffsets, f.payments.calls)
	}
	for i, o := range expectedOffsets {
		if f.payments.calls[i] != o {
			t.Errorf("page %d: expected offset %d, got %d", i, o, f.payments.calls[i])
		}
	}
	for i := 1; i < len(out.Users); i++ {
		if out.Users[i-1].UserID.String() > out.Users[i].UserID.String() {
			t.Error("expected users ordered by id")
		}
	}
}

func TestRunReminders_UsesUserTimezone(t *testing.T) {
	if _, err := time.LoadLocation("America/Los_Angeles"); err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	f := newFixture()
	warsawUser := uuid.New()
	laUser := uuid.New()
	unknownZone := uuid.New()
	f.settings.settings = []*entity.UserSettings{
		{UserID: warsawUser, Timezone: "Europe/Warsaw", EmailEnabled: true},
		{UserID: laUser, Timezone: "America/Los_Angeles", EmailEnabled: true},
		{UserID: unknownZone, Timezone: "Mars/Olympus_Mons", EmailEnabled: true},
	}
	for _, id := range []uuid.UUID{warsawUser, laUser, unknownZone} {
		f.identity.emails[id] = id.String() + "@example.com"
		f.payments.payments = append(f.payments.payments, oneTimePayment(id, "P", "2024-05-10", -3))
	}

	// 2024-05-06 23:30 UTC is already 2024-05-07 in Warsaw but still 2024-05-06 in Los Angeles.
	now := time.Date(2024, time.May, 6, 23, 30, 0, 0, time.UTC)
	out, err := f.useCase().Execute(context.Background(), RunRemindersInput{Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	users := make(map[uuid.UUID]UserReminders)
	for _, u := range out.Users {
		users[u.UserID] = u
	}
	if _, ok := users[warsawUser]; !ok {
		t.Error("expected Warsaw user to be reminded")
	}
	if _, ok := users[laUser]; ok {
		t.Error("expected Los Angeles user to wait for their own day")
	}
	if u, ok := users[unknownZone]; !ok || u.Timezone != entity.DefaultTimezone {
		t.Errorf("expected unknown zone to fall back to %s, got %+v", entity.DefaultTimezone, u)
	}
}

func TestRunReminders_SkipsPaymentsWithoutFiringOffsets(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.identity.emails[userID] = "anna@example.com"

	noOffsets := oneTimePayment(userID, "Bez przypomnień", "2024-05-07")
	noOffsets.RemindOffsets = nil
	inactive := oneTimePayment(userID, "Nieaktywna", "2024-05-07", 0)
	inactive.IsActive = false
	past := oneTimePayment(userID, "Zaległa", "2024-05-01", 6)
	f.payments.payments = []*entity.Payment{noOffsets, inactive, past}

	out, err := f.useCase().Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Users) != 0 || len(out.Results) != 0 {
		t.Errorf("expected nothing to do, got users %d results %d", len(out.Users), len(out.Results))
	}
	if len(f.metrics.runs) != 1 || f.metrics.runs[0] != "success" {
		t.Errorf("expected success run metric, got %v", f.metrics.runs)
	}
}

func TestRunReminders_RecurringPayment(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.identity.emails[userID] = "anna@example.com"

	day := 10
	p := entity.NewPayment(userID, "rent", entity.ScheduleModeMonthly)
	p.DayOfMonth = &day
	p.RemindOffsets = []int{-3, 0}
	f.payments.payments = []*entity.Payment{p}

	out, err := f.useCase().Execute(context.Background(), RunRemindersInput{Now: runInstant})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(out.Users))
	}
	item := out.Users[0].Items[0]
	if item.DueDate.String() != "2024-05-10" || len(item.Offsets) != 1 || item.Offsets[0] != -3 {
		t.Errorf("unexpected item: due %s offsets %v", item.DueDate, item.Offsets)
	}
	if data := f.renderer.data[0]; data.Items[0].Name != "rent" {
		t.Errorf("expected category fallback name, got %q", data.Items[0].Name)
	}
}
