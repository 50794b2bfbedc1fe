package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/payontime/backend/internal/integration/persistence/model"
)

var relativeDate = regexp.MustCompile(`\{\{today([+-]\d+)?\}\}`)

type testContext struct {
	headers       map[string]string
	client        *http.Client
	response      *response
	accessToken   string
	currentUserID uuid.UUID
	users         map[string]uuid.UUID
	lastPaymentID uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I use an expired token for "([^"]*)"$`, test.iUseAnExpiredTokenFor)
	ctx.Given(`^the user "([^"]*)" has settings:$`, test.theUserHasSettings)

	// Email provider steps
	ctx.Given(`^the email provider responds with status (\d+)$`, test.theEmailProviderRespondsWithStatus)
	ctx.Given(`^the email provider accepts emails$`, test.theEmailProviderAcceptsEmails)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)
	ctx.Given(`^the header contains the cron secret$`, test.theHeaderContainsTheCronSecret)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Email assertion steps
	ctx.Then(`^(\d+) emails? should have been sent$`, test.emailsShouldHaveBeenSent)
	ctx.Then(`^email (\d+) should be sent to "([^"]*)"$`, test.emailShouldBeSentTo)
	ctx.Then(`^email (\d+) should copy "([^"]*)"$`, test.emailShouldCopy)
	ctx.Then(`^email (\d+) should contain "([^"]*)"$`, test.emailShouldContain)
	ctx.Then(`^email (\d+) should not contain "([^"]*)"$`, test.emailShouldNotContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.users = make(map[string]uuid.UUID)
	t.lastPaymentID = uuid.Nil

	if env == nil {
		return errors.New("test suite was not initialised")
	}
	return env.reset()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(env.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) userID(email string) uuid.UUID {
	id, ok := t.users[email]
	if !ok {
		id = uuid.New()
		t.users[email] = id
	}
	return id
}

func (t *testContext) iAmLoggedInAs(email string) error {
	token, err := t.signToken(email, time.Now().Add(15*time.Minute))
	if err != nil {
		return err
	}
	t.accessToken = token
	t.currentUserID = t.userID(email)
	return nil
}

func (t *testContext) iUseAnExpiredTokenFor(email string) error {
	token, err := t.signToken(email, time.Now().Add(-time.Minute))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) signToken(email string, expiresAt time.Time) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   t.userID(email).String(),
		"email": email,
		"aud":   testJWTAudience,
		"exp":   jwt.NewNumericDate(expiresAt),
		"iat":   jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (t *testContext) theUserHasSettings(email string, content *godog.DocString) error {
	var settings struct {
		Timezone              string  `json:"timezone"`
		EmailEnabled          bool    `json:"email_enabled"`
		NotificationCopyEmail *string `json:"notification_copy_email"`
	}
	if err := json.Unmarshal([]byte(content.Content), &settings); err != nil {
		return err
	}

	return env.db.DbConn.Create(&model.UserSettingsModel{
		UserID:                t.userID(email),
		Timezone:              settings.Timezone,
		EmailEnabled:          settings.EmailEnabled,
		NotificationCopyEmail: settings.NotificationCopyEmail,
		UpdatedAt:             time.Now().UTC(),
	}).Error
}

func (t *testContext) theEmailProviderRespondsWithStatus(status int) error {
	env.resend.SetResponse(http.MethodPost, resendEmailsPath, status, map[string]any{
		"statusCode": status,
		"name":       "application_error",
		"message":    "Provider unavailable",
	})
	return nil
}

func (t *testContext) theEmailProviderAcceptsEmails() error {
	env.resend.SetResponse(http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": mockResendEmailID})
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theHeaderContainsTheCronSecret() error {
	t.headers["X-Cron-Secret"] = testCronSecret
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{payment_id}}", t.lastPaymentID.String())
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	return relativeDate.ReplaceAllStringFunc(content, func(match string) string {
		shift := 0
		if sub := relativeDate.FindStringSubmatch(match); sub[1] != "" {
			shift, _ = strconv.Atoi(sub[1])
		}
		return env.clock.DaysFromToday(shift).String()
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, env.server.URL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var decoded map[string]any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = decoded

	// Capture payment ID from payment responses
	if idStr, ok := decoded["id"].(string); ok {
		if _, isPayment := decoded["schedule_mode"]; isPayment {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastPaymentID = id
			}
		}
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) responseValue(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseValue(field)
	if err != nil {
		return err
	}
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseValue(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.responseValue(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(items), items)
	}
	return nil
}

func (t *testContext) emailsShouldHaveBeenSent(count int) error {
	sent := env.resend.GetRequests(http.MethodPost, resendEmailsPath)
	if len(sent) != count {
		return fmt.Errorf("expected %d emails, got %d: %v", count, len(sent), sent)
	}
	return nil
}

func (t *testContext) email(number int) (map[string]any, error) {
	sent := env.resend.GetRequests(http.MethodPost, resendEmailsPath)
	if number < 1 || number > len(sent) {
		return nil, fmt.Errorf("email %d was not sent (%d emails recorded)", number, len(sent))
	}
	return sent[number-1], nil
}

func (t *testContext) emailShouldBeSentTo(number int, address string) error {
	sent, err := t.email(number)
	if err != nil {
		return err
	}
	if !containsString(sent["to"], address) {
		return fmt.Errorf("email %d expected recipient %s, got %v", number, address, sent["to"])
	}
	return nil
}

func (t *testContext) emailShouldCopy(number int, address string) error {
	sent, err := t.email(number)
	if err != nil {
		return err
	}
	if !containsString(sent["cc"], address) {
		return fmt.Errorf("email %d expected copy to %s, got %v", number, address, sent["cc"])
	}
	return nil
}

func (t *testContext) emailShouldContain(number int, text string) error {
	sent, err := t.email(number)
	if err != nil {
		return err
	}
	body, _ := sent["text"].(string)
	if !strings.Contains(body, t.replacePlaceholders(text)) {
		return fmt.Errorf("email %d does not contain %q: %s", number, text, body)
	}
	return nil
}

func (t *testContext) emailShouldNotContain(number int, text string) error {
	sent, err := t.email(number)
	if err != nil {
		return err
	}
	body, _ := sent["text"].(string)
	if strings.Contains(body, t.replacePlaceholders(text)) {
		return fmt.Errorf("email %d unexpectedly contains %q: %s", number, text, body)
	}
	return nil
}

func containsString(list any, expected string) bool {
	items, ok := list.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if item == expected {
			return true
		}
	}
	return false
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := env.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := env.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
