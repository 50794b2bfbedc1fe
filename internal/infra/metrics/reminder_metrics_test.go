package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestReminderMetrics(t *testing.T) {
	r := NewRegistry()
	m := r.Reminders()

	m.ObserveRun("success", 2*time.Second)
	m.ObserveRun("error", time.Second)
	m.ObserveRun("success", time.Second)
	m.IncUserOutcome("sent")
	m.IncUserOutcome("skipped_duplicate")
	m.IncUserOutcome("sent")
	m.AddRemindersSent(3)
	m.AddRemindersSent(0)

	if got := testutil.ToFloat64(r.runs.WithLabelValues("success")); got != 2 {
		t.Errorf("expected 2 successful runs, got %v", got)
	}
	if got := testutil.ToFloat64(r.runs.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 failed run, got %v", got)
	}
	if got := testutil.ToFloat64(r.userOutcomes.WithLabelValues("sent")); got != 2 {
		t.Errorf("expected 2 sent outcomes, got %v", got)
	}
	if got := testutil.ToFloat64(r.remindersSent); got != 3 {
		t.Errorf("expected 3 reminders sent, got %v", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	r := NewRegistry()
	r.IncUserOutcome("failed")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `payontime_reminders_user_outcomes_total{status="failed"} 1`) {
		t.Errorf("expected user outcome series in output, got:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected Go runtime collectors in output")
	}
}
