package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesBotCounters(t *testing.T) {
	m := New()
	m.ObserveUpdate("callback", 20*time.Millisecond)
	m.IncDecision("approve_photo")
	m.AddPoints(-3)
	m.AddPoints(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	required := []string{
		`bot_updates_total{kind="callback"} 1`,
		`bot_moderation_decisions_total{action="approve_photo"} 1`,
		`bot_points_adjusted_total{direction="debit"} 3`,
		`bot_points_adjusted_total{direction="credit"} 1`,
		`bot_update_duration_seconds_count{kind="callback"} 1`,
	}
	for _, token := range required {
		if !strings.Contains(text, token) {
			t.Fatalf("expected metrics output to contain %q; got:\n%s", token, text)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveUpdate("message", time.Second)
	m.IncDecision("reject_user")
	m.AddPoints(5)
}
