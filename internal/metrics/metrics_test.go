package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestCollector_Counters は各カウンタが記録されることを検証する。
func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginFailure()
	c.RecordActivityCreated()
	c.RecordActivityCreated()
	c.RecordActivityDeleted()
	c.RecordCardMoved()

	if got := testutil.ToFloat64(c.loginFailures); got != 1 {
		t.Errorf("loginFailures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.activitiesCreated); got != 2 {
		t.Errorf("activitiesCreated = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.activitiesDeleted); got != 1 {
		t.Errorf("activitiesDeleted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.cardsMoved); got != 1 {
		t.Errorf("cardsMoved = %v, want 1", got)
	}
}

// TestCollector_HTTPMiddleware はミドルウェア経由でステータスコードが
// 記録されることを検証する。
func TestCollector_HTTPMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	mw := c.NewHTTPMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("302")); got != 1 {
		t.Errorf("httpStatus{302} = %v, want 1", got)
	}
}

// TestHandler_Scrape は/metrics出力に登録済みメトリクスが含まれることを検証する。
func TestHandler_Scrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordActivityCreated()

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, "smartops_activities_created_total 1") {
		t.Errorf("scrape output missing counter:\n%s", body)
	}
}
