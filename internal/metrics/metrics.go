// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// 各サービスにはパッケージごとの小さなインターフェース経由で渡す。
type Collector struct {
	httpStatus        *prometheus.CounterVec
	requestDuration   prometheus.Histogram
	loginFailures     prometheus.Counter
	activitiesCreated prometheus.Counter
	activitiesDeleted prometheus.Counter
	cardsMoved        prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartops_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "smartops_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartops_login_failures_total",
			Help: "ログイン失敗の合計数",
		}),
		activitiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartops_activities_created_total",
			Help: "作成された作業記録の合計数",
		}),
		activitiesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartops_activities_deleted_total",
			Help: "削除された作業記録の合計数",
		}),
		cardsMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartops_cards_moved_total",
			Help: "列間を移動したカードの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.loginFailures,
		c.activitiesCreated,
		c.activitiesDeleted,
		c.cardsMoved,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

// RecordActivityCreated は作業記録の作成を記録する。
func (c *Collector) RecordActivityCreated() {
	c.activitiesCreated.Inc()
}

// RecordActivityDeleted は作業記録の削除を記録する。
func (c *Collector) RecordActivityDeleted() {
	c.activitiesDeleted.Inc()
}

// RecordCardMoved はカードの移動を記録する。
func (c *Collector) RecordCardMoved() {
	c.cardsMoved.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NewHTTPMiddleware はレスポンスのステータスコードと処理時間を記録する
// ミドルウェアを返す。
func (c *Collector) NewHTTPMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			c.RecordHTTPStatus(rec.statusCode)
			c.RecordRequestDuration(time.Since(start))
		})
	}
}

// statusRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}
