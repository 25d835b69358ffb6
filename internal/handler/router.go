package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/smartops/internal/form"
	"github.com/hitoshi/smartops/internal/metrics"
	"github.com/hitoshi/smartops/internal/middleware"
	"github.com/hitoshi/smartops/internal/view"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま実装する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Authenticator middleware.Authenticator
	SessionSecret string
	Logger        *slog.Logger
	Metrics       *metrics.Collector
	Gatherer      prometheus.Gatherer

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// ドメイン
	ActivityService ActivityServiceInterface
	BoardService    BoardServiceInterface

	// 描画
	Renderer *view.Renderer

	// ヘルスチェック
	HealthChecker HealthChecker
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → Logging → Metrics
//
// ログイン・ログアウト・/healthz・/metricsは認証の外、
// それ以外のルートはセッションゲートの内側に置く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Metrics != nil {
		r.Use(deps.Metrics.NewHTTPMiddleware())
	}

	normalizer := form.NewNormalizer()
	authHandler := NewAuthHandler(deps.AuthService, deps.Renderer, deps.AuthConfig)
	activityHandler := NewActivityHandler(deps.ActivityService, normalizer, deps.Renderer)
	boardHandler := NewBoardHandler(deps.BoardService, normalizer, deps.Renderer)

	// --- 認証不要のルート ---

	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	r.Get("/healthz", newHealthHandler(deps.HealthChecker))
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.Authenticator, deps.SessionSecret))

		// 作業記録一覧
		r.Get("/", activityHandler.List)
		r.Post("/add", activityHandler.Add)
		r.Post("/edit/{id}", activityHandler.Edit)
		r.Post("/delete/{id}", activityHandler.Delete)

		// カンバンボード
		r.Get("/board", boardHandler.Show)
		r.Post("/add_card", boardHandler.AddCard)
		r.Post("/move_card", boardHandler.MoveCard)
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
