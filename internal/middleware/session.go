// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/smartops/internal/auth"
	"github.com/hitoshi/smartops/internal/model"
)

// SessionCookieName はセッションCookieの名前。
const SessionCookieName = "session_id"

// loginPath は未認証リクエストのリダイレクト先。
const loginPath = "/login"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// usernameContextKey はリクエストコンテキストにユーザー名を格納するためのキー。
var usernameContextKey = contextKey("username")

// Authenticator はセッションの検証に必要なインターフェース。
// auth.Serviceの部分集合として定義する。
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*model.Session, error)
}

// NewSessionMiddleware はHTTP Only Cookieからセッションを読み取り、
// 有効性を検証するミドルウェアを返す。
// 認証済みユーザー名をリクエストコンテキストに注入する。
// 未認証リクエストは保護対象のハンドラーを実行せず/loginへリダイレクトする。
func NewSessionMiddleware(authenticator Authenticator, sessionSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieから署名付きセッショントークンを取得
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			// 2. 署名を検証してセッションIDを取り出す
			sessionID, ok := auth.DecodeSessionCookie(sessionSecret, cookie.Value)
			if !ok {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			// 3. セッションの有効性を検証
			session, err := authenticator.Authenticate(r.Context(), sessionID)
			if err != nil {
				slog.Error("failed to authenticate session",
					slog.String("error", err.Error()),
				)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			if session == nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			// 4. 認証済みユーザー名をコンテキストに注入
			ctx := context.WithValue(r.Context(), usernameContextKey, session.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext はリクエストコンテキストからユーザー名を取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func UsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(usernameContextKey).(string)
	if !ok || username == "" {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}

// ContextWithUsername はコンテキストにユーザー名を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}
