package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/smartops/internal/auth"
	"github.com/hitoshi/smartops/internal/model"
)

const testSecret = "test-secret"

type mockAuthenticator struct {
	authenticateFn func(ctx context.Context, sessionID string) (*model.Session, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, sessionID string) (*model.Session, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, sessionID)
	}
	return nil, nil
}

func protectedHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

// TestSessionMiddleware_NoCookie_RedirectsToLogin はCookieなしのリクエストが
// ハンドラーに到達せず/loginへリダイレクトされることを検証する。
func TestSessionMiddleware_NoCookie_RedirectsToLogin(t *testing.T) {
	called := false
	mw := NewSessionMiddleware(&mockAuthenticator{}, testSecret)
	handler := mw(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusFound)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want %q", loc, "/login")
	}
	if called {
		t.Error("protected handler must not be called")
	}
}

// TestSessionMiddleware_TamperedCookie_RedirectsToLogin は署名不正のCookieが
// セッション検索に進まず拒否されることを検証する。
func TestSessionMiddleware_TamperedCookie_RedirectsToLogin(t *testing.T) {
	lookupCalled := false
	authenticator := &mockAuthenticator{
		authenticateFn: func(ctx context.Context, sessionID string) (*model.Session, error) {
			lookupCalled = true
			return nil, nil
		},
	}
	called := false
	mw := NewSessionMiddleware(authenticator, testSecret)
	handler := mw(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc123.deadbeef"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusFound)
	}
	if lookupCalled {
		t.Error("session lookup must not happen for a bad signature")
	}
	if called {
		t.Error("protected handler must not be called")
	}
}

// TestSessionMiddleware_ExpiredSession_RedirectsToLogin は期限切れセッションが
// 拒否されることを検証する。
func TestSessionMiddleware_ExpiredSession_RedirectsToLogin(t *testing.T) {
	authenticator := &mockAuthenticator{
		authenticateFn: func(ctx context.Context, sessionID string) (*model.Session, error) {
			return nil, nil // 期限切れはnil
		},
	}
	called := false
	mw := NewSessionMiddleware(authenticator, testSecret)
	handler := mw(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: auth.EncodeSessionCookie(testSecret, "expired-id"),
	})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusFound)
	}
	if called {
		t.Error("protected handler must not be called")
	}
}

// TestSessionMiddleware_ValidSession_InjectsUsername は有効セッションで
// ユーザー名がコンテキストに注入されることを検証する。
func TestSessionMiddleware_ValidSession_InjectsUsername(t *testing.T) {
	authenticator := &mockAuthenticator{
		authenticateFn: func(ctx context.Context, sessionID string) (*model.Session, error) {
			if sessionID != "valid-id" {
				t.Errorf("sessionID = %q, want %q", sessionID, "valid-id")
			}
			return &model.Session{
				ID:        sessionID,
				Username:  "admin",
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}

	var gotUsername string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername, _ = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	mw := NewSessionMiddleware(authenticator, testSecret)
	handler := mw(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: auth.EncodeSessionCookie(testSecret, "valid-id"),
	})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if gotUsername != "admin" {
		t.Errorf("username = %q, want %q", gotUsername, "admin")
	}
}
