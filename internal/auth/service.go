// Package auth は静的資格情報による認証とセッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/smartops/internal/model"
	"github.com/hitoshi/smartops/internal/repository"
)

// MetricsRecorder は認証サービスが記録するメトリクスのインターフェース。
type MetricsRecorder interface {
	RecordLoginFailure()
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	AdminUser     string
	AdminPass     string
	SessionMaxAge int // セッション有効期間（秒）
}

// Service は認証に関するビジネスロジックを提供する。
// 資格情報は環境変数由来の1組のみで、ユーザーテーブルは持たない。
type Service struct {
	sessionRepo repository.SessionRepository
	metrics     MetricsRecorder
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(sessionRepo repository.SessionRepository, metrics MetricsRecorder, config ServiceConfig) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		metrics:     metrics,
		config:      config,
	}
}

// Login は資格情報を検証し、一致すればセッションを発行する。
// 不一致の場合はユーザー名・パスワードのどちらが誤っているかを
// 区別しない認証エラーを返す。
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUser))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPass))
	if userOK&passOK != 1 {
		s.metrics.RecordLoginFailure()
		slog.Warn("login failed", slog.String("username", username))
		return nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user logged in", slog.String("username", username))
	return session, nil
}

// Logout はセッションを破棄する。セッションIDが空の場合は何もしない。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out", slog.String("session_id", sessionID))
	return nil
}

// Authenticate はセッションIDから有効なセッションを取得する。
// 存在しない、または期限切れの場合はnilを返す。
func (s *Service) Authenticate(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, username string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		Username:  username,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
