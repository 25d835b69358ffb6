// Package config は環境変数ベースのアプリケーション設定を提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Admin credentials
	AdminUser string
	AdminPass string

	// Session
	SessionSecret string
	SessionMaxAge int

	// Server
	ServerPort   string
	CookieSecure bool

	// Display
	SiteTitle string
}

// 既定値。管理者資格情報とセッション秘密鍵は固定の既定値を持ち、
// 本番環境では環境変数で上書きする前提。
const (
	defaultAdminUser     = "admin"
	defaultAdminPass     = "DTN-2025-secure-base"
	defaultSessionSecret = "change-me-please-very-secret"
	defaultSiteTitle     = "DTN SmartOps"
)

// Load は環境変数からConfigを読み込む。
// DATABASE_URL（別名DATABASE_URI）が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URI")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variable is not set: DATABASE_URL")
	}

	// Optional fields with defaults
	cfg.AdminUser = getEnvString("ADMIN_USER", defaultAdminUser)
	cfg.AdminPass = getEnvString("ADMIN_PASS", defaultAdminPass)
	cfg.SessionSecret = getEnvString("SESSION_SECRET", defaultSessionSecret)
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", false)
	cfg.SiteTitle = getEnvString("SITE_TITLE", defaultSiteTitle)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
