package model

import "time"

// Session はログインセッションを表す。
// IDはクライアントにCookieで渡す不透明トークンの元になる。
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
