package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// EncodeSessionCookie はセッションIDにHMAC-SHA256署名を付与した
// Cookie値（"<id>.<signature>"）を生成する。
// セッション実体はDB側にあるため、署名はCookie改ざん検出のみを目的とする。
func EncodeSessionCookie(secret, sessionID string) string {
	return sessionID + "." + sign(secret, sessionID)
}

// DecodeSessionCookie はCookie値の署名を検証し、セッションIDを取り出す。
// 形式不正または署名不一致の場合はok=falseを返す。
func DecodeSessionCookie(secret, value string) (sessionID string, ok bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	expected := sign(secret, id)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return id, true
}

func sign(secret, sessionID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}
