package model

import "fmt"

// AppError は統一エラーフォーマットを表す。
// ハンドラーはCategoryを見てHTTPステータスへ変換する。
type AppError struct {
	Code     string // エラーコード
	Message  string // ユーザー向けメッセージ
	Category string // カテゴリ: auth, validation, notfound
}

// Error はerrorインターフェースを実装する。
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidField       = "INVALID_FIELD"
	ErrCodeActivityNotFound   = "ACTIVITY_NOT_FOUND"
)

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// ユーザー名とパスワードのどちらが誤っているかは区別しない。
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid credentials.",
		Category: "auth",
	}
}

// NewMissingFieldError は必須フィールド欠落エラーを生成する。
func NewMissingFieldError(field string) *AppError {
	return &AppError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("missing required form field: %s", field),
		Category: "validation",
	}
}

// NewInvalidFieldError はフィールド値が解釈できない場合のエラーを生成する。
func NewInvalidFieldError(field string) *AppError {
	return &AppError{
		Code:     ErrCodeInvalidField,
		Message:  fmt.Sprintf("invalid value for form field: %s", field),
		Category: "validation",
	}
}

// NewActivityNotFoundError は指定IDの作業記録が存在しない場合のエラーを生成する。
func NewActivityNotFoundError(id int) *AppError {
	return &AppError{
		Code:     ErrCodeActivityNotFound,
		Message:  fmt.Sprintf("activity not found: %d", id),
		Category: "notfound",
	}
}
