package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/smartops/internal/model"
)

// writeError はエラーをHTTPレスポンスへ変換する。
// 検証エラーは400、not-foundは404、それ以外は詳細を伏せた500になる。
func writeError(w http.ResponseWriter, err error) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		switch appErr.Category {
		case "validation":
			http.Error(w, appErr.Message, http.StatusBadRequest)
			return
		case "notfound":
			http.Error(w, appErr.Message, http.StatusNotFound)
			return
		}
	}

	slog.Error("request failed", slog.String("error", err.Error()))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
