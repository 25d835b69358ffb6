package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/smartops/internal/form"
	"github.com/hitoshi/smartops/internal/model"
	"github.com/hitoshi/smartops/internal/view"
)

// ActivityServiceInterface は作業記録ハンドラーが必要とするサービスインターフェース。
type ActivityServiceInterface interface {
	List(ctx context.Context) ([]*model.Activity, error)
	Create(ctx context.Context, input *model.ActivityInput) (*model.Activity, error)
	Update(ctx context.Context, id int, input *model.ActivityInput) error
	Delete(ctx context.Context, id int) error
}

// ActivityHandler は作業記録一覧・追加・編集・削除のHTTPハンドラー。
type ActivityHandler struct {
	service    ActivityServiceInterface
	normalizer *form.Normalizer
	renderer   *view.Renderer
}

// NewActivityHandler はActivityHandlerを生成する。
func NewActivityHandler(service ActivityServiceInterface, normalizer *form.Normalizer, renderer *view.Renderer) *ActivityHandler {
	return &ActivityHandler{
		service:    service,
		normalizer: normalizer,
		renderer:   renderer,
	}
}

// List は作業記録一覧を新しい順に表示する。
// GET /
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.renderer.RenderIndex(w, activities); err != nil {
		slog.Error("failed to render index", slog.String("error", err.Error()))
	}
}

// Add はフォーム入力から作業記録を作成する。
// POST /add
func (h *ActivityHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	input, err := h.normalizer.ActivityInput(r.PostForm)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.service.Create(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Edit は指定IDの作業記録をフォーム入力で全上書きする。
// 指定IDが存在しない場合は404を返す。
// POST /edit/{id}
func (h *ActivityHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	input, err := h.normalizer.ActivityInput(r.PostForm)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Update(r.Context(), id, input); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Delete は指定IDの作業記録を削除する。存在しないIDでも成功扱い（冪等）。
// POST /delete/{id}
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
