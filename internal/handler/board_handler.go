package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/smartops/internal/form"
	"github.com/hitoshi/smartops/internal/model"
	"github.com/hitoshi/smartops/internal/view"
)

// BoardServiceInterface はボードハンドラーが必要とするサービスインターフェース。
type BoardServiceInterface interface {
	Board(ctx context.Context) ([]*model.ColumnWithCards, error)
	AddCard(ctx context.Context, card *model.Card) (*model.Card, error)
	MoveCard(ctx context.Context, cardID, columnID int) error
}

// BoardHandler はカンバンボード表示とカード操作のHTTPハンドラー。
type BoardHandler struct {
	service    BoardServiceInterface
	normalizer *form.Normalizer
	renderer   *view.Renderer
}

// NewBoardHandler はBoardHandlerを生成する。
func NewBoardHandler(service BoardServiceInterface, normalizer *form.Normalizer, renderer *view.Renderer) *BoardHandler {
	return &BoardHandler{
		service:    service,
		normalizer: normalizer,
		renderer:   renderer,
	}
}

// Show はボードを列ごとのカード一覧とともに表示する。
// GET /board
func (h *BoardHandler) Show(w http.ResponseWriter, r *http.Request) {
	columns, err := h.service.Board(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.renderer.RenderBoard(w, columns); err != nil {
		slog.Error("failed to render board", slog.String("error", err.Error()))
	}
}

// AddCard はフォーム入力からカードを作成する。
// POST /add_card
func (h *BoardHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	card, err := h.normalizer.CardInput(r.PostForm)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.service.AddCard(r.Context(), card); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/board", http.StatusFound)
}

// MoveCard はカードを指定列へ移動する。
// カードや列が存在しない場合も成功扱い（冪等）。
// POST /move_card
func (h *BoardHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	cardID, columnID, err := h.normalizer.MoveCardInput(r.PostForm)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.MoveCard(r.Context(), cardID, columnID); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/board", http.StatusFound)
}
