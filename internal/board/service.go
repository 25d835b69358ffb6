// Package board はカンバンボードのビジネスロジックを提供する。
package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/smartops/internal/model"
	"github.com/hitoshi/smartops/internal/repository"
)

// MetricsRecorder はボードサービスが記録するメトリクスのインターフェース。
type MetricsRecorder interface {
	RecordCardMoved()
}

// Service はボード表示とカード操作を提供する。
type Service struct {
	columnRepo repository.ColumnRepository
	cardRepo   repository.CardRepository
	metrics    MetricsRecorder
}

// NewService はServiceを生成する。
func NewService(columnRepo repository.ColumnRepository, cardRepo repository.CardRepository, metrics MetricsRecorder) *Service {
	return &Service{
		columnRepo: columnRepo,
		cardRepo:   cardRepo,
		metrics:    metrics,
	}
}

// Board は全列をid昇順で、各列に属するカードとともに返す。
func (s *Service) Board(ctx context.Context) ([]*model.ColumnWithCards, error) {
	columns, err := s.columnRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	cards, err := s.cardRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	byColumn := make(map[int][]model.Card, len(columns))
	for _, c := range cards {
		byColumn[c.ColumnID] = append(byColumn[c.ColumnID], *c)
	}

	result := make([]*model.ColumnWithCards, 0, len(columns))
	for _, col := range columns {
		result = append(result, &model.ColumnWithCards{
			Column: *col,
			Cards:  byColumn[col.ID],
		})
	}

	return result, nil
}

// AddCard はカードを作成し、採番済みの実体を返す。
func (s *Service) AddCard(ctx context.Context, card *model.Card) (*model.Card, error) {
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	slog.Info("card created",
		slog.Int("card_id", card.ID),
		slog.Int("column_id", card.ColumnID),
	)
	return card, nil
}

// MoveCard はカードを指定列へ移動する。
// カードまたは移動先の列が存在しない場合はエラーにせず何もしない（冪等）。
func (s *Service) MoveCard(ctx context.Context, cardID, columnID int) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return fmt.Errorf("failed to find card: %w", err)
	}
	if card == nil {
		slog.Info("move ignored: card not found", slog.Int("card_id", cardID))
		return nil
	}

	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return fmt.Errorf("failed to find column: %w", err)
	}
	if column == nil {
		slog.Info("move ignored: column not found", slog.Int("column_id", columnID))
		return nil
	}

	if err := s.cardRepo.UpdateColumn(ctx, cardID, columnID); err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}

	s.metrics.RecordCardMoved()
	slog.Info("card moved",
		slog.Int("card_id", cardID),
		slog.Int("column_id", columnID),
	)
	return nil
}
