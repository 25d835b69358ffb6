// Package activity は作業記録のビジネスロジックを提供する。
package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/smartops/internal/model"
	"github.com/hitoshi/smartops/internal/repository"
)

// MetricsRecorder は作業記録サービスが記録するメトリクスのインターフェース。
type MetricsRecorder interface {
	RecordActivityCreated()
	RecordActivityDeleted()
}

// Service は作業記録のCRUD操作を提供する。
type Service struct {
	repo    repository.ActivityRepository
	metrics MetricsRecorder
}

// NewService はServiceを生成する。
func NewService(repo repository.ActivityRepository, metrics MetricsRecorder) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
	}
}

// List は全作業記録を新しい順（id降順）で返す。
func (s *Service) List(ctx context.Context) ([]*model.Activity, error) {
	activities, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// Get は指定IDの作業記録を返す。見つからない場合はnilを返す。
func (s *Service) Get(ctx context.Context, id int) (*model.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}
	return activity, nil
}

// Create は正規化済みペイロードから作業記録を作成し、採番済みの実体を返す。
func (s *Service) Create(ctx context.Context, input *model.ActivityInput) (*model.Activity, error) {
	activity := &model.Activity{
		Client:           input.Client,
		TypeIntervention: input.TypeIntervention,
		Technician:       input.Technician,
		Status:           input.Status,
		Note:             input.Note,
		DueDate:          input.DueDate,
		Comment:          input.Comment,
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.metrics.RecordActivityCreated()
	slog.Info("activity created",
		slog.Int("activity_id", activity.ID),
		slog.String("client", activity.Client),
	)
	return activity, nil
}

// Update は指定IDの作業記録を正規化済みペイロードで全上書きする。
// 部分更新ではなく、全フィールドを置き換える。
// 指定IDが存在しない場合はnot-foundエラーを返す。
func (s *Service) Update(ctx context.Context, id int, input *model.ActivityInput) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find activity: %w", err)
	}
	if existing == nil {
		return model.NewActivityNotFoundError(id)
	}

	activity := &model.Activity{
		ID:               id,
		Client:           input.Client,
		TypeIntervention: input.TypeIntervention,
		Technician:       input.Technician,
		Status:           input.Status,
		Note:             input.Note,
		DueDate:          input.DueDate,
		Comment:          input.Comment,
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	slog.Info("activity updated", slog.Int("activity_id", id))
	return nil
}

// Delete は指定IDの作業記録を削除する。
// 存在しないIDの削除は何もせず成功する（冪等）。
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.metrics.RecordActivityDeleted()
	slog.Info("activity deleted", slog.Int("activity_id", id))
	return nil
}
