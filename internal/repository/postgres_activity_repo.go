package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/smartops/internal/model"
)

// PostgresActivityRepo はPostgreSQLを使用した作業記録リポジトリ。
type PostgresActivityRepo struct {
	db *sql.DB
}

// NewPostgresActivityRepo はPostgresActivityRepoを生成する。
func NewPostgresActivityRepo(db *sql.DB) *PostgresActivityRepo {
	return &PostgresActivityRepo{db: db}
}

// ListAll は全作業記録をid降順で返す。
func (r *PostgresActivityRepo) ListAll(ctx context.Context) ([]*model.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client, type_intervention, technician, status, note, due_date, comment
		 FROM activities
		 ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*model.Activity
	for rows.Next() {
		a := &model.Activity{}
		if err := rows.Scan(
			&a.ID, &a.Client, &a.TypeIntervention, &a.Technician,
			&a.Status, &a.Note, &a.DueDate, &a.Comment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}

// FindByID は指定IDの作業記録を取得する。見つからない場合はnilを返す。
func (r *PostgresActivityRepo) FindByID(ctx context.Context, id int) (*model.Activity, error) {
	a := &model.Activity{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, client, type_intervention, technician, status, note, due_date, comment
		 FROM activities
		 WHERE id = $1`,
		id,
	).Scan(
		&a.ID, &a.Client, &a.TypeIntervention, &a.Technician,
		&a.Status, &a.Note, &a.DueDate, &a.Comment,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	return a, nil
}

// Create は作業記録を作成し、採番されたIDをactivityに書き戻す。
func (r *PostgresActivityRepo) Create(ctx context.Context, activity *model.Activity) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO activities (client, type_intervention, technician, status, note, due_date, comment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		activity.Client, activity.TypeIntervention, activity.Technician,
		activity.Status, activity.Note, activity.DueDate, activity.Comment,
	).Scan(&activity.ID)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// Update は指定IDの作業記録を全フィールド上書きで更新する。
func (r *PostgresActivityRepo) Update(ctx context.Context, activity *model.Activity) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE activities
		 SET client = $1, type_intervention = $2, technician = $3,
		     status = $4, note = $5, due_date = $6, comment = $7
		 WHERE id = $8`,
		activity.Client, activity.TypeIntervention, activity.Technician,
		activity.Status, activity.Note, activity.DueDate, activity.Comment,
		activity.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

// Delete は指定IDの作業記録を削除する。存在しないIDでもエラーにならない。
func (r *PostgresActivityRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM activities WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ActivityRepository = (*PostgresActivityRepo)(nil)
