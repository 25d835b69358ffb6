package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/smartops/internal/model"
)

// PostgresColumnRepo はPostgreSQLを使用したボード列リポジトリ。
type PostgresColumnRepo struct {
	db *sql.DB
}

// NewPostgresColumnRepo はPostgresColumnRepoを生成する。
func NewPostgresColumnRepo(db *sql.DB) *PostgresColumnRepo {
	return &PostgresColumnRepo{db: db}
}

// ListAll は全列をid昇順で返す。
func (r *PostgresColumnRepo) ListAll(ctx context.Context) ([]*model.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title FROM columns ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	var columns []*model.Column
	for rows.Next() {
		c := &model.Column{}
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns: %w", err)
	}

	return columns, nil
}

// FindByID は指定IDの列を取得する。見つからない場合はnilを返す。
func (r *PostgresColumnRepo) FindByID(ctx context.Context, id int) (*model.Column, error) {
	c := &model.Column{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title FROM columns WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Title)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	return c, nil
}

// compile-time interface check
var _ ColumnRepository = (*PostgresColumnRepo)(nil)

// PostgresCardRepo はPostgreSQLを使用したカードリポジトリ。
type PostgresCardRepo struct {
	db *sql.DB
}

// NewPostgresCardRepo はPostgresCardRepoを生成する。
func NewPostgresCardRepo(db *sql.DB) *PostgresCardRepo {
	return &PostgresCardRepo{db: db}
}

// ListAll は全カードをcolumn_id昇順、id昇順で返す。
func (r *PostgresCardRepo) ListAll(ctx context.Context) ([]*model.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, column_id FROM cards ORDER BY column_id ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*model.Card
	for rows.Next() {
		c := &model.Card{}
		if err := rows.Scan(&c.ID, &c.Title, &c.ColumnID); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// FindByID は指定IDのカードを取得する。見つからない場合はnilを返す。
func (r *PostgresCardRepo) FindByID(ctx context.Context, id int) (*model.Card, error) {
	c := &model.Card{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, column_id FROM cards WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Title, &c.ColumnID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	return c, nil
}

// Create はカードを作成し、採番されたIDをcardに書き戻す。
func (r *PostgresCardRepo) Create(ctx context.Context, card *model.Card) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cards (title, column_id) VALUES ($1, $2) RETURNING id`,
		card.Title, card.ColumnID,
	).Scan(&card.ID)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// UpdateColumn はカードの所属列を変更する。
func (r *PostgresCardRepo) UpdateColumn(ctx context.Context, cardID, columnID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cards SET column_id = $1 WHERE id = $2`,
		columnID, cardID,
	)
	if err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}
	return nil
}

// compile-time interface check
var _ CardRepository = (*PostgresCardRepo)(nil)
