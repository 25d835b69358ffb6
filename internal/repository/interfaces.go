// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/smartops/internal/model"
)

// ActivityRepository は作業記録の永続化インターフェース。
type ActivityRepository interface {
	// ListAll は全作業記録をid降順（新しい順）で返す。
	ListAll(ctx context.Context) ([]*model.Activity, error)

	// FindByID は指定IDの作業記録を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int) (*model.Activity, error)

	// Create は作業記録を作成し、採番されたIDをactivityに書き戻す。
	Create(ctx context.Context, activity *model.Activity) error

	// Update は指定IDの作業記録を全フィールド上書きで更新する。
	Update(ctx context.Context, activity *model.Activity) error

	// Delete は指定IDの作業記録を削除する。
	// 存在しないIDの削除はエラーにならない（冪等）。
	Delete(ctx context.Context, id int) error
}

// ColumnRepository はボード列の永続化インターフェース。
type ColumnRepository interface {
	// ListAll は全列をid昇順で返す。
	ListAll(ctx context.Context) ([]*model.Column, error)

	// FindByID は指定IDの列を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int) (*model.Column, error)
}

// CardRepository はカードの永続化インターフェース。
type CardRepository interface {
	// ListAll は全カードをcolumn_id昇順、id昇順で返す。
	ListAll(ctx context.Context) ([]*model.Card, error)

	// FindByID は指定IDのカードを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int) (*model.Card, error)

	// Create はカードを作成し、採番されたIDをcardに書き戻す。
	Create(ctx context.Context, card *model.Card) error

	// UpdateColumn はカードの所属列を変更する。
	UpdateColumn(ctx context.Context, cardID, columnID int) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。存在しない場合もエラーにならない。
	DeleteByID(ctx context.Context, id string) error
}
