// Package model はドメインモデルを定義する。
package model

import "time"

// StatusDefault はステータス未指定時に適用される既定値。
const StatusDefault = "To do"

// Activity は1件の作業記録（案件）を表す。
// 任意テキスト項目は「未入力 = 空文字列」として保存する。
// DueDateのみnilが「日付なし」を表す。
type Activity struct {
	ID               int
	Client           string
	TypeIntervention string
	Technician       string
	Status           string
	Note             string
	DueDate          *time.Time
	Comment          string
}

// ActivityInput はフォーム正規化後の作成・更新ペイロードを表す。
// IDは持たず、保存時にストアが採番する。
type ActivityInput struct {
	Client           string
	TypeIntervention string
	Technician       string
	Status           string
	Note             string
	DueDate          *time.Time
	Comment          string
}
