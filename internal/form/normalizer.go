// Package form はフォーム入力の正規化と検証を提供する。
//
// テキスト項目は前後空白を除去し、自由入力項目はHTMLマークアップを
// 除去してから保存用ペイロードに変換する。日付項目は寛容に解釈し、
// 解釈できない入力はエラーにせず「日付なし」に落とす。
package form

import (
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hitoshi/smartops/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

// Normalizer は生のフォーム値を検証済みペイロードへ変換する。
type Normalizer struct {
	policy *bluemonday.Policy
}

// NewNormalizer はNormalizerを生成する。
// 全タグ除去のポリシーを使用するため、プレーンテキストは変化しない。
func NewNormalizer() *Normalizer {
	return &Normalizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// ActivityInput は作業記録フォームを正規化する。
// client と type_intervention は必須で、欠落時は検証エラーを返す。
// 任意テキスト項目の未入力は空文字列になる。statusはフィールド自体が
// 存在しない場合のみ既定値が適用され、空で送信された場合は空のまま保存する。
func (n *Normalizer) ActivityInput(values url.Values) (*model.ActivityInput, error) {
	client := n.cleanText(values.Get("client"))
	if client == "" {
		return nil, model.NewMissingFieldError("client")
	}

	typeIntervention := n.cleanText(values.Get("type_intervention"))
	if typeIntervention == "" {
		return nil, model.NewMissingFieldError("type_intervention")
	}

	status := model.StatusDefault
	if values.Has("status") {
		status = n.cleanText(values.Get("status"))
	}

	return &model.ActivityInput{
		Client:           client,
		TypeIntervention: typeIntervention,
		Technician:       n.cleanText(values.Get("technician")),
		Status:           status,
		Note:             n.cleanText(values.Get("note")),
		DueDate:          ParseDueDate(values.Get("due_date")),
		Comment:          n.cleanText(values.Get("comment")),
	}, nil
}

// CardInput はカード追加フォームを正規化する。
// title と column_id は必須。
func (n *Normalizer) CardInput(values url.Values) (*model.Card, error) {
	title := n.cleanText(values.Get("title"))
	if title == "" {
		return nil, model.NewMissingFieldError("title")
	}

	columnID, err := requiredInt(values, "column_id")
	if err != nil {
		return nil, err
	}

	return &model.Card{
		Title:    title,
		ColumnID: columnID,
	}, nil
}

// MoveCardInput はカード移動フォームを正規化する。
// card_id と new_column_id は必須の整数。
func (n *Normalizer) MoveCardInput(values url.Values) (cardID, columnID int, err error) {
	cardID, err = requiredInt(values, "card_id")
	if err != nil {
		return 0, 0, err
	}
	columnID, err = requiredInt(values, "new_column_id")
	if err != nil {
		return 0, 0, err
	}
	return cardID, columnID, nil
}

// ParseDueDate は"YYYY-MM-DD"形式の日付文字列を解釈する。
// '-'区切りの3つの整数で実在する暦日を表す場合のみ日付を返し、
// それ以外（区切り数の不一致、非数値、存在しない日付）はnilを返す。
// 不正入力はエラーではなく「日付なし」として扱う。
func ParseDueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return nil
	}

	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		nums[i] = v
	}

	y, m, d := nums[0], nums[1], nums[2]
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Dateは範囲外の月日を繰り上げて正規化するため、
	// 再構成した値が入力と一致しない日付（2025-13-40等）は不正として扱う。
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return nil
	}

	return &t
}

// cleanText はHTMLマークアップを除去し、前後空白を取り除く。
// サニタイズ時にエスケープされた実体参照は元の文字に戻すため、
// マークアップを含まない入力は空白除去以外では変化しない。
func (n *Normalizer) cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(s)))
}

func requiredInt(values url.Values, field string) (int, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, model.NewMissingFieldError(field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewInvalidFieldError(field)
	}
	return v, nil
}
