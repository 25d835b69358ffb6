// Package view はビューモデルからHTMLを生成する描画層を提供する。
// ルートハンドラーはビューモデルを渡すだけで、マークアップの詳細は
// このパッケージに閉じる。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/hitoshi/smartops/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer は埋め込みテンプレートを描画する。
type Renderer struct {
	tmpl      *template.Template
	siteTitle string
}

// NewRenderer はRendererを生成する。テンプレートの解析に失敗した場合は
// エラーを返す（起動時に1回だけ解析する）。
func NewRenderer(siteTitle string) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"fmtDate": fmtDate,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		tmpl:      tmpl,
		siteTitle: siteTitle,
	}, nil
}

// loginData はログイン画面のビューモデル。
type loginData struct {
	Title string
	Error string
}

// indexData は作業記録一覧のビューモデル。
type indexData struct {
	Title      string
	Activities []*model.Activity
	Statuses   []string
}

// boardData はカンバンボードのビューモデル。
type boardData struct {
	Title   string
	Columns []*model.ColumnWithCards
}

// RenderLogin はログイン画面を描画する。errMsgが空でない場合は
// エラーメッセージを表示する。
func (r *Renderer) RenderLogin(w io.Writer, errMsg string) error {
	return r.tmpl.ExecuteTemplate(w, "login.html", loginData{
		Title: r.siteTitle,
		Error: errMsg,
	})
}

// RenderIndex は作業記録一覧を描画する。
func (r *Renderer) RenderIndex(w io.Writer, activities []*model.Activity) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", indexData{
		Title:      r.siteTitle,
		Activities: activities,
		Statuses:   []string{"To do", "In progress", "Done"},
	})
}

// RenderBoard はカンバンボードを描画する。
func (r *Renderer) RenderBoard(w io.Writer, columns []*model.ColumnWithCards) error {
	return r.tmpl.ExecuteTemplate(w, "board.html", boardData{
		Title:   r.siteTitle,
		Columns: columns,
	})
}

// fmtDate は日付を"YYYY-MM-DD"形式にする。nil（日付なし）は空文字列。
func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
