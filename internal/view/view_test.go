package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/smartops/internal/model"
)

// TestRenderLogin はログイン画面の描画とエラーメッセージ表示を検証する。
func TestRenderLogin(t *testing.T) {
	r, err := NewRenderer("DTN SmartOps")
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.RenderLogin(&buf, ""); err != nil {
		t.Fatalf("RenderLogin returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "DTN SmartOps") {
		t.Error("login view missing site title")
	}
	if strings.Contains(buf.String(), `class="error"`) {
		t.Error("login view must not show an error block without a message")
	}

	buf.Reset()
	if err := r.RenderLogin(&buf, "Invalid credentials."); err != nil {
		t.Fatalf("RenderLogin returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "Invalid credentials.") {
		t.Error("login view missing error message")
	}
}

// TestRenderIndex は一覧描画で各行の内容と日付整形を検証する。
func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer("DTN SmartOps")
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	due := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	activities := []*model.Activity{
		{ID: 2, Client: "Acme", TypeIntervention: "Install", Status: "To do", DueDate: &due},
		{ID: 1, Client: "Globex", TypeIntervention: "Repair", Status: "Done"},
	}

	var buf bytes.Buffer
	if err := r.RenderIndex(&buf, activities); err != nil {
		t.Fatalf("RenderIndex returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Acme") || !strings.Contains(out, "Globex") {
		t.Error("index view missing activity rows")
	}
	if !strings.Contains(out, "2025-06-01") {
		t.Error("index view missing formatted due date")
	}
}

// TestRenderIndex_EscapesContent は保存値がHTMLエスケープされて描画されることを検証する。
func TestRenderIndex_EscapesContent(t *testing.T) {
	r, err := NewRenderer("DTN SmartOps")
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	activities := []*model.Activity{
		{ID: 1, Client: "<b>Acme</b>", TypeIntervention: "Install", Status: "To do"},
	}

	var buf bytes.Buffer
	if err := r.RenderIndex(&buf, activities); err != nil {
		t.Fatalf("RenderIndex returned error: %v", err)
	}
	if strings.Contains(buf.String(), "<b>Acme</b>") {
		t.Error("stored markup must be escaped in output")
	}
}

// TestRenderBoard はボード描画で列とカードが出力されることを検証する。
func TestRenderBoard(t *testing.T) {
	r, err := NewRenderer("DTN SmartOps")
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	columns := []*model.ColumnWithCards{
		{Column: model.Column{ID: 1, Title: "To do"}, Cards: []model.Card{{ID: 10, Title: "Replace router", ColumnID: 1}}},
		{Column: model.Column{ID: 2, Title: "Done"}},
	}

	var buf bytes.Buffer
	if err := r.RenderBoard(&buf, columns); err != nil {
		t.Fatalf("RenderBoard returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Replace router") {
		t.Error("board view missing card title")
	}
	if !strings.Contains(out, "Done") {
		t.Error("board view missing empty column")
	}
}
