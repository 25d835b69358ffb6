package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/smartops/internal/form"
	"github.com/hitoshi/smartops/internal/model"
)

// mockActivityService はActivityServiceInterfaceのモック。
type mockActivityService struct {
	listFunc   func(ctx context.Context) ([]*model.Activity, error)
	createFunc func(ctx context.Context, input *model.ActivityInput) (*model.Activity, error)
	updateFunc func(ctx context.Context, id int, input *model.ActivityInput) error
	deleteFunc func(ctx context.Context, id int) error
}

func (m *mockActivityService) List(ctx context.Context) ([]*model.Activity, error) {
	return m.listFunc(ctx)
}

func (m *mockActivityService) Create(ctx context.Context, input *model.ActivityInput) (*model.Activity, error) {
	return m.createFunc(ctx, input)
}

func (m *mockActivityService) Update(ctx context.Context, id int, input *model.ActivityInput) error {
	return m.updateFunc(ctx, id, input)
}

func (m *mockActivityService) Delete(ctx context.Context, id int) error {
	return m.deleteFunc(ctx, id)
}

func newActivityHandlerForTest(t *testing.T, service *mockActivityService) *ActivityHandler {
	t.Helper()
	return NewActivityHandler(service, form.NewNormalizer(), newTestRenderer(t))
}

// postForm はURLパラメータ付きのPOSTリクエストを組み立てる。
func postForm(target string, values url.Values, params map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

func TestActivityHandler_List(t *testing.T) {
	service := &mockActivityService{
		listFunc: func(ctx context.Context) ([]*model.Activity, error) {
			return []*model.Activity{
				{ID: 2, Client: "Acme", TypeIntervention: "maintenance", Status: "Done"},
				{ID: 1, Client: "Globex", TypeIntervention: "audit", Status: "To do"},
			}, nil
		},
	}
	handler := newActivityHandlerForTest(t, service)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Acme") || !strings.Contains(body, "Globex") {
		t.Error("expected activities in response body")
	}
}

func TestActivityHandler_Add(t *testing.T) {
	var created *model.ActivityInput
	service := &mockActivityService{
		createFunc: func(ctx context.Context, input *model.ActivityInput) (*model.Activity, error) {
			created = input
			return &model.Activity{ID: 1}, nil
		},
	}
	handler := newActivityHandlerForTest(t, service)

	values := url.Values{}
	values.Set("client", "  Acme  ")
	values.Set("type_intervention", "maintenance")
	values.Set("description", "replace filters")
	values.Set("due_date", "2026-09-15")
	rec := httptest.NewRecorder()

	handler.Add(rec, postForm("/add", values, nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusFound)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Errorf("Location = %q, want %q", got, "/")
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if created.Client != "Acme" {
		t.Errorf("Client = %q, want %q", created.Client, "Acme")
	}
	// statusフィールドが無い場合はデフォルト値
	if created.Status != model.StatusDefault {
		t.Errorf("Status = %q, want %q", created.Status, model.StatusDefault)
	}
	if created.DueDate == nil || created.DueDate.Format("2006-01-02") != "2026-09-15" {
		t.Errorf("DueDate = %v, want 2026-09-15", created.DueDate)
	}
}

func TestActivityHandler_Add_MissingRequiredField(t *testing.T) {
	service := &mockActivityService{
		createFunc: func(ctx context.Context, input *model.ActivityInput) (*model.Activity, error) {
			t.Error("Create should not be called for invalid input")
			return nil, nil
		},
	}
	handler := newActivityHandlerForTest(t, service)

	values := url.Values{}
	values.Set("client", "Acme")
	// type_interventionなし
	rec := httptest.NewRecorder()

	handler.Add(rec, postForm("/add", values, nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestActivityHandler_Edit(t *testing.T) {
	var updatedID int
	service := &mockActivityService{
		updateFunc: func(ctx context.Context, id int, input *model.ActivityInput) error {
			updatedID = id
			return nil
		},
	}
	handler := newActivityHandlerForTest(t, service)

	values := url.Values{}
	values.Set("client", "Acme")
	values.Set("type_intervention", "audit")
	rec := httptest.NewRecorder()

	handler.Edit(rec, postForm("/edit/42", values, map[string]string{"id": "42"}))

	if rec.Code != http.StatusFound {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusFound)
	}
	if updatedID != 42 {
		t.Errorf("updated id = %d, want 42", updatedID)
	}
}

func TestActivityHandler_Edit_NotFound(t *testing.T) {
	service := &mockActivityService{
		updateFunc: func(ctx context.Context, id int, input *model.ActivityInput) error {
			return model.NewActivityNotFoundError(id)
		},
	}
	handler := newActivityHandlerForTest(t, service)

	values := url.Values{}
	values.Set("client", "Acme")
	values.Set("type_intervention", "audit")
	rec := httptest.NewRecorder()

	handler.Edit(rec, postForm("/edit/999", values, map[string]string{"id": "999"}))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestActivityHandler_Edit_InvalidID(t *testing.T) {
	service := &mockActivityService{
		updateFunc: func(ctx context.Context, id int, input *model.ActivityInput) error {
			t.Error("Update should not be called for non-numeric id")
			return nil
		},
	}
	handler := newActivityHandlerForTest(t, service)

	values := url.Values{}
	values.Set("client", "Acme")
	values.Set("type_intervention", "audit")
	rec := httptest.NewRecorder()

	handler.Edit(rec, postForm("/edit/abc", values, map[string]string{"id": "abc"}))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestActivityHandler_Delete(t *testing.T) {
	var deletedID int
	service := &mockActivityService{
		deleteFunc: func(ctx context.Context, id int) error {
			deletedID = id
			return nil
		},
	}
	handler := newActivityHandlerForTest(t, service)

	rec := httptest.NewRecorder()
	handler.Delete(rec, postForm("/delete/7", url.Values{}, map[string]string{"id": "7"}))

	if rec.Code != http.StatusFound {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusFound)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Errorf("Location = %q, want %q", got, "/")
	}
	if deletedID != 7 {
		t.Errorf("deleted id = %d, want 7", deletedID)
	}
}

func TestActivityHandler_Delete_MissingID(t *testing.T) {
	// 存在しないIDでも削除は成功扱い（サービス層が冪等）
	service := &mockActivityService{
		deleteFunc: func(ctx context.Context, id int) error {
			return nil
		},
	}
	handler := newActivityHandlerForTest(t, service)

	rec := httptest.NewRecorder()
	handler.Delete(rec, postForm("/delete/999", url.Values{}, map[string]string{"id": "999"}))

	if rec.Code != http.StatusFound {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusFound)
	}
}
