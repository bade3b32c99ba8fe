package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/meridareporta/backend/internal/auth"
	"github.com/meridareporta/backend/internal/models"
	"github.com/meridareporta/backend/internal/repositories"
	"github.com/meridareporta/backend/internal/services"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext adds user claims to request context for testing authenticated endpoints
func WithAuthContext(req *http.Request, userID int64, role string) *http.Request {
	claims := &auth.Claims{
		UserID: userID,
		Role:   role,
	}
	ctx := context.WithValue(req.Context(), auth.UserContextKey, claims)
	return req.WithContext(ctx)
}

// WithURLParam injects a chi URL parameter into the request context
func WithURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Response body must be valid JSON")
	}
}

// MockSubmitter implements Submitter for testing
type MockSubmitter struct {
	SubmitFunc func(ctx context.Context, in services.SubmissionInput) (*services.Decision, error)

	LastInput services.SubmissionInput
}

func (m *MockSubmitter) Submit(ctx context.Context, in services.SubmissionInput) (*services.Decision, error) {
	m.LastInput = in
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, in)
	}
	return &services.Decision{
		Accepted: true,
		State:    services.StateAccepted,
		Report:   &models.Report{ID: 1, UserID: in.UserID, Category: in.Category, Status: models.ReportStatusPending},
	}, nil
}

// MockReportReader implements ReportReader for testing
type MockReportReader struct {
	GetByIDFunc      func(ctx context.Context, id int64) (*models.Report, error)
	ListFunc         func(ctx context.Context, filter repositories.ReportFilter) ([]*models.Report, error)
	DeleteFunc       func(ctx context.Context, id int64) error
	UpdateStatusFunc func(ctx context.Context, id int64, status string) error
}

func (m *MockReportReader) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockReportReader) List(ctx context.Context, filter repositories.ReportFilter) ([]*models.Report, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Report{}, nil
}

func (m *MockReportReader) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockReportReader) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockModerationProvider implements ModerationProvider for testing
type MockModerationProvider struct {
	CheckBanStatusFunc func(ctx context.Context, userID int64) (*models.BanStatus, error)
	UnbanUserFunc      func(ctx context.Context, userID int64, adminReason string) (bool, error)
	GetUserStrikesFunc func(ctx context.Context, userID int64) ([]*models.Strike, error)
}

func (m *MockModerationProvider) CheckBanStatus(ctx context.Context, userID int64) (*models.BanStatus, error) {
	if m.CheckBanStatusFunc != nil {
		return m.CheckBanStatusFunc(ctx, userID)
	}
	return &models.BanStatus{}, nil
}

func (m *MockModerationProvider) UnbanUser(ctx context.Context, userID int64, adminReason string) (bool, error) {
	if m.UnbanUserFunc != nil {
		return m.UnbanUserFunc(ctx, userID, adminReason)
	}
	return false, nil
}

func (m *MockModerationProvider) GetUserStrikes(ctx context.Context, userID int64) ([]*models.Strike, error) {
	if m.GetUserStrikesFunc != nil {
		return m.GetUserStrikesFunc(ctx, userID)
	}
	return []*models.Strike{}, nil
}
