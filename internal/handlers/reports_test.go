package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meridareporta/backend/internal/models"
	"github.com/meridareporta/backend/internal/repositories"
	"github.com/meridareporta/backend/internal/services"
)

func validCreateRequest() *CreateReportRequest {
	return &CreateReportRequest{
		Category:    "bache",
		Description: "Bache profundo en la calle 60 por Santa Ana",
		Latitude:    20.97,
		Longitude:   -89.62,
		PhotoURL:    "https://storage.example.com/fotos/bache.jpg",
	}
}

func TestCreateReport_Success(t *testing.T) {
	submitter := &MockSubmitter{}
	handler := NewReportHandler(submitter, &MockReportReader{})

	req := WithAuthContext(NewTestRequest(t, "POST", "/reports", validCreateRequest()), 1, "user")
	w := httptest.NewRecorder()

	handler.CreateReport(w, req)

	var resp ReportResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pendiente", resp.Status)
	assert.Equal(t, int64(1), submitter.LastInput.UserID)
}

func TestCreateReport_Unauthorized(t *testing.T) {
	handler := NewReportHandler(&MockSubmitter{}, &MockReportReader{})

	req := NewTestRequest(t, "POST", "/reports", validCreateRequest())
	w := httptest.NewRecorder()

	handler.CreateReport(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReport_ValidationFailure(t *testing.T) {
	handler := NewReportHandler(&MockSubmitter{}, &MockReportReader{})

	body := validCreateRequest()
	body.Description = "corto"

	req := WithAuthContext(NewTestRequest(t, "POST", "/reports", body), 1, "user")
	w := httptest.NewRecorder()

	handler.CreateReport(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReport_UnsupportedPhotoExtension(t *testing.T) {
	submitter := &MockSubmitter{}
	handler := NewReportHandler(submitter, &MockReportReader{})

	body := validCreateRequest()
	body.PhotoURL = "https://storage.example.com/docs/reporte.pdf"

	req := WithAuthContext(NewTestRequest(t, "POST", "/reports", body), 1, "user")
	w := httptest.NewRecorder()

	handler.CreateReport(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReport_PhotoExtensionWithQueryString(t *testing.T) {
	handler := NewReportHandler(&MockSubmitter{}, &MockReportReader{})

	body := validCreateRequest()
	body.PhotoURL = "https://storage.example.com/fotos/bache.jpeg?token=abc123"

	req := WithAuthContext(NewTestRequest(t, "POST", "/reports", body), 1, "user")
	w := httptest.NewRecorder()

	handler.CreateReport(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReport_ContentRejection(t *testing.T) {
	submitter := &MockSubmitter{
		SubmitFunc: func(ctx context.Context, in services.SubmissionInput) (*services.Decision, error) {
			return &services.Decision{
				State: services.StateRejectedOffensiveText,
				Rejection: &models.RejectionDetail{
					Error:        "offensive_content",
					Message:      "Tu reporte contiene lenguaje ofensivo",
					StrikeIssued: true,
					StrikeCount:  2,
				},
			}, nil
		},
	}
	handler := NewReportHandler(submitter, &MockReportReader{})

	req := WithAuthContext(NewTestRequest(t, "POST", "/reports", validCreateRequest()), 1, "user")
	w := httptest.NewRecorder()

	handler.CreateReport(w, req)

	var detail models.RejectionDetail
	AssertJSONResponse(t, w, http.StatusUnprocessableEntity, &detail)
	assert.Equal(t, "offensive_content", detail.Error)
	assert.True(t, detail.StrikeIssued)
	assert.Equal(t, 2, detail.StrikeCount)
}

func TestCreateReport_BannedUser(t *testing.T) {
	until := time.Now().UTC().Add(time.Hour)
	submitter := &MockSubmitter{
		SubmitFunc: func(ctx context.Context, in services.SubmissionInput) (*services.Decision, error) {
			return nil, &services.BanActiveError{Status: &models.BanStatus{
				IsBanned:      true,
				BanUntil:      &until,
				BanReason:     "Strike 3 - Ban temporal de 10 minuto(s)",
				TimeRemaining: "0 hora(s)",
				StrikeCount:   3,
			}}
		},
	}
	handler := NewReportHandler(submitter, &MockReportReader{})

	req := WithAuthContext(NewTestRequest(t, "POST", "/reports", validCreateRequest()), 1, "user")
	w := httptest.NewRecorder()

	handler.CreateReport(w, req)

	var detail models.RejectionDetail
	AssertJSONResponse(t, w, http.StatusForbidden, &detail)
	assert.Equal(t, "user_banned", detail.Error)
	assert.True(t, detail.IsBanned)
	assert.Equal(t, 3, detail.StrikeCount)
}

func TestGetReport_Success(t *testing.T) {
	reader := &MockReportReader{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Report, error) {
			return &models.Report{ID: id, UserID: 1, Category: "bache", Status: models.ReportStatusPending}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "GET", "/reports/5", nil), 1, "user"), "id", "5")
	w := httptest.NewRecorder()

	handler.GetReport(w, req)

	var resp ReportResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, int64(5), resp.ID)
}

func TestGetReport_ForbiddenForOtherUser(t *testing.T) {
	reader := &MockReportReader{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Report, error) {
			return &models.Report{ID: id, UserID: 99}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "GET", "/reports/5", nil), 1, "user"), "id", "5")
	w := httptest.NewRecorder()

	handler.GetReport(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetReport_AdminCanReadAny(t *testing.T) {
	reader := &MockReportReader{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Report, error) {
			return &models.Report{ID: id, UserID: 99}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "GET", "/reports/5", nil), 1, "admin"), "id", "5")
	w := httptest.NewRecorder()

	handler.GetReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetReport_NotFound(t *testing.T) {
	handler := NewReportHandler(&MockSubmitter{}, &MockReportReader{})

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "GET", "/reports/5", nil), 1, "user"), "id", "5")
	w := httptest.NewRecorder()

	handler.GetReport(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReports_RegularUserScopedToSelf(t *testing.T) {
	var gotFilter repositories.ReportFilter
	reader := &MockReportReader{
		ListFunc: func(ctx context.Context, filter repositories.ReportFilter) ([]*models.Report, error) {
			gotFilter = filter
			return []*models.Report{{ID: 1, UserID: 7}}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithAuthContext(NewTestRequest(t, "GET", "/reports?user_id=99", nil), 7, "user")
	w := httptest.NewRecorder()

	handler.ListReports(w, req)

	var resp ListReportsResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, 1, resp.Total)
	if assert.NotNil(t, gotFilter.UserID) {
		assert.Equal(t, int64(7), *gotFilter.UserID, "user_id filter must be forced to the caller")
	}
}

func TestListReports_AdminFilters(t *testing.T) {
	var gotFilter repositories.ReportFilter
	reader := &MockReportReader{
		ListFunc: func(ctx context.Context, filter repositories.ReportFilter) ([]*models.Report, error) {
			gotFilter = filter
			return []*models.Report{}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithAuthContext(NewTestRequest(t, "GET", "/reports?user_id=42&status=pendiente&category=Bache&min_priority=3", nil), 1, "admin")
	w := httptest.NewRecorder()

	handler.ListReports(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, gotFilter.UserID) {
		assert.Equal(t, int64(42), *gotFilter.UserID)
	}
	assert.Equal(t, "pendiente", gotFilter.Status)
	assert.Equal(t, "bache", gotFilter.Category)
	if assert.NotNil(t, gotFilter.MinPriority) {
		assert.Equal(t, 3, *gotFilter.MinPriority)
	}
}

func TestListReports_InvalidPriorityParam(t *testing.T) {
	handler := NewReportHandler(&MockSubmitter{}, &MockReportReader{})

	req := WithAuthContext(NewTestRequest(t, "GET", "/reports?min_priority=9", nil), 1, "user")
	w := httptest.NewRecorder()

	handler.ListReports(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReportStatus_Success(t *testing.T) {
	var gotStatus string
	reader := &MockReportReader{
		UpdateStatusFunc: func(ctx context.Context, id int64, status string) error {
			gotStatus = status
			return nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "PUT", "/reports/5/status", &UpdateReportStatusRequest{Status: "resuelto"}), 1, "admin"), "id", "5")
	w := httptest.NewRecorder()

	handler.UpdateReportStatus(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "resuelto", gotStatus)
}

func TestUpdateReportStatus_InvalidStatus(t *testing.T) {
	handler := NewReportHandler(&MockSubmitter{}, &MockReportReader{})

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "PUT", "/reports/5/status", &UpdateReportStatusRequest{Status: "cerrado"}), 1, "admin"), "id", "5")
	w := httptest.NewRecorder()

	handler.UpdateReportStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReport_Success(t *testing.T) {
	handler := NewReportHandler(&MockSubmitter{}, &MockReportReader{})

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "DELETE", "/reports/5", nil), 1, "admin"), "id", "5")
	w := httptest.NewRecorder()

	handler.DeleteReport(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteReport_NotFound(t *testing.T) {
	reader := &MockReportReader{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return models.ErrNotFound
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "DELETE", "/reports/5", nil), 1, "admin"), "id", "5")
	w := httptest.NewRecorder()

	handler.DeleteReport(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReport_OwnerCanDeletePending(t *testing.T) {
	reader := &MockReportReader{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Report, error) {
			return &models.Report{ID: id, UserID: 7, Status: models.ReportStatusPending}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "DELETE", "/reports/5", nil), 7, "user"), "id", "5")
	w := httptest.NewRecorder()

	handler.DeleteReport(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteReport_NonOwnerForbidden(t *testing.T) {
	reader := &MockReportReader{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Report, error) {
			return &models.Report{ID: id, UserID: 99, Status: models.ReportStatusPending}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "DELETE", "/reports/5", nil), 7, "user"), "id", "5")
	w := httptest.NewRecorder()

	handler.DeleteReport(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteReport_OwnerCannotDeleteInProgress(t *testing.T) {
	reader := &MockReportReader{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Report, error) {
			return &models.Report{ID: id, UserID: 7, Status: models.ReportStatusInProgress}, nil
		},
	}
	handler := NewReportHandler(&MockSubmitter{}, reader)

	req := WithURLParam(WithAuthContext(NewTestRequest(t, "DELETE", "/reports/5", nil), 7, "user"), "id", "5")
	w := httptest.NewRecorder()

	handler.DeleteReport(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestValidPhotoExtension(t *testing.T) {
	assert.True(t, validPhotoExtension("https://cdn.example.com/a.jpg"))
	assert.True(t, validPhotoExtension("https://cdn.example.com/a.PNG"))
	assert.True(t, validPhotoExtension("https://cdn.example.com/a.webp?sig=x"))
	assert.False(t, validPhotoExtension("https://cdn.example.com/a.pdf"))
	assert.False(t, validPhotoExtension("https://cdn.example.com/a"))
}
