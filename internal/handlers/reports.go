package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridareporta/backend/internal/auth"
	"github.com/meridareporta/backend/internal/models"
	"github.com/meridareporta/backend/internal/repositories"
	"github.com/meridareporta/backend/internal/services"
	pkghttp "github.com/meridareporta/backend/pkg/http"
)

// Submitter runs the content validation pipeline for new reports
type Submitter interface {
	Submit(ctx context.Context, in services.SubmissionInput) (*services.Decision, error)
}

// ReportReader provides read and admin access to persisted reports
type ReportReader interface {
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, filter repositories.ReportFilter) ([]*models.Report, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	submitter Submitter
	reports   ReportReader
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(submitter Submitter, reports ReportReader) *ReportHandler {
	return &ReportHandler{
		submitter: submitter,
		reports:   reports,
	}
}

// allowedPhotoExtensions are the only file types accepted for report photos
var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Request/Response DTOs

// CreateReportRequest represents the request body for submitting a report
type CreateReportRequest struct {
	Category    string  `json:"category" validate:"required,min=2,max=50"`
	Description string  `json:"description" validate:"required,min=10,max=2000"`
	Latitude    float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   float64 `json:"longitude" validate:"omitempty,longitude"`
	PhotoURL    string  `json:"photo_url" validate:"omitempty,url,max=500"`
}

// UpdateReportStatusRequest represents the request body for a status change
type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pendiente en_proceso resuelto"`
}

// ReportResponse represents a report in the HTTP response
type ReportResponse struct {
	ID                  int64   `json:"id"`
	UserID              int64   `json:"user_id"`
	Category            string  `json:"category"`
	Description         string  `json:"description"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	PhotoURL            string  `json:"photo_url,omitempty"`
	Priority            int     `json:"priority"`
	Status              string  `json:"status"`
	AIValidated         bool    `json:"ai_validated"`
	AIConfidence        float64 `json:"ai_confidence"`
	AISuggestedCategory string  `json:"ai_suggested_category,omitempty"`
	AIReasoning         string  `json:"ai_reasoning,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// ListReportsResponse represents a list of reports
type ListReportsResponse struct {
	Reports []*ReportResponse `json:"reports"`
	Total   int               `json:"total"`
}

// reportModelToResponse converts a report model to a response DTO
func reportModelToResponse(report *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:                  report.ID,
		UserID:              report.UserID,
		Category:            report.Category,
		Description:         report.Description,
		Latitude:            report.Latitude,
		Longitude:           report.Longitude,
		PhotoURL:            report.PhotoURL,
		Priority:            report.Priority,
		Status:              report.Status,
		AIValidated:         report.AIValidated,
		AIConfidence:        report.AIConfidence,
		AISuggestedCategory: report.AISuggestedCategory,
		AIReasoning:         report.AIReasoning,
		CreatedAt:           report.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           report.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateReport validates and submits a new report. Rejections for content
// violations return 422 with the rejection detail; an active ban returns 403.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if req.PhotoURL != "" && !validPhotoExtension(req.PhotoURL) {
		pkghttp.WriteBadRequest(w, "Unsupported photo file type")
		return
	}

	decision, err := h.submitter.Submit(r.Context(), services.SubmissionInput{
		UserID:      claims.UserID,
		Category:    strings.ToLower(req.Category),
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		var banErr *services.BanActiveError
		if errors.As(err, &banErr) {
			pkghttp.WriteJSON(w, http.StatusForbidden, &models.RejectionDetail{
				Error:          "user_banned",
				Message:        banErr.Status.BanReason,
				IsBanned:       true,
				BanUntil:       banErr.Status.BanUntil,
				IsPermanentBan: banErr.Status.IsPermanent,
				TimeRemaining:  banErr.Status.TimeRemaining,
				StrikeCount:    banErr.Status.StrikeCount,
			})
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Invalid report data")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	if !decision.Accepted {
		pkghttp.WriteJSON(w, http.StatusUnprocessableEntity, decision.Rejection)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, reportModelToResponse(decision.Report))
}

// GetReport retrieves a report by ID. Regular users can only read their own
// reports; admins can read any.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.reports.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Report not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	if claims.Role != "admin" && report.UserID != claims.UserID {
		pkghttp.WriteForbidden(w, "Forbidden: you cannot access this resource")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, reportModelToResponse(report))
}

// ListReports lists reports. Regular users see only their own; admins can
// filter by user, status, category, and priority range.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	filter := repositories.ReportFilter{}
	q := r.URL.Query()

	if claims.Role == "admin" {
		if v := q.Get("user_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				pkghttp.WriteBadRequest(w, "Invalid user_id parameter")
				return
			}
			filter.UserID = &id
		}
	} else {
		filter.UserID = &claims.UserID
	}

	if v := q.Get("status"); v != "" {
		filter.Status = v
	}
	if v := q.Get("category"); v != "" {
		filter.Category = strings.ToLower(v)
	}
	if v := q.Get("min_priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 5 {
			pkghttp.WriteBadRequest(w, "Invalid min_priority parameter")
			return
		}
		filter.MinPriority = &p
	}
	if v := q.Get("max_priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 5 {
			pkghttp.WriteBadRequest(w, "Invalid max_priority parameter")
			return
		}
		filter.MaxPriority = &p
	}

	reports, err := h.reports.List(r.Context(), filter)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := &ListReportsResponse{
		Reports: make([]*ReportResponse, 0, len(reports)),
		Total:   len(reports),
	}
	for _, report := range reports {
		resp.Reports = append(resp.Reports, reportModelToResponse(report))
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// UpdateReportStatus changes a report's workflow status (admin only)
func (h *ReportHandler) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid report ID")
		return
	}

	var req UpdateReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.reports.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Report not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteReport removes a report. Admins can delete any report; regular users
// can delete their own while it is still pending.
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid report ID")
		return
	}

	if claims.Role != "admin" {
		report, err := h.reports.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				pkghttp.WriteNotFound(w, "Report not found")
				return
			}
			pkghttp.WriteInternalError(w, "Internal server error")
			return
		}
		if report.UserID != claims.UserID {
			pkghttp.WriteForbidden(w, "Forbidden: you cannot access this resource")
			return
		}
		if report.Status != models.ReportStatusPending {
			pkghttp.WriteConflict(w, "Only pending reports can be deleted")
			return
		}
	}

	if err := h.reports.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Report not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validPhotoExtension checks the URL path against the photo type allowlist
func validPhotoExtension(photoURL string) bool {
	cleaned := photoURL
	if i := strings.IndexAny(cleaned, "?#"); i >= 0 {
		cleaned = cleaned[:i]
	}
	ext := strings.ToLower(path.Ext(cleaned))
	return allowedPhotoExtensions[ext]
}

// parseIDParam extracts and parses the {id} URL parameter
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
