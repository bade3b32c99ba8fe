package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meridareporta/backend/internal/auth"
	"github.com/meridareporta/backend/internal/models"
	pkghttp "github.com/meridareporta/backend/pkg/http"
)

// ModerationProvider defines the moderation operations exposed over HTTP
type ModerationProvider interface {
	CheckBanStatus(ctx context.Context, userID int64) (*models.BanStatus, error)
	UnbanUser(ctx context.Context, userID int64, adminReason string) (bool, error)
	GetUserStrikes(ctx context.Context, userID int64) ([]*models.Strike, error)
}

// ModerationHandler handles moderation-related HTTP requests
type ModerationHandler struct {
	service ModerationProvider
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(service ModerationProvider) *ModerationHandler {
	return &ModerationHandler{
		service: service,
	}
}

// Request/Response DTOs

// UnbanRequest represents the request body for an admin unban
type UnbanRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// BanStatusResponse represents a user's ban state in the HTTP response
type BanStatusResponse struct {
	IsBanned      bool   `json:"is_banned"`
	IsPermanent   bool   `json:"is_permanent"`
	BanExpired    bool   `json:"ban_expired,omitempty"`
	BanUntil      string `json:"ban_until,omitempty"`
	BanReason     string `json:"ban_reason,omitempty"`
	TimeRemaining string `json:"time_remaining,omitempty"`
	StrikeCount   int    `json:"strike_count"`
	LastStrikeAt  string `json:"last_strike_at,omitempty"`
}

// StrikeResponse represents a strike in the HTTP response
type StrikeResponse struct {
	ID          int64  `json:"id"`
	Reason      string `json:"reason"`
	Severity    string `json:"severity"`
	ContentType string `json:"content_type"`
	ReportID    *int64 `json:"report_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ListStrikesResponse represents a user's strike history
type ListStrikesResponse struct {
	Strikes []*StrikeResponse `json:"strikes"`
	Total   int               `json:"total"`
}

func banStatusToResponse(status *models.BanStatus) *BanStatusResponse {
	resp := &BanStatusResponse{
		IsBanned:      status.IsBanned,
		IsPermanent:   status.IsPermanent,
		BanExpired:    status.BanExpired,
		BanReason:     status.BanReason,
		TimeRemaining: status.TimeRemaining,
		StrikeCount:   status.StrikeCount,
	}
	if status.BanUntil != nil {
		resp.BanUntil = status.BanUntil.Format(time.RFC3339)
	}
	if status.LastStrikeAt != nil {
		resp.LastStrikeAt = status.LastStrikeAt.Format(time.RFC3339)
	}
	return resp
}

// GetMyBanStatus returns the authenticated user's own ban state
func (h *ModerationHandler) GetMyBanStatus(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	status, err := h.service.CheckBanStatus(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, banStatusToResponse(status))
}

// GetUserBanStatus returns any user's ban state (admin only)
func (h *ModerationHandler) GetUserBanStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	status, err := h.service.CheckBanStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, banStatusToResponse(status))
}

// UnbanUser clears a user's ban (admin only). Returns 409 when the user is
// not currently banned.
func (h *ModerationHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	var req UnbanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	unbanned, err := h.service.UnbanUser(r.Context(), id, req.Reason)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	if !unbanned {
		pkghttp.WriteConflict(w, "User is not banned")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetUserStrikes returns a user's strike history (admin only)
func (h *ModerationHandler) GetUserStrikes(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	strikes, err := h.service.GetUserStrikes(r.Context(), id)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := &ListStrikesResponse{
		Strikes: make([]*StrikeResponse, 0, len(strikes)),
		Total:   len(strikes),
	}
	for _, strike := range strikes {
		resp.Strikes = append(resp.Strikes, &StrikeResponse{
			ID:          strike.ID,
			Reason:      strike.Reason,
			Severity:    string(strike.Severity),
			ContentType: string(strike.ContentType),
			ReportID:    strike.ReportID,
			CreatedAt:   strike.CreatedAt.Format(time.RFC3339),
		})
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}
