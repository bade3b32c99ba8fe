package middleware

import (
	"context"
	"net/http"

	"github.com/meridareporta/backend/internal/auth"
	"github.com/meridareporta/backend/internal/models"
	pkghttp "github.com/meridareporta/backend/pkg/http"
)

// BanChecker checks whether a user is currently banned.
type BanChecker interface {
	CheckBanStatus(ctx context.Context, userID int64) (*models.BanStatus, error)
}

// RequireNotBanned blocks banned users from reaching content-creating
// endpoints. Must be used after auth.AuthMiddleware. The check also lifts
// expired temporary bans as a side effect.
func RequireNotBanned(bans BanChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserFromContext(r)
			if claims == nil {
				pkghttp.WriteUnauthorized(w, "unauthorized")
				return
			}

			status, err := bans.CheckBanStatus(r.Context(), claims.UserID)
			if err != nil {
				pkghttp.WriteInternalError(w, "unable to verify account status")
				return
			}

			if status.IsBanned {
				pkghttp.WriteJSON(w, http.StatusForbidden, &models.RejectionDetail{
					Error:          "user_banned",
					Message:        status.BanReason,
					IsBanned:       true,
					BanUntil:       status.BanUntil,
					IsPermanentBan: status.IsPermanent,
					TimeRemaining:  status.TimeRemaining,
					StrikeCount:    status.StrikeCount,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
