package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/meridareporta/backend/internal/models"
	pkglogger "github.com/meridareporta/backend/pkg/logger"
)

// UserStore defines the user data access needed by moderation.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.User, error)
	ApplyStrike(ctx context.Context, tx pgx.Tx, user *models.User) error
	LiftExpiredBan(ctx context.Context, id int64, observedUntil time.Time) (bool, error)
	Unban(ctx context.Context, id int64, reason string) (bool, error)
}

// StrikeStore defines the strike ledger access needed by moderation.
type StrikeStore interface {
	Insert(ctx context.Context, tx pgx.Tx, strike *models.Strike) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Strike, error)
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// Notifier sends moderation notices to users. Implementations must be
// best-effort; delivery failures never affect moderation outcomes.
type Notifier interface {
	SendStrikeNotice(ctx context.Context, user *models.User, result *models.StrikeResult) error
}

// IssueStrikeInput carries everything needed to record a violation.
type IssueStrikeInput struct {
	UserID          int64
	Reason          string
	Severity        models.Severity
	ContentType     models.ContentType
	Detection       string
	IsOffensive     bool
	IsJoke          bool
	IsInappropriate bool
	ReportID        *int64
}

// ModerationService owns the strike ledger, the ban escalation policy, the
// ban gate, and admin unbans.
type ModerationService struct {
	db       TxRunner
	users    UserStore
	strikes  StrikeStore
	notifier Notifier // optional
	audit    *pkglogger.AuditLogger
	logger   *slog.Logger
}

func NewModerationService(db TxRunner, users UserStore, strikes StrikeStore, notifier Notifier, audit *pkglogger.AuditLogger, logger *slog.Logger) *ModerationService {
	return &ModerationService{
		db:       db,
		users:    users,
		strikes:  strikes,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
	}
}

// IssueStrike appends a violation record and applies the resulting
// escalation in a single transaction. The user row is locked for the
// duration so concurrent strikes escalate sequentially rather than both
// landing on the same tier.
func (s *ModerationService) IssueStrike(ctx context.Context, in IssueStrikeInput) (*models.StrikeResult, error) {
	if !in.Severity.Valid() {
		return nil, fmt.Errorf("%w: unknown severity %q", models.ErrBadRequest, in.Severity)
	}

	var result *models.StrikeResult
	var strickenUser *models.User

	err := s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		user, err := s.users.GetForUpdate(ctx, tx, in.UserID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		newCount := user.StrikeCount + 1
		decision := calculateBan(newCount, in.Severity, now)

		strike := &models.Strike{
			UserID:          in.UserID,
			Reason:          in.Reason,
			Severity:        in.Severity,
			ContentType:     in.ContentType,
			AIDetection:     in.Detection,
			IsOffensive:     in.IsOffensive,
			IsJoke:          in.IsJoke,
			IsInappropriate: in.IsInappropriate,
			ReportID:        in.ReportID,
		}
		if err := s.strikes.Insert(ctx, tx, strike); err != nil {
			return err
		}

		user.StrikeCount = newCount
		user.LastStrikeAt = &now

		if decision.ShouldBan && !downgrades(user, decision) {
			user.IsBanned = true
			user.BanUntil = decision.BanUntil
			user.BanReason = decision.BanReason
		}

		if err := s.users.ApplyStrike(ctx, tx, user); err != nil {
			return err
		}

		result = strikeResult(strike.ID, user, now)
		strickenUser = user
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrBadRequest) {
			return nil, err
		}
		s.logger.Error("failed to issue strike",
			slog.Int64("user_id", in.UserID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.audit.LogStrikeIssued(in.UserID, result.StrikeID, string(in.Severity), string(in.ContentType), result.StrikeCount)
	if result.IsBanned {
		s.audit.LogBanApplied(in.UserID, result.BanReason, result.BanUntil, result.IsPermanent)
	}

	if s.notifier != nil {
		if err := s.notifier.SendStrikeNotice(ctx, strickenUser, result); err != nil {
			s.logger.Warn("strike notice delivery failed",
				slog.Int64("user_id", in.UserID), slog.Any("error", err))
		}
	}

	return result, nil
}

// strikeResult derives the caller-facing result from the user's final ban
// state, which may be an older, stricter ban that this strike did not touch.
func strikeResult(strikeID int64, user *models.User, now time.Time) *models.StrikeResult {
	result := &models.StrikeResult{
		StrikeID:    strikeID,
		StrikeCount: user.StrikeCount,
		IsBanned:    user.IsBanned,
		BanUntil:    user.BanUntil,
		BanReason:   user.BanReason,
		IsPermanent: user.PermanentlyBanned(),
	}
	if user.BanUntil != nil {
		result.DurationDays = int(user.BanUntil.Sub(now).Hours()) / 24
	}
	return result
}

// CheckBanStatus is the ban gate. A read that observes an expired temporary
// ban lifts it as a side effect; the lift is a compare-and-swap on the
// observed expiry, so concurrent readers and racing strikes cannot corrupt
// each other.
func (s *ModerationService) CheckBanStatus(ctx context.Context, userID int64) (*models.BanStatus, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if user.IsBanned && user.BanUntil != nil && !user.BanUntil.After(now) {
		lifted, err := s.users.LiftExpiredBan(ctx, userID, *user.BanUntil)
		if err != nil {
			s.logger.Error("failed to lift expired ban",
				slog.Int64("user_id", userID), slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		if lifted {
			s.audit.LogBanLifted(userID)
			return &models.BanStatus{
				BanExpired:   true,
				StrikeCount:  user.StrikeCount,
				LastStrikeAt: user.LastStrikeAt,
			}, nil
		}
		// Lost the race: either another reader lifted it or a concurrent
		// strike replaced the ban. Re-read and report current state.
		user, err = s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	if !user.IsBanned {
		return &models.BanStatus{
			StrikeCount:  user.StrikeCount,
			LastStrikeAt: user.LastStrikeAt,
		}, nil
	}

	status := &models.BanStatus{
		IsBanned:    true,
		IsPermanent: user.BanUntil == nil,
		BanUntil:    user.BanUntil,
		BanReason:   user.BanReason,
		StrikeCount: user.StrikeCount,
	}
	if user.BanUntil != nil {
		status.TimeRemaining = formatRemaining(user.BanUntil.Sub(now))
	}
	return status, nil
}

// formatRemaining renders a remaining ban duration at day granularity when
// at least one day is left, hour granularity otherwise.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	if days > 0 {
		return fmt.Sprintf("%d día(s)", days)
	}
	return fmt.Sprintf("%d hora(s)", int(d.Hours()))
}

// UnbanUser clears a ban by admin action, outside the escalation policy.
// Returns false when the user was not banned.
func (s *ModerationService) UnbanUser(ctx context.Context, userID int64, adminReason string) (bool, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, err
	}

	if adminReason == "" {
		adminReason = "Unbanned by admin"
	}

	unbanned, err := s.users.Unban(ctx, userID, "Desbaneado por admin: "+adminReason)
	if err != nil {
		s.logger.Error("failed to unban user",
			slog.Int64("user_id", userID), slog.Any("error", err))
		return false, models.ErrInternalServer
	}

	if unbanned {
		s.audit.LogUserUnbanned(userID, adminReason)
	}
	return unbanned, nil
}

// GetUserStrikes returns a user's full strike history, newest first.
func (s *ModerationService) GetUserStrikes(ctx context.Context, userID int64) ([]*models.Strike, error) {
	strikes, err := s.strikes.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list strikes",
			slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return strikes, nil
}
