package logger

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// AuditLogger provides audit logging for moderation events
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// LogStrikeIssued logs a moderation strike being recorded against a user
func (al *AuditLogger) LogStrikeIssued(userID, strikeID int64, severity, contentType string, strikeCount int) {
	al.logger.LogAttrs(context.Background(), slog.LevelWarn, "audit",
		slog.String("audit_type", "moderation"),
		slog.String("event_type", "strike_issued"),
		slog.String("user_id", strconv.FormatInt(userID, 10)),
		slog.Int64("strike_id", strikeID),
		slog.String("severity", severity),
		slog.String("content_type", contentType),
		slog.Int("strike_count", strikeCount),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}

// LogBanApplied logs a ban taking effect as a result of escalation
func (al *AuditLogger) LogBanApplied(userID int64, reason string, banUntil *time.Time, permanent bool) {
	attrs := []slog.Attr{
		slog.String("audit_type", "moderation"),
		slog.String("event_type", "ban_applied"),
		slog.String("user_id", strconv.FormatInt(userID, 10)),
		slog.String("reason", reason),
		slog.Bool("permanent", permanent),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	if banUntil != nil {
		attrs = append(attrs, slog.String("ban_until", banUntil.UTC().Format(time.RFC3339)))
	}
	al.logger.LogAttrs(context.Background(), slog.LevelWarn, "audit", attrs...)
}

// LogBanLifted logs an expired temporary ban being cleared
func (al *AuditLogger) LogBanLifted(userID int64) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit",
		slog.String("audit_type", "moderation"),
		slog.String("event_type", "ban_lifted"),
		slog.String("user_id", strconv.FormatInt(userID, 10)),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}

// LogUserUnbanned logs an admin manually clearing a ban
func (al *AuditLogger) LogUserUnbanned(userID int64, adminReason string) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit",
		slog.String("audit_type", "moderation"),
		slog.String("event_type", "user_unbanned"),
		slog.String("user_id", strconv.FormatInt(userID, 10)),
		slog.String("admin_reason", adminReason),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}

// LogSubmissionRejected logs a report submission blocked by content checks
func (al *AuditLogger) LogSubmissionRejected(userID int64, stage, reason string, strikeIssued bool) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit",
		slog.String("audit_type", "moderation"),
		slog.String("event_type", "submission_rejected"),
		slog.String("user_id", strconv.FormatInt(userID, 10)),
		slog.String("stage", stage),
		slog.String("reason", reason),
		slog.Bool("strike_issued", strikeIssued),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}
