package services

import (
	"fmt"
	"time"

	"github.com/meridareporta/backend/internal/models"
)

// banDecision is the outcome of the escalation policy for a single strike.
type banDecision struct {
	ShouldBan    bool
	BanUntil     *time.Time // nil with ShouldBan means permanent
	BanReason    string
	DurationDays int
	IsPermanent  bool
}

// banDurations maps the post-increment strike count to a temporary ban
// length. Counts 1-2 are warnings, counts >= 7 are permanent.
var banDurations = map[int]time.Duration{
	3: 10 * time.Minute,
	4: 30 * time.Minute,
	5: 24 * time.Hour,
	6: 7 * 24 * time.Hour,
}

// calculateBan is the pure escalation function: (post-increment strike
// count, severity) -> ban decision. Critical severity overrides the table
// with an immediate permanent ban.
func calculateBan(strikeCount int, severity models.Severity, now time.Time) banDecision {
	if severity == models.SeverityCritical {
		return banDecision{
			ShouldBan:   true,
			BanReason:   "Contenido extremadamente inapropiado u ofensivo",
			IsPermanent: true,
		}
	}

	if strikeCount <= 2 {
		return banDecision{}
	}

	if strikeCount >= 7 {
		return banDecision{
			ShouldBan:   true,
			BanReason:   "Múltiples infracciones - Ban permanente",
			IsPermanent: true,
		}
	}

	duration := banDurations[strikeCount]
	until := now.Add(duration)
	days := int(duration.Hours()) / 24

	var durationText string
	if days > 0 {
		durationText = fmt.Sprintf("%d día(s)", days)
	} else {
		durationText = fmt.Sprintf("%d minuto(s)", int(duration.Minutes()))
	}

	return banDecision{
		ShouldBan:    true,
		BanUntil:     &until,
		BanReason:    fmt.Sprintf("Strike %d - Ban temporal de %s", strikeCount, durationText),
		DurationDays: days,
	}
}

// downgrades reports whether applying decision to user would weaken a ban
// that is already in force. The escalation is monotonic: a permanent ban is
// never replaced and a temporary ban's expiry never moves earlier.
func downgrades(user *models.User, decision banDecision) bool {
	if !user.IsBanned {
		return false
	}
	if user.BanUntil == nil {
		// Existing permanent ban: nothing may replace it.
		return true
	}
	if decision.IsPermanent {
		return false
	}
	return decision.BanUntil == nil || decision.BanUntil.Before(*user.BanUntil)
}
