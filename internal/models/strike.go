package models

import "time"

// Severity of a moderation violation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ContentType identifies which part of a submission triggered a strike.
type ContentType string

const (
	ContentTypePhoto       ContentType = "photo"
	ContentTypeDescription ContentType = "description"
	ContentTypeBoth        ContentType = "both"
)

// Strike is an immutable record of a single moderation violation.
// Strikes are only ever inserted; they are never edited or deleted.
type Strike struct {
	ID              int64
	UserID          int64
	Reason          string
	Severity        Severity
	ContentType     ContentType
	AIDetection     string
	IsOffensive     bool
	IsJoke          bool
	IsInappropriate bool
	ReportID        *int64
	CreatedAt       time.Time
}

// StrikeResult describes the outcome of issuing a strike, including the
// escalation it produced on the owning user.
type StrikeResult struct {
	StrikeID     int64
	StrikeCount  int
	IsBanned     bool
	BanUntil     *time.Time
	BanReason    string
	DurationDays int
	IsPermanent  bool
}

// BanStatus is the result of a ban gate check, shaped for client display.
type BanStatus struct {
	IsBanned      bool
	IsPermanent   bool
	BanExpired    bool
	BanUntil      *time.Time
	BanReason     string
	TimeRemaining string // "N día(s)" when >= 1 day, otherwise "N hora(s)"
	StrikeCount   int
	LastStrikeAt  *time.Time
}

// RejectionDetail is the client-facing payload returned when a submission is
// rejected for a content violation or an active ban. The field set is a wire
// contract shared with existing clients.
type RejectionDetail struct {
	Error           string     `json:"error"`
	Message         string     `json:"message"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	StrikeIssued    bool       `json:"strike_issued"`
	StrikeCount     int        `json:"strike_count"`
	IsBanned        bool       `json:"is_banned"`
	BanUntil        *time.Time `json:"ban_until,omitempty"`
	IsPermanentBan  bool       `json:"is_permanent_ban"`
	TimeRemaining   string     `json:"time_remaining,omitempty"`
}
