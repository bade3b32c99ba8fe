package models

import "time"

// Report statuses, kept in Spanish for wire compatibility with clients.
const (
	ReportStatusPending    = "pendiente"
	ReportStatusInProgress = "en_proceso"
	ReportStatusResolved   = "resuelto"
)

// Report is an accepted civic-incident submission, persisted together with
// the classifier metadata that justified accepting it.
type Report struct {
	ID          int64
	UserID      int64
	Category    string
	Description string
	Latitude    float64
	Longitude   float64
	PhotoURL    string
	Priority    int // 1 (low) .. 5 (critical)
	Status      string

	// Classifier audit metadata
	AIValidated         bool
	AIConfidence        float64
	AISuggestedCategory string
	AIReasoning         string
	AIObservedDetails   string
	AISeverityScore     int

	CreatedAt time.Time
	UpdatedAt time.Time
}
