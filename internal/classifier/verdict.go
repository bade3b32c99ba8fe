package classifier

import (
	"github.com/meridareporta/backend/internal/models"
)

// Categories the classifier may suggest. Unrecognized values are coerced to
// DefaultCategory.
const (
	CategoryRoadDamage     = "via_mal_estado"
	CategoryInfrastructure = "infraestructura_danada"
	CategorySignage        = "senalizacion_transito"
	CategoryLighting       = "iluminacion_visibilidad"

	DefaultCategory = CategoryRoadDamage
)

// Permissive defaults applied when the classifier is disabled, unreachable,
// or returns an unusable payload. Classifier failure must never reject a
// submission or cost a user a strike.
const (
	DefaultConfidence = 0.5
	DefaultPriority   = 3
	DefaultUrgency    = "medium"
)

var validCategories = map[string]bool{
	CategoryRoadDamage:     true,
	CategoryInfrastructure: true,
	CategorySignage:        true,
	CategoryLighting:       true,
}

// TextVerdict is the outcome of the text-only offensiveness pre-check.
type TextVerdict struct {
	IsOffensive     bool
	IsInappropriate bool
	IsSpam          bool
	IsTest          bool
	IsNonsense      bool
	OffenseType     string
	DetectedWords   []string
	Severity        models.Severity
	RequiresStrike  bool
	RejectionReason string
	Feedback        string
}

// Flagged reports whether the text check found content that blocks the
// submission.
func (v *TextVerdict) Flagged() bool {
	return v.IsOffensive || v.IsInappropriate
}

// ReportVerdict is the outcome of the combined text+image analysis.
type ReportVerdict struct {
	IsValid           bool
	Confidence        float64
	SuggestedCategory string
	SuggestedPriority int
	Reasoning         string
	UrgencyLevel      string

	// Image analysis fields; meaningful only when an image was supplied.
	ImageValid      bool
	MatchesCategory bool
	SeverityScore   int
	ObservedDetails string
	IsJokeOrFake    bool
	IsOffensive     bool
	IsInappropriate bool
	OffenseType     string
	RejectionReason string
	Feedback        string
	RequiresStrike  bool
	StrikeSeverity  models.Severity

	// AIValidated is false when this verdict is a permissive fallback rather
	// than a real classifier response.
	AIValidated bool
}

// ImageRejected reports whether the analysis found the image unusable.
func (v *ReportVerdict) ImageRejected() bool {
	return !v.ImageValid || v.IsJokeOrFake || v.IsOffensive || v.IsInappropriate
}

// DefaultTextVerdict is the permissive fallback for the offensiveness
// pre-check: nothing flagged, submission proceeds.
func DefaultTextVerdict() *TextVerdict {
	return &TextVerdict{OffenseType: "none"}
}

// DefaultReportVerdict is the permissive fallback for the full analysis.
func DefaultReportVerdict(category string) *ReportVerdict {
	return &ReportVerdict{
		IsValid:           true,
		Confidence:        DefaultConfidence,
		SuggestedCategory: normalizeCategory(category),
		SuggestedPriority: DefaultPriority,
		Reasoning:         "Validación básica sin IA",
		UrgencyLevel:      DefaultUrgency,
		ImageValid:        true,
		MatchesCategory:   true,
		SeverityScore:     5,
		AIValidated:       false,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalizeCategory(category string) string {
	if validCategories[category] {
		return category
	}
	return DefaultCategory
}

func normalizeUrgency(urgency string) string {
	switch urgency {
	case "low", "medium", "high", "critical":
		return urgency
	}
	return DefaultUrgency
}

func normalizeSeverity(raw string, fallback models.Severity) models.Severity {
	s := models.Severity(raw)
	if s.Valid() {
		return s
	}
	return fallback
}
