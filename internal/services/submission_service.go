package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meridareporta/backend/internal/classifier"
	"github.com/meridareporta/backend/internal/geo"
	"github.com/meridareporta/backend/internal/models"
	pkglogger "github.com/meridareporta/backend/pkg/logger"
)

// SubmissionState tracks how far a submission made it through the pipeline.
type SubmissionState string

const (
	StateReceived        SubmissionState = "received"
	StateLocationChecked SubmissionState = "location_checked"
	StateTextChecked     SubmissionState = "text_checked"
	StateImageChecked    SubmissionState = "image_checked"
	StateAccepted        SubmissionState = "accepted"

	StateRejectedLocation      SubmissionState = "rejected_location"
	StateRejectedOffensiveText SubmissionState = "rejected_offensive_text"
	StateRejectedInvalidImage  SubmissionState = "rejected_invalid_image"
)

// SubmissionInput is a new report submission before validation.
type SubmissionInput struct {
	UserID      int64
	Category    string
	Description string
	Latitude    float64
	Longitude   float64
	PhotoURL    string
}

// Decision is the final outcome of validating a submission. Exactly one of
// Report (accepted) or Rejection (rejected) is set.
type Decision struct {
	Accepted  bool
	State     SubmissionState
	Report    *models.Report
	Priority  int
	Verdict   *classifier.ReportVerdict
	Rejection *models.RejectionDetail
}

// BanActiveError is returned when the submitting user is banned. It carries
// the ban state so handlers can shape the client payload.
type BanActiveError struct {
	Status *models.BanStatus
}

func (e *BanActiveError) Error() string {
	return models.ErrUserBanned.Error()
}

func (e *BanActiveError) Unwrap() error {
	return models.ErrUserBanned
}

// ReportStore defines report persistence for the submission pipeline.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
}

// BanGate checks whether a user may submit content.
type BanGate interface {
	CheckBanStatus(ctx context.Context, userID int64) (*models.BanStatus, error)
}

// StrikeIssuer records content violations.
type StrikeIssuer interface {
	IssueStrike(ctx context.Context, in IssueStrikeInput) (*models.StrikeResult, error)
}

// SubmissionService runs the content validation pipeline for new reports:
// ban gate, location check, text pre-check, combined text+image analysis,
// then persistence. Classifier failures degrade permissively; strike and
// persistence failures do not.
type SubmissionService struct {
	reports ReportStore
	bans    BanGate
	strikes StrikeIssuer
	ai      classifier.Classifier
	geo     geo.Validator
	audit   *pkglogger.AuditLogger
	logger  *slog.Logger
}

func NewSubmissionService(reports ReportStore, bans BanGate, strikes StrikeIssuer, ai classifier.Classifier, geoValidator geo.Validator, audit *pkglogger.AuditLogger, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		reports: reports,
		bans:    bans,
		strikes: strikes,
		ai:      ai,
		geo:     geoValidator,
		audit:   audit,
		logger:  logger,
	}
}

// Submit validates a submission end to end and persists it on acceptance.
// The ban gate always runs before any classifier call. Rejections that do
// not indicate bad faith (location, plain invalid image) carry no strike.
func (s *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (*Decision, error) {
	status, err := s.bans.CheckBanStatus(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if status.IsBanned {
		return nil, &BanActiveError{Status: status}
	}

	if ok, reason := s.geo.Validate(in.Description, in.Latitude, in.Longitude); !ok {
		s.audit.LogSubmissionRejected(in.UserID, string(StateRejectedLocation), reason, false)
		return &Decision{
			State: StateRejectedLocation,
			Rejection: &models.RejectionDetail{
				Error:           "invalid_location",
				Message:         reason,
				RejectionReason: reason,
			},
		}, nil
	}

	textVerdict, err := s.ai.CheckText(ctx, in.Description)
	if err != nil {
		// Classifier outages must not block legitimate reports.
		s.logger.Warn("text check unavailable, proceeding without it",
			slog.Int64("user_id", in.UserID), slog.Any("error", err))
		textVerdict = classifier.DefaultTextVerdict()
	}

	if textVerdict.Flagged() {
		return s.rejectOffensiveText(ctx, in, textVerdict)
	}

	verdict, err := s.ai.AnalyzeReport(ctx, in.Category, in.Description, in.PhotoURL)
	if err != nil {
		s.logger.Warn("report analysis unavailable, proceeding without it",
			slog.Int64("user_id", in.UserID), slog.Any("error", err))
		verdict = classifier.DefaultReportVerdict(in.Category)
	}

	if in.PhotoURL != "" && verdict.ImageRejected() {
		return s.rejectInvalidImage(ctx, in, verdict)
	}

	return s.accept(ctx, in, verdict)
}

// rejectOffensiveText handles a flagged description. The strike is issued
// before responding; the image analysis never runs for flagged text.
func (s *SubmissionService) rejectOffensiveText(ctx context.Context, in SubmissionInput, v *classifier.TextVerdict) (*Decision, error) {
	severity := v.Severity
	if !severity.Valid() {
		severity = models.SeverityHigh
	}

	reason := v.RejectionReason
	if reason == "" {
		reason = "Contenido ofensivo o inapropiado en la descripción"
	}

	result, err := s.strikes.IssueStrike(ctx, IssueStrikeInput{
		UserID:          in.UserID,
		Reason:          reason,
		Severity:        severity,
		ContentType:     models.ContentTypeDescription,
		Detection:       v.OffenseType,
		IsOffensive:     v.IsOffensive,
		IsInappropriate: v.IsInappropriate,
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogSubmissionRejected(in.UserID, string(StateRejectedOffensiveText), reason, true)
	return &Decision{
		State:     StateRejectedOffensiveText,
		Rejection: rejectionDetail("offensive_content", v.Feedback, reason, result),
	}, nil
}

// rejectInvalidImage handles a rejected photo. A strike is issued only when
// the verdict indicates bad faith rather than a merely unusable image.
func (s *SubmissionService) rejectInvalidImage(ctx context.Context, in SubmissionInput, v *classifier.ReportVerdict) (*Decision, error) {
	reason := v.RejectionReason
	if reason == "" {
		reason = "La imagen no corresponde a un reporte válido"
	}

	var result *models.StrikeResult
	if v.RequiresStrike || v.IsJokeOrFake || v.IsOffensive || v.IsInappropriate {
		severity := v.StrikeSeverity
		if !severity.Valid() {
			severity = severityForImageFlags(v)
		}
		var err error
		result, err = s.strikes.IssueStrike(ctx, IssueStrikeInput{
			UserID:          in.UserID,
			Reason:          reason,
			Severity:        severity,
			ContentType:     models.ContentTypePhoto,
			Detection:       v.OffenseType,
			IsOffensive:     v.IsOffensive,
			IsJoke:          v.IsJokeOrFake,
			IsInappropriate: v.IsInappropriate,
		})
		if err != nil {
			return nil, err
		}
	}

	s.audit.LogSubmissionRejected(in.UserID, string(StateRejectedInvalidImage), reason, result != nil)
	return &Decision{
		State:     StateRejectedInvalidImage,
		Rejection: rejectionDetail("invalid_image", v.Feedback, reason, result),
	}, nil
}

// severityForImageFlags maps image rejection flags to a strike severity when
// the classifier did not name one. Offensive content outweighs inappropriate
// content, which outweighs joke submissions.
func severityForImageFlags(v *classifier.ReportVerdict) models.Severity {
	switch {
	case v.IsOffensive:
		return models.SeverityHigh
	case v.IsInappropriate:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func (s *SubmissionService) accept(ctx context.Context, in SubmissionInput, v *classifier.ReportVerdict) (*Decision, error) {
	priority := CalculatePriority(in.Category, in.Description)
	if v.AIValidated && v.Confidence > 0.7 && v.SuggestedPriority >= 1 && v.SuggestedPriority <= 5 {
		priority = v.SuggestedPriority
	}

	report := &models.Report{
		UserID:      in.UserID,
		Category:    in.Category,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		PhotoURL:    in.PhotoURL,
		Priority:    priority,
		Status:      models.ReportStatusPending,

		AIValidated:         v.AIValidated,
		AIConfidence:        v.Confidence,
		AISuggestedCategory: v.SuggestedCategory,
		AIReasoning:         v.Reasoning,
		AIObservedDetails:   v.ObservedDetails,
		AISeverityScore:     v.SeverityScore,
	}

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) || errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to persist report",
			slog.Int64("user_id", in.UserID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: report persistence failed", models.ErrInternalServer)
	}

	s.logger.Info("report accepted",
		slog.Int64("report_id", created.ID),
		slog.Int64("user_id", in.UserID),
		slog.String("category", created.Category),
		slog.Int("priority", created.Priority),
		slog.Bool("ai_validated", created.AIValidated))

	return &Decision{
		Accepted: true,
		State:    StateAccepted,
		Report:   created,
		Priority: created.Priority,
		Verdict:  v,
	}, nil
}

// rejectionDetail builds the wire payload for a content rejection. result is
// nil when no strike was issued.
func rejectionDetail(errCode, message, reason string, result *models.StrikeResult) *models.RejectionDetail {
	detail := &models.RejectionDetail{
		Error:           errCode,
		Message:         message,
		RejectionReason: reason,
	}
	if detail.Message == "" {
		detail.Message = reason
	}
	if result != nil {
		detail.StrikeIssued = true
		detail.StrikeCount = result.StrikeCount
		detail.IsBanned = result.IsBanned
		detail.BanUntil = result.BanUntil
		detail.IsPermanentBan = result.IsPermanent
	}
	return detail
}
