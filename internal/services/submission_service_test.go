package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meridareporta/backend/internal/classifier"
	"github.com/meridareporta/backend/internal/models"
	pkglogger "github.com/meridareporta/backend/pkg/logger"
)

func newSubmissionService(reports ReportStore, bans BanGate, strikes StrikeIssuer, ai classifier.Classifier, geoValidator *MockGeoValidator) *SubmissionService {
	logger := slog.Default()
	if reports == nil {
		reports = &MockReportStore{}
	}
	if bans == nil {
		bans = &MockBanGate{}
	}
	if strikes == nil {
		strikes = &MockStrikeIssuer{}
	}
	if ai == nil {
		ai = &MockClassifier{}
	}
	if geoValidator == nil {
		geoValidator = &MockGeoValidator{}
	}
	return NewSubmissionService(reports, bans, strikes, ai, geoValidator, pkglogger.NewAuditLogger(logger), logger)
}

func validInput() SubmissionInput {
	return SubmissionInput{
		UserID:      1,
		Category:    "bache",
		Description: "Bache profundo en la calle 60 por Santa Ana",
		Latitude:    20.97,
		Longitude:   -89.62,
		PhotoURL:    "https://storage.example.com/fotos/bache.jpg",
	}
}

func TestSubmissionService_Submit_Accepted(t *testing.T) {
	svc := newSubmissionService(nil, nil, nil, nil, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.Equal(t, StateAccepted, decision.State)
	assert.NotNil(t, decision.Report)
	assert.Nil(t, decision.Rejection)
	assert.Equal(t, models.ReportStatusPending, decision.Report.Status)
}

func TestSubmissionService_Submit_BannedUserBlockedBeforeClassifier(t *testing.T) {
	until := time.Now().UTC().Add(time.Hour)
	bans := &MockBanGate{
		CheckBanStatusFunc: func(ctx context.Context, userID int64) (*models.BanStatus, error) {
			return &models.BanStatus{
				IsBanned:  true,
				BanUntil:  &until,
				BanReason: "Strike 3 - Ban temporal de 10 minuto(s)",
			}, nil
		},
	}
	ai := &MockClassifier{}
	svc := newSubmissionService(nil, bans, nil, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.Nil(t, decision)
	var banErr *BanActiveError
	assert.ErrorAs(t, err, &banErr)
	assert.ErrorIs(t, err, models.ErrUserBanned)
	assert.Equal(t, 0, ai.CheckTextCalls, "classifier must not run for banned users")
	assert.Equal(t, 0, ai.AnalyzeReportCalls)
}

func TestSubmissionService_Submit_LocationRejected_NoStrike(t *testing.T) {
	geoValidator := &MockGeoValidator{
		ValidateFunc: func(description string, latitude, longitude float64) (bool, string) {
			return false, "La ubicación está fuera de Mérida"
		},
	}
	strikes := &MockStrikeIssuer{}
	ai := &MockClassifier{}
	svc := newSubmissionService(nil, nil, strikes, ai, geoValidator)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, StateRejectedLocation, decision.State)
	assert.Equal(t, "invalid_location", decision.Rejection.Error)
	assert.False(t, decision.Rejection.StrikeIssued)
	assert.Equal(t, 0, strikes.IssueStrikeCalls, "location rejections carry no strike")
	assert.Equal(t, 0, ai.CheckTextCalls, "location check precedes the classifier")
}

func TestSubmissionService_Submit_OffensiveText_StrikeAndNoImageCheck(t *testing.T) {
	ai := &MockClassifier{
		CheckTextFunc: func(ctx context.Context, description string) (*classifier.TextVerdict, error) {
			return &classifier.TextVerdict{
				IsOffensive:     true,
				OffenseType:     "insulto",
				Severity:        models.SeverityHigh,
				RejectionReason: "Lenguaje ofensivo detectado",
				Feedback:        "Tu reporte contiene lenguaje ofensivo",
			}, nil
		},
	}
	strikes := &MockStrikeIssuer{
		IssueStrikeFunc: func(ctx context.Context, in IssueStrikeInput) (*models.StrikeResult, error) {
			return &models.StrikeResult{StrikeID: 10, StrikeCount: 2}, nil
		},
	}
	svc := newSubmissionService(nil, nil, strikes, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, StateRejectedOffensiveText, decision.State)
	assert.Equal(t, 1, strikes.IssueStrikeCalls)
	assert.Equal(t, models.ContentTypeDescription, strikes.LastStrikeInput.ContentType)
	assert.Equal(t, models.SeverityHigh, strikes.LastStrikeInput.Severity)
	assert.Equal(t, 0, ai.AnalyzeReportCalls, "image analysis must not run after a text flag")
	assert.True(t, decision.Rejection.StrikeIssued)
	assert.Equal(t, 2, decision.Rejection.StrikeCount)
}

func TestSubmissionService_Submit_TextCheckErrorDegradesPermissively(t *testing.T) {
	ai := &MockClassifier{
		CheckTextFunc: func(ctx context.Context, description string) (*classifier.TextVerdict, error) {
			return nil, errors.New("connection refused")
		},
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			return nil, errors.New("connection refused")
		},
	}
	strikes := &MockStrikeIssuer{}
	var persisted *models.Report
	reports := &MockReportStore{
		CreateFunc: func(ctx context.Context, report *models.Report) (*models.Report, error) {
			persisted = report
			created := *report
			created.ID = 7
			return &created, nil
		},
	}
	svc := newSubmissionService(reports, nil, strikes, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.True(t, decision.Accepted, "classifier outages must not block reports")
	assert.Equal(t, 0, strikes.IssueStrikeCalls)
	if assert.NotNil(t, persisted) {
		assert.False(t, persisted.AIValidated)
		assert.Equal(t, classifier.DefaultConfidence, persisted.AIConfidence)
	}
}

func TestSubmissionService_Submit_FallbackUsesKeywordPriority(t *testing.T) {
	ai := &MockClassifier{
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := newSubmissionService(nil, nil, nil, ai, nil)

	in := validInput()
	in.Description = "Bache con riesgo de accidente frente a la escuela"

	decision, err := svc.Submit(context.Background(), in)

	assert.NoError(t, err)
	assert.True(t, decision.Accepted)
	// bache base 3, +1 for the critical keyword
	assert.Equal(t, 4, decision.Priority)
}

func TestSubmissionService_Submit_ConfidentVerdictOverridesPriority(t *testing.T) {
	ai := &MockClassifier{
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			verdict := classifier.DefaultReportVerdict(category)
			verdict.AIValidated = true
			verdict.Confidence = 0.95
			verdict.SuggestedPriority = 5
			return verdict, nil
		},
	}
	svc := newSubmissionService(nil, nil, nil, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, 5, decision.Priority)
}

func TestSubmissionService_Submit_LowConfidenceVerdictIgnored(t *testing.T) {
	ai := &MockClassifier{
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			verdict := classifier.DefaultReportVerdict(category)
			verdict.AIValidated = true
			verdict.Confidence = 0.5
			verdict.SuggestedPriority = 5
			return verdict, nil
		},
	}
	svc := newSubmissionService(nil, nil, nil, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	// bache base priority, no critical keywords
	assert.Equal(t, 3, decision.Priority)
}

func TestSubmissionService_Submit_JokeImage_LowSeverityStrike(t *testing.T) {
	ai := &MockClassifier{
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			verdict := classifier.DefaultReportVerdict(category)
			verdict.AIValidated = true
			verdict.IsJokeOrFake = true
			verdict.RejectionReason = "La imagen es una broma"
			return verdict, nil
		},
	}
	strikes := &MockStrikeIssuer{}
	svc := newSubmissionService(nil, nil, strikes, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, StateRejectedInvalidImage, decision.State)
	assert.Equal(t, 1, strikes.IssueStrikeCalls)
	assert.Equal(t, models.SeverityLow, strikes.LastStrikeInput.Severity)
	assert.Equal(t, models.ContentTypePhoto, strikes.LastStrikeInput.ContentType)
	assert.True(t, strikes.LastStrikeInput.IsJoke)
}

func TestSubmissionService_Submit_OffensiveImage_HighSeverityStrike(t *testing.T) {
	ai := &MockClassifier{
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			verdict := classifier.DefaultReportVerdict(category)
			verdict.AIValidated = true
			verdict.IsOffensive = true
			verdict.RejectionReason = "Imagen ofensiva"
			return verdict, nil
		},
	}
	strikes := &MockStrikeIssuer{}
	svc := newSubmissionService(nil, nil, strikes, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, StateRejectedInvalidImage, decision.State)
	assert.Equal(t, models.SeverityHigh, strikes.LastStrikeInput.Severity)
}

func TestSubmissionService_Submit_InvalidImageWithoutBadFaith_NoStrike(t *testing.T) {
	ai := &MockClassifier{
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			verdict := classifier.DefaultReportVerdict(category)
			verdict.AIValidated = true
			verdict.ImageValid = false
			verdict.RejectionReason = "La imagen está demasiado borrosa"
			return verdict, nil
		},
	}
	strikes := &MockStrikeIssuer{}
	svc := newSubmissionService(nil, nil, strikes, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, StateRejectedInvalidImage, decision.State)
	assert.Equal(t, 0, strikes.IssueStrikeCalls, "an unusable image alone is not bad faith")
	assert.False(t, decision.Rejection.StrikeIssued)
}

func TestSubmissionService_Submit_NoPhoto_ImageVerdictIgnored(t *testing.T) {
	ai := &MockClassifier{
		AnalyzeReportFunc: func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
			verdict := classifier.DefaultReportVerdict(category)
			verdict.AIValidated = true
			verdict.ImageValid = false
			return verdict, nil
		},
	}
	svc := newSubmissionService(nil, nil, nil, ai, nil)

	in := validInput()
	in.PhotoURL = ""

	decision, err := svc.Submit(context.Background(), in)

	assert.NoError(t, err)
	assert.True(t, decision.Accepted, "image verdict is irrelevant without a photo")
}

func TestSubmissionService_Submit_PersistenceFailure(t *testing.T) {
	reports := &MockReportStore{
		CreateFunc: func(ctx context.Context, report *models.Report) (*models.Report, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newSubmissionService(reports, nil, nil, nil, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.Nil(t, decision)
	assert.ErrorIs(t, err, models.ErrInternalServer)
}

func TestSubmissionService_Submit_StrikeFailurePropagates(t *testing.T) {
	ai := &MockClassifier{
		CheckTextFunc: func(ctx context.Context, description string) (*classifier.TextVerdict, error) {
			return &classifier.TextVerdict{
				IsOffensive: true,
				Severity:    models.SeverityHigh,
			}, nil
		},
	}
	strikes := &MockStrikeIssuer{
		IssueStrikeFunc: func(ctx context.Context, in IssueStrikeInput) (*models.StrikeResult, error) {
			return nil, models.ErrInternalServer
		},
	}
	svc := newSubmissionService(nil, nil, strikes, ai, nil)

	decision, err := svc.Submit(context.Background(), validInput())

	assert.Nil(t, decision)
	assert.ErrorIs(t, err, models.ErrInternalServer)
}
