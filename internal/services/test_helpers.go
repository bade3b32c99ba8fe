package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meridareporta/backend/internal/classifier"
	"github.com/meridareporta/backend/internal/models"
	"github.com/meridareporta/backend/internal/repositories"
)

// MockUserStore implements UserStore for testing
type MockUserStore struct {
	GetByIDFunc        func(ctx context.Context, id int64) (*models.User, error)
	GetForUpdateFunc   func(ctx context.Context, tx pgx.Tx, id int64) (*models.User, error)
	ApplyStrikeFunc    func(ctx context.Context, tx pgx.Tx, user *models.User) error
	LiftExpiredBanFunc func(ctx context.Context, id int64, observedUntil time.Time) (bool, error)
	UnbanFunc          func(ctx context.Context, id int64, reason string) (bool, error)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserStore) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.User, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserStore) ApplyStrike(ctx context.Context, tx pgx.Tx, user *models.User) error {
	if m.ApplyStrikeFunc != nil {
		return m.ApplyStrikeFunc(ctx, tx, user)
	}
	return nil
}

func (m *MockUserStore) LiftExpiredBan(ctx context.Context, id int64, observedUntil time.Time) (bool, error) {
	if m.LiftExpiredBanFunc != nil {
		return m.LiftExpiredBanFunc(ctx, id, observedUntil)
	}
	return false, nil
}

func (m *MockUserStore) Unban(ctx context.Context, id int64, reason string) (bool, error) {
	if m.UnbanFunc != nil {
		return m.UnbanFunc(ctx, id, reason)
	}
	return false, nil
}

// MockStrikeStore implements StrikeStore for testing
type MockStrikeStore struct {
	InsertFunc     func(ctx context.Context, tx pgx.Tx, strike *models.Strike) error
	ListByUserFunc func(ctx context.Context, userID int64) ([]*models.Strike, error)
}

func (m *MockStrikeStore) Insert(ctx context.Context, tx pgx.Tx, strike *models.Strike) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, strike)
	}
	strike.ID = 1
	strike.CreatedAt = time.Now().UTC()
	return nil
}

func (m *MockStrikeStore) ListByUser(ctx context.Context, userID int64) ([]*models.Strike, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.Strike{}, nil
}

// MockTxRunner implements TxRunner for testing. The callback receives a nil
// transaction; mocks ignore it.
type MockTxRunner struct {
	WithTransactionFunc func(ctx context.Context, fn func(pgx.Tx) error) error
}

func (m *MockTxRunner) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(nil)
}

// MockClassifier implements classifier.Classifier for testing
type MockClassifier struct {
	CheckTextFunc     func(ctx context.Context, description string) (*classifier.TextVerdict, error)
	AnalyzeReportFunc func(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error)

	CheckTextCalls     int
	AnalyzeReportCalls int
}

func (m *MockClassifier) CheckText(ctx context.Context, description string) (*classifier.TextVerdict, error) {
	m.CheckTextCalls++
	if m.CheckTextFunc != nil {
		return m.CheckTextFunc(ctx, description)
	}
	return classifier.DefaultTextVerdict(), nil
}

func (m *MockClassifier) AnalyzeReport(ctx context.Context, category, description, imageURL string) (*classifier.ReportVerdict, error) {
	m.AnalyzeReportCalls++
	if m.AnalyzeReportFunc != nil {
		return m.AnalyzeReportFunc(ctx, category, description, imageURL)
	}
	verdict := classifier.DefaultReportVerdict(category)
	verdict.AIValidated = true
	return verdict, nil
}

// MockReportStore implements ReportStore for testing
type MockReportStore struct {
	CreateFunc func(ctx context.Context, report *models.Report) (*models.Report, error)
}

func (m *MockReportStore) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	created := *report
	created.ID = 1
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

// MockBanGate implements BanGate for testing
type MockBanGate struct {
	CheckBanStatusFunc func(ctx context.Context, userID int64) (*models.BanStatus, error)
}

func (m *MockBanGate) CheckBanStatus(ctx context.Context, userID int64) (*models.BanStatus, error) {
	if m.CheckBanStatusFunc != nil {
		return m.CheckBanStatusFunc(ctx, userID)
	}
	return &models.BanStatus{}, nil
}

// MockStrikeIssuer implements StrikeIssuer for testing
type MockStrikeIssuer struct {
	IssueStrikeFunc func(ctx context.Context, in IssueStrikeInput) (*models.StrikeResult, error)

	IssueStrikeCalls int
	LastStrikeInput  IssueStrikeInput
}

func (m *MockStrikeIssuer) IssueStrike(ctx context.Context, in IssueStrikeInput) (*models.StrikeResult, error) {
	m.IssueStrikeCalls++
	m.LastStrikeInput = in
	if m.IssueStrikeFunc != nil {
		return m.IssueStrikeFunc(ctx, in)
	}
	return &models.StrikeResult{StrikeID: 1, StrikeCount: 1}, nil
}

// MockGeoValidator implements geo.Validator for testing
type MockGeoValidator struct {
	ValidateFunc func(description string, latitude, longitude float64) (bool, string)
}

func (m *MockGeoValidator) Validate(description string, latitude, longitude float64) (bool, string) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(description, latitude, longitude)
	}
	return true, ""
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	SendStrikeNoticeFunc func(ctx context.Context, user *models.User, result *models.StrikeResult) error

	SendStrikeNoticeCalls int
}

func (m *MockNotifier) SendStrikeNotice(ctx context.Context, user *models.User, result *models.StrikeResult) error {
	m.SendStrikeNoticeCalls++
	if m.SendStrikeNoticeFunc != nil {
		return m.SendStrikeNoticeFunc(ctx, user, result)
	}
	return nil
}

// NewTestUser creates a user with sensible defaults for testing
func NewTestUser(id int64, strikeCount int) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:          id,
		Name:        "Test User",
		Email:       "user@example.com",
		Role:        "user",
		StrikeCount: strikeCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

var _ ReportStore = (*repositories.ReportRepository)(nil)
