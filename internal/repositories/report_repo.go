package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meridareporta/backend/internal/database"
	"github.com/meridareporta/backend/internal/models"
)

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{pool: db.Pool}
}

// ReportFilter narrows report listings. Nil and empty fields mean "no filter".
type ReportFilter struct {
	UserID      *int64 // restrict to one submitter (citizen visibility)
	Status      string
	Category    string
	MinPriority *int
	MaxPriority *int
}

const reportColumns = `id, user_id, category, description, latitude, longitude, photo_url, priority, status,
		ai_validated, ai_confidence, ai_suggested_category, ai_reasoning, ai_observed_details, ai_severity_score,
		created_at, updated_at`

func scanReportRow(scanner rowScanner) (*models.Report, error) {
	var report models.Report
	var photoURL, suggestedCategory, reasoning, observedDetails *string

	err := scanner.Scan(
		&report.ID, &report.UserID, &report.Category, &report.Description,
		&report.Latitude, &report.Longitude, &photoURL, &report.Priority, &report.Status,
		&report.AIValidated, &report.AIConfidence, &suggestedCategory, &reasoning,
		&observedDetails, &report.AISeverityScore,
		&report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if photoURL != nil {
		report.PhotoURL = *photoURL
	}
	if suggestedCategory != nil {
		report.AISuggestedCategory = *suggestedCategory
	}
	if reasoning != nil {
		report.AIReasoning = *reasoning
	}
	if observedDetails != nil {
		report.AIObservedDetails = *observedDetails
	}

	return &report, nil
}

// Create persists an accepted submission with its classifier audit metadata.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	query := fmt.Sprintf(`
		INSERT INTO reports (user_id, category, description, latitude, longitude, photo_url, priority, status,
			ai_validated, ai_confidence, ai_suggested_category, ai_reasoning, ai_observed_details, ai_severity_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s
	`, reportColumns)

	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}

	return scanReportRow(r.pool.QueryRow(ctx, query,
		report.UserID, report.Category, report.Description, report.Latitude, report.Longitude,
		nullableString(report.PhotoURL), report.Priority, report.Status,
		report.AIValidated, report.AIConfidence, nullableString(report.AISuggestedCategory),
		nullableString(report.AIReasoning), nullableString(report.AIObservedDetails), report.AISeverityScore,
	))
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id = $1`, reportColumns)
	return scanReportRow(r.pool.QueryRow(ctx, query, id))
}

// List returns reports matching filter, newest first.
func (r *ReportRepository) List(ctx context.Context, filter ReportFilter) ([]*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE 1=1`, reportColumns)
	args := []interface{}{}
	arg := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", arg)
		args = append(args, *filter.UserID)
		arg++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", arg)
		args = append(args, filter.Status)
		arg++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", arg)
		args = append(args, filter.Category)
		arg++
	}
	if filter.MinPriority != nil {
		query += fmt.Sprintf(" AND priority >= $%d", arg)
		args = append(args, *filter.MinPriority)
		arg++
	}
	if filter.MaxPriority != nil {
		query += fmt.Sprintf(" AND priority <= $%d", arg)
		args = append(args, *filter.MaxPriority)
		arg++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	return scanReportRows(rows)
}

func scanReportRows(rows pgx.Rows) ([]*models.Report, error) {
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReportRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.pool.Exec(ctx, `UPDATE reports SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
