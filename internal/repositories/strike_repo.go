package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meridareporta/backend/internal/database"
	"github.com/meridareporta/backend/internal/models"
)

// StrikeRepository handles database operations for strikes. Strikes are
// write-once: there is no update or delete path.
type StrikeRepository struct {
	pool *pgxpool.Pool
}

func NewStrikeRepository(db *database.DB) *StrikeRepository {
	return &StrikeRepository{pool: db.Pool}
}

// Insert records a strike inside tx. Moderation flags are stored as
// smallint 0/1 for compatibility with the existing data; the core only sees
// booleans.
func (r *StrikeRepository) Insert(ctx context.Context, tx pgx.Tx, strike *models.Strike) error {
	query := `
		INSERT INTO strikes (user_id, reason, severity, content_type, ai_detection, is_offensive, is_joke, is_inappropriate, report_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		strike.UserID,
		strike.Reason,
		string(strike.Severity),
		string(strike.ContentType),
		nullableString(strike.AIDetection),
		boolToFlag(strike.IsOffensive),
		boolToFlag(strike.IsJoke),
		boolToFlag(strike.IsInappropriate),
		strike.ReportID,
	).Scan(&strike.ID, &strike.CreatedAt)
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

// ListByUser returns all strikes for a user, newest first.
func (r *StrikeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Strike, error) {
	query := `
		SELECT id, user_id, reason, severity, content_type, ai_detection, is_offensive, is_joke, is_inappropriate, report_id, created_at
		FROM strikes WHERE user_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query strikes: %w", err)
	}
	defer rows.Close()

	strikes := make([]*models.Strike, 0)
	for rows.Next() {
		strike, err := scanStrikeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan strike: %w", err)
		}
		strikes = append(strikes, strike)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return strikes, nil
}

func scanStrikeRow(scanner rowScanner) (*models.Strike, error) {
	var strike models.Strike
	var severity, contentType string
	var aiDetection *string
	var offensive, joke, inappropriate int16

	err := scanner.Scan(
		&strike.ID, &strike.UserID, &strike.Reason, &severity, &contentType,
		&aiDetection, &offensive, &joke, &inappropriate, &strike.ReportID, &strike.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	strike.Severity = models.Severity(severity)
	strike.ContentType = models.ContentType(contentType)
	if aiDetection != nil {
		strike.AIDetection = *aiDetection
	}
	strike.IsOffensive = offensive != 0
	strike.IsJoke = joke != 0
	strike.IsInappropriate = inappropriate != 0

	return &strike, nil
}

func boolToFlag(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
