package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meridareporta/backend/internal/database"
	"github.com/meridareporta/backend/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

const userColumns = `id, name, email, role, strike_count, is_banned, ban_until, ban_reason, last_strike_at, created_at, updated_at`

// rowScanner interface for scanning user rows (single row or rows iteration)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanUserRow handles nullable fields and populates a User model from a database row
func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var banReason *string
	var banUntil, lastStrikeAt *time.Time

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role,
		&user.StrikeCount, &user.IsBanned, &banUntil, &banReason,
		&lastStrikeAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if banReason != nil {
		user.BanReason = *banReason
	}
	user.BanUntil = banUntil
	user.LastStrikeAt = lastStrikeAt

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

// GetForUpdate loads a user inside tx holding a row lock. Strike issuance
// uses this to serialize concurrent escalations per user, so two
// simultaneous violations land on consecutive tiers instead of the same one.
func (r *UserRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 FOR UPDATE`, userColumns)
	return scanUserRow(tx.QueryRow(ctx, query, id))
}

// ApplyStrike persists the counter increment and ban fields computed for a
// strike. It must run in the same transaction as the strike insert.
func (r *UserRepository) ApplyStrike(ctx context.Context, tx pgx.Tx, user *models.User) error {
	query := `
		UPDATE users
		SET strike_count = $1, is_banned = $2, ban_until = $3, ban_reason = $4, last_strike_at = $5, updated_at = now()
		WHERE id = $6
	`

	tag, err := tx.Exec(ctx, query,
		user.StrikeCount, user.IsBanned, user.BanUntil, nullableString(user.BanReason), user.LastStrikeAt, user.ID,
	)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// LiftExpiredBan clears an expired temporary ban with a compare-and-swap on
// the observed ban_until, so a read racing with a fresh ban (or another
// reader) never clears state it did not observe. Returns true when this call
// performed the lift.
func (r *UserRepository) LiftExpiredBan(ctx context.Context, id int64, observedUntil time.Time) (bool, error) {
	query := `
		UPDATE users
		SET is_banned = false, ban_until = NULL, ban_reason = NULL, updated_at = now()
		WHERE id = $1 AND is_banned = true AND ban_until = $2 AND ban_until <= now()
	`

	tag, err := r.pool.Exec(ctx, query, id, observedUntil)
	if err != nil {
		return false, database.MapPostgresError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// Unban clears a ban by admin action, independent of the escalation policy.
// Returns false when the user was not banned.
func (r *UserRepository) Unban(ctx context.Context, id int64, reason string) (bool, error) {
	query := `
		UPDATE users
		SET is_banned = false, ban_until = NULL, ban_reason = $1, updated_at = now()
		WHERE id = $2 AND is_banned = true
	`

	tag, err := r.pool.Exec(ctx, query, reason, id)
	if err != nil {
		return false, database.MapPostgresError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
