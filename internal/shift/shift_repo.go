package shift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	shifterrors "go-shiftswap/internal/shift/errors"
	"go-shiftswap/internal/shared/txdb"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindOverlapping returns the user's live entries that intersect [from, to],
	// ordered by period_start, created_at, id.
	FindOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Entry, error)
	// UpdateStatus rewrites the status of the whole entry. A nil patternID
	// leaves the current pattern untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, patternID *uuid.UUID) error
	Create(ctx context.Context, e *Entry) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Entry, error) {
	var entries []Entry
	err := txdb.Conn(ctx, r.db, r.tx).
		Where("user_id = ?", userID).
		Where("period_start <= ? AND period_end >= ?", Day(to), Day(from)).
		Order("period_start, created_at, id").
		Find(&entries).Error
	return entries, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, patternID *uuid.UUID) error {
	updates := map[string]any{
		"work_status": status,
		"updated_at":  time.Now().UTC(),
	}
	if patternID != nil {
		updates["work_pattern_id"] = *patternID
	}

	res := txdb.Conn(ctx, r.db, r.tx).
		Model(&Entry{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shifterrors.ErrEntryNotFound
	}
	return nil
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	err := txdb.Conn(ctx, r.db, r.tx).Create(e).Error
	if isUniqueSingleDayViolation(err) {
		return fmt.Errorf("%w: %w", shifterrors.ErrEntryConflict, err)
	}
	return err
}

func isUniqueSingleDayViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_shift_entries_single_day"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_shift_entries_single_day")
}
