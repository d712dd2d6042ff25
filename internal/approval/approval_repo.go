package approval

import (
	"context"
	"database/sql"
	"time"

	"go-shiftswap/internal/shared/txdb"
	"go-shiftswap/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id string) (*Record, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Record, error)
	// DecideIfPending writes the decision only while the record is still
	// PENDING and reports whether this call was the one that wrote it.
	DecideIfPending(ctx context.Context, id uuid.UUID, decision string, note *string, decidedAt time.Time) (bool, error)
	CreateBatch(ctx context.Context, records []Record) error
	SoftDeleteByRequest(ctx context.Context, requestID uuid.UUID) error
	ListPendingForActor(ctx context.Context, companyID string, actor Actor) ([]Record, error)
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txdb.Conn(ctx, r.db, r.tx)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := r.conn(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Record, error) {
	var records []Record
	err := r.conn(ctx).
		Where("swap_request_id = ?", requestID).
		Order("level ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) DecideIfPending(ctx context.Context, id uuid.UUID, decision string, note *string, decidedAt time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Record{}).
		Where("id = ? AND decision = ?", id, DecisionPending).
		Updates(map[string]any{
			"decision":   decision,
			"note":       note,
			"decided_at": decidedAt,
			"updated_at": decidedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) CreateBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
	}
	return r.conn(ctx).Create(&records).Error
}

func (r *repository) SoftDeleteByRequest(ctx context.Context, requestID uuid.UUID) error {
	return r.conn(ctx).
		Where("swap_request_id = ?", requestID).
		Delete(&Record{}).Error
}

func (r *repository) ListPendingForActor(ctx context.Context, companyID string, actor Actor) ([]Record, error) {
	var records []Record
	err := r.conn(ctx).
		Joins("JOIN swap_requests ON swap_requests.id = approval_records.swap_request_id AND swap_requests.deleted_at IS NULL").
		Scopes(tenant.ScopeTable("swap_requests", companyID)).
		Where("swap_requests.status = ?", DecisionPending).
		Where("approval_records.decision = ?", DecisionPending).
		Where("(approval_records.approver_user_id = ? OR UPPER(REPLACE(REPLACE(TRIM(approval_records.approver_role), '-', '_'), ' ', '_')) = ?)",
			actor.UserID, NormalizeRole(actor.Role)).
		Order("approval_records.created_at ASC, approval_records.level ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := records[:0]
	for _, rec := range records {
		if CanDecide(rec, actor) {
			out = append(out, rec)
		}
	}
	return out, nil
}
