package dayswap

import (
	"context"
	"database/sql"

	"go-shiftswap/internal/shared/txdb"
	"go-shiftswap/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=dayswap_repo.go -destination=mock/dayswap_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *SwapRequest) error
	CreatePairs(ctx context.Context, pairs []SwapPair) error
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]SwapRequest, error)
	FindByID(ctx context.Context, companyID, id string) (*SwapRequest, error)
	// FindByIDForUpdate locks the request row until the surrounding
	// transaction ends. Concurrent decisions on one request queue here.
	FindByIDForUpdate(ctx context.Context, companyID string, id uuid.UUID) (*SwapRequest, error)
	ListPairs(ctx context.Context, requestID uuid.UUID) ([]SwapPair, error)
	ListPairsByRequests(ctx context.Context, requestIDs []uuid.UUID) ([]SwapPair, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, currentLevel *int) error
	SoftDelete(ctx context.Context, companyID string, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, req *SwapRequest) error {
	return r.conn(ctx).Create(req).Error
}

func (r *repository) CreatePairs(ctx context.Context, pairs []SwapPair) error {
	if len(pairs) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&pairs).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]SwapRequest, error) {
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var requests []SwapRequest
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*SwapRequest, error) {
	var req SwapRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID string, id uuid.UUID) (*SwapRequest, error) {
	var req SwapRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListPairs(ctx context.Context, requestID uuid.UUID) ([]SwapPair, error) {
	var pairs []SwapPair
	err := r.conn(ctx).
		Where("swap_request_id = ?", requestID).
		Order("position ASC").
		Find(&pairs).Error
	return pairs, err
}

func (r *repository) ListPairsByRequests(ctx context.Context, requestIDs []uuid.UUID) ([]SwapPair, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var pairs []SwapPair
	err := r.conn(ctx).
		Where("swap_request_id IN ?", requestIDs).
		Order("swap_request_id, position ASC").
		Find(&pairs).Error
	return pairs, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, currentLevel *int) error {
	return r.conn(ctx).
		Model(&SwapRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"current_level": currentLevel,
		}).Error
}

func (r *repository) SoftDelete(ctx context.Context, companyID string, id uuid.UUID) error {
	return r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&SwapRequest{}, "id = ?", id).Error
}
