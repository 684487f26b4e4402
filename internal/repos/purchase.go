package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type PurchaseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, purchase *types.Purchase) (*types.Purchase, error)
	GetByGatewayOrderID(ctx context.Context, tx *gorm.DB, orderID string) (*types.Purchase, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Purchase, error)
}

type purchaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
	return &purchaseRepo{db: db, log: baseLog.With("repo", "PurchaseRepo")}
}

func (r *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, purchase *types.Purchase) (*types.Purchase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

func (r *purchaseRepo) GetByGatewayOrderID(ctx context.Context, tx *gorm.DB, orderID string) (*types.Purchase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var purchase types.Purchase
	err := transaction.WithContext(ctx).Where("gateway_order_id = ?", orderID).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Purchase{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Purchase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Purchase
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
