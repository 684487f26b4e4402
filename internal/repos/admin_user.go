package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type AdminUserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, admin *types.AdminUser) (*types.AdminUser, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.AdminUser, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AdminUser, error)
	UpdatePasswordHash(ctx context.Context, tx *gorm.DB, id uuid.UUID, passwordHash string) error
}

type adminUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminUserRepo(db *gorm.DB, baseLog *logger.Logger) AdminUserRepo {
	return &adminUserRepo{db: db, log: baseLog.With("repo", "AdminUserRepo")}
}

func (r *adminUserRepo) Create(ctx context.Context, tx *gorm.DB, admin *types.AdminUser) (*types.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *adminUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var admin types.AdminUser
	err := transaction.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var admin types.AdminUser
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepo) UpdatePasswordHash(ctx context.Context, tx *gorm.DB, id uuid.UUID, passwordHash string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AdminUser{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
