package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

type VerificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, verification *domain.ClaimVerification) (*domain.ClaimVerification, error)
}

type verificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVerificationRepo(db *gorm.DB, baseLog *logger.Logger) VerificationRepo {
	repoLog := baseLog.With("repo", "VerificationRepo")
	return &verificationRepo{db: db, log: repoLog}
}

func (vr *verificationRepo) Create(ctx context.Context, tx *gorm.DB, verification *domain.ClaimVerification) (*domain.ClaimVerification, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	if err := transaction.WithContext(ctx).Create(verification).Error; err != nil {
		return nil, err
	}
	return verification, nil
}
