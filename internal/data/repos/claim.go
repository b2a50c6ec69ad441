package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

type ClaimRepo interface {
	Create(ctx context.Context, tx *gorm.DB, claim *domain.HealthClaim) (*domain.HealthClaim, error)
	// ListByInfluencerID left-joins verifications, newest posted_date first.
	ListByInfluencerID(ctx context.Context, tx *gorm.DB, influencerID uuid.UUID) ([]*domain.InfluencerClaim, error)
}

type claimRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClaimRepo(db *gorm.DB, baseLog *logger.Logger) ClaimRepo {
	repoLog := baseLog.With("repo", "ClaimRepo")
	return &claimRepo{db: db, log: repoLog}
}

func (cr *claimRepo) Create(ctx context.Context, tx *gorm.DB, claim *domain.HealthClaim) (*domain.HealthClaim, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(claim).Error; err != nil {
		return nil, err
	}
	return claim, nil
}

func (cr *claimRepo) ListByInfluencerID(ctx context.Context, tx *gorm.DB, influencerID uuid.UUID) ([]*domain.InfluencerClaim, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*domain.InfluencerClaim
	if err := transaction.WithContext(ctx).
		Table("health_claims").
		Select("health_claims.*, claim_verifications.verification_status, claim_verifications.confidence_score").
		Joins("LEFT JOIN claim_verifications ON claim_verifications.claim_id = health_claims.id").
		Where("health_claims.influencer_id = ?", influencerID).
		Order("health_claims.posted_date DESC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
