package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

type InfluencerRepo interface {
	// Upsert inserts or updates on the (username, platform) natural key.
	// trust_score and updated_at are overwritten unconditionally:
	// last write wins, historical scores are not merged.
	Upsert(ctx context.Context, tx *gorm.DB, influencer *domain.Influencer) (*domain.Influencer, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.Influencer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Influencer, error)
}

type influencerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInfluencerRepo(db *gorm.DB, baseLog *logger.Logger) InfluencerRepo {
	repoLog := baseLog.With("repo", "InfluencerRepo")
	return &influencerRepo{db: db, log: repoLog}
}

func (ir *influencerRepo) Upsert(ctx context.Context, tx *gorm.DB, influencer *domain.Influencer) (*domain.Influencer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	influencer.Username = domain.NormalizeUsername(influencer.Username)
	influencer.UpdatedAt = time.Now().UTC()

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{"trust_score", "updated_at"}),
		}).
		Create(influencer).Error; err != nil {
		return nil, err
	}

	// On the conflict-update path the generated ID is not backfilled into the
	// struct; read the row back so callers always get the persisted state.
	var stored domain.Influencer
	if err := transaction.WithContext(ctx).
		Where("username = ? AND platform = ?", influencer.Username, influencer.Platform).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (ir *influencerRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.Influencer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var result domain.Influencer
	err := transaction.WithContext(ctx).
		Where("username = ?", domain.NormalizeUsername(username)).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *influencerRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Influencer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*domain.Influencer
	if err := transaction.WithContext(ctx).
		Order("follower_count DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
