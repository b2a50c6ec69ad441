package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthlens/healthlens-backend/internal/domain"
)

func SeedInfluencer(tb testing.TB, ctx context.Context, tx *gorm.DB, username, platform string) *domain.Influencer {
	tb.Helper()
	inf := &domain.Influencer{
		ID:            uuid.New(),
		Username:      username,
		Platform:      platform,
		FollowerCount: 1000,
		TrustScore:    50,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(inf).Error; err != nil {
		tb.Fatalf("seed influencer: %v", err)
	}
	return inf
}

func SeedClaim(tb testing.TB, ctx context.Context, tx *gorm.DB, influencerID uuid.UUID, claimText string, postedDate time.Time) *domain.HealthClaim {
	tb.Helper()
	claim := &domain.HealthClaim{
		ID:           uuid.New(),
		InfluencerID: influencerID,
		ClaimText:    claimText,
		TrustScore:   60,
		PostedDate:   postedDate,
		CreatedAt:    time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(claim).Error; err != nil {
		tb.Fatalf("seed claim: %v", err)
	}
	return claim
}

func SeedVerification(tb testing.TB, ctx context.Context, tx *gorm.DB, claimID uuid.UUID, status string, confidence float64) *domain.ClaimVerification {
	tb.Helper()
	v := &domain.ClaimVerification{
		ID:                 uuid.New(),
		ClaimID:            claimID,
		VerificationStatus: status,
		ConfidenceScore:    confidence,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed verification: %v", err)
	}
	return v
}
