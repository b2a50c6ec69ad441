package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeGateway struct {
	claimAnalysis      domain.ClaimAnalysis
	claimAnalysisErr   error
	influencerAnalysis domain.InfluencerAnalysis
	influencerErr      error
	extracted          []domain.ExtractedClaim
	extractErr         error
	verdict            domain.ClaimVerdict
	verifyErr          error

	analyzeClaimCalls int
	verifyCalls       int
}

func (f *fakeGateway) AnalyzeClaim(ctx context.Context, claimText string) (domain.ClaimAnalysis, error) {
	f.analyzeClaimCalls++
	return f.claimAnalysis, f.claimAnalysisErr
}

func (f *fakeGateway) AnalyzeInfluencer(ctx context.Context, posts []string) (domain.InfluencerAnalysis, error) {
	return f.influencerAnalysis, f.influencerErr
}

func (f *fakeGateway) ExtractHealthClaims(ctx context.Context, content string) ([]domain.ExtractedClaim, error) {
	return f.extracted, f.extractErr
}

func (f *fakeGateway) VerifyHealthClaim(ctx context.Context, claimText string) (domain.ClaimVerdict, error) {
	f.verifyCalls++
	return f.verdict, f.verifyErr
}

type spyInfluencerRepo struct {
	upsertErr  error
	upserted   []*domain.Influencer
	byUsername map[string]*domain.Influencer
	getErr     error
	list       []*domain.Influencer
}

func (s *spyInfluencerRepo) Upsert(ctx context.Context, tx *gorm.DB, influencer *domain.Influencer) (*domain.Influencer, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	stored := *influencer
	stored.Username = domain.NormalizeUsername(stored.Username)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	s.upserted = append(s.upserted, &stored)
	return &stored, nil
}

func (s *spyInfluencerRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.Influencer, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.byUsername[domain.NormalizeUsername(username)], nil
}

func (s *spyInfluencerRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Influencer, error) {
	return s.list, nil
}

type spyClaimRepo struct {
	createErr error
	created   []*domain.HealthClaim
}

func (s *spyClaimRepo) Create(ctx context.Context, tx *gorm.DB, claim *domain.HealthClaim) (*domain.HealthClaim, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if claim.ID == uuid.Nil {
		claim.ID = uuid.New()
	}
	s.created = append(s.created, claim)
	return claim, nil
}

func (s *spyClaimRepo) ListByInfluencerID(ctx context.Context, tx *gorm.DB, influencerID uuid.UUID) ([]*domain.InfluencerClaim, error) {
	return nil, nil
}

type spyVerificationRepo struct {
	createErr error
	created   []*domain.ClaimVerification
}

func (s *spyVerificationRepo) Create(ctx context.Context, tx *gorm.DB, verification *domain.ClaimVerification) (*domain.ClaimVerification, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if verification.ID == uuid.Nil {
		verification.ID = uuid.New()
	}
	s.created = append(s.created, verification)
	return verification, nil
}
