package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/healthlens/healthlens-backend/internal/data/repos"
	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/groq"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

// ClaimAnalysisResult is the outcome of one claim analysis. Warning is set
// when the LLM analysis succeeded but a storage write failed; the analysis is
// the primary deliverable and is never discarded over a storage hiccup.
type ClaimAnalysisResult struct {
	Analysis domain.ClaimAnalysis
	Claim    *domain.HealthClaim
	Warning  string
}

type InfluencerAnalysisResult struct {
	Analysis   domain.InfluencerAnalysis
	Influencer *domain.Influencer
	Warning    string
}

type AnalysisService interface {
	// AnalyzeClaim runs the claim oracle. Without an influencerID nothing is
	// persisted (pure-oracle mode). With one, the claim and its verification
	// are inserted; either write failing downgrades to a warning.
	AnalyzeClaim(ctx context.Context, claimText string, influencerID *uuid.UUID) (ClaimAnalysisResult, error)
	// AnalyzeInfluencer runs the influencer oracle and upserts the
	// influencer's trust score (last write wins).
	AnalyzeInfluencer(ctx context.Context, username, platform string, posts []string) (InfluencerAnalysisResult, error)
}

type analysisService struct {
	log           *logger.Logger
	gateway       groq.Client
	influencers   repos.InfluencerRepo
	claims        repos.ClaimRepo
	verifications repos.VerificationRepo
}

func NewAnalysisService(
	log *logger.Logger,
	gateway groq.Client,
	influencers repos.InfluencerRepo,
	claims repos.ClaimRepo,
	verifications repos.VerificationRepo,
) AnalysisService {
	return &analysisService{
		log:           log.With("service", "AnalysisService"),
		gateway:       gateway,
		influencers:   influencers,
		claims:        claims,
		verifications: verifications,
	}
}

// verifiedThreshold is the truth score at or above which a claim is stored as
// "verified" rather than "unverified".
const verifiedThreshold = 70

func (s *analysisService) AnalyzeClaim(ctx context.Context, claimText string, influencerID *uuid.UUID) (ClaimAnalysisResult, error) {
	analysis, err := s.gateway.AnalyzeClaim(ctx, claimText)
	if err != nil {
		return ClaimAnalysisResult{}, err
	}

	result := ClaimAnalysisResult{Analysis: analysis}
	if influencerID == nil {
		return result, nil
	}

	now := time.Now().UTC()
	claim, err := s.claims.Create(ctx, nil, &domain.HealthClaim{
		InfluencerID:       *influencerID,
		ClaimText:          claimText,
		TrustScore:         analysis.TruthScore,
		ScientificAccuracy: analysis.TruthScore,
		PostedDate:         now,
		CreatedAt:          now,
	})
	if err != nil {
		s.log.Error("Failed to store claim", "error", err, "influencer_id", influencerID.String())
		result.Warning = "failed to store claim in database: " + err.Error()
		return result, nil
	}
	result.Claim = claim

	// The verification insert is deliberately not transactional with the
	// claim insert: if it fails the claim row stays and the caller gets a
	// warning instead of a rollback.
	if _, err := s.verifications.Create(ctx, nil, buildVerification(claim.ID, analysis)); err != nil {
		s.log.Error("Failed to store verification", "error", err, "claim_id", claim.ID.String())
		result.Warning = "failed to store verification: " + err.Error()
		return result, nil
	}

	return result, nil
}

func (s *analysisService) AnalyzeInfluencer(ctx context.Context, username, platform string, posts []string) (InfluencerAnalysisResult, error) {
	analysis, err := s.gateway.AnalyzeInfluencer(ctx, posts)
	if err != nil {
		return InfluencerAnalysisResult{}, err
	}

	result := InfluencerAnalysisResult{Analysis: analysis}

	stored, err := s.influencers.Upsert(ctx, nil, &domain.Influencer{
		Username:   username,
		Platform:   platform,
		TrustScore: analysis.EvidenceBasedScore,
	})
	if err != nil {
		s.log.Error("Failed to upsert influencer", "error", err, "username", username, "platform", platform)
		result.Warning = "failed to update influencer in database: " + err.Error()
		return result, nil
	}
	result.Influencer = stored

	return result, nil
}

func buildVerification(claimID uuid.UUID, analysis domain.ClaimAnalysis) *domain.ClaimVerification {
	status := domain.VerificationUnverified
	if analysis.TruthScore >= verifiedThreshold {
		status = domain.VerificationVerified
	}

	notes, _ := json.Marshal(orEmpty(analysis.VerificationSteps))
	sources, _ := json.Marshal(domain.ScientificSources{
		Required: orEmpty(analysis.RequiredReferences),
		Category: orUnknown(analysis.Category),
		Risks:    orEmpty(analysis.Risks),
	})
	aiResponse, _ := json.Marshal(analysis)

	return &domain.ClaimVerification{
		ClaimID:            claimID,
		VerificationStatus: status,
		ConfidenceScore:    float64(analysis.TruthScore) / 100,
		VerificationNotes:  string(notes),
		ScientificSources:  datatypes.JSON(sources),
		AIResponse:         datatypes.JSON(aiResponse),
	}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func orUnknown(category string) string {
	if category == "" {
		return "Unknown"
	}
	return category
}
