package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/healthlens/healthlens-backend/internal/data/repos"
	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/apierr"
	"github.com/healthlens/healthlens-backend/internal/platform/groq"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

type ClaimDiscoveryService interface {
	// ExtractHealthClaims pulls discrete health claims out of a block of
	// influencer content without touching storage.
	ExtractHealthClaims(ctx context.Context, content string) ([]domain.ExtractedClaim, error)
	// ProcessInfluencerContent extracts claims from content, verifies each
	// one, and stores claim+verification pairs under the named influencer.
	// Processing is sequential and aborts on the first failure.
	ProcessInfluencerContent(ctx context.Context, username, content string) ([]domain.ExtractedClaim, error)
}

type claimDiscoveryService struct {
	log           *logger.Logger
	oracle        groq.Client
	influencers   repos.InfluencerRepo
	claims        repos.ClaimRepo
	verifications repos.VerificationRepo
}

func NewClaimDiscoveryService(
	log *logger.Logger,
	oracle groq.Client,
	influencers repos.InfluencerRepo,
	claims repos.ClaimRepo,
	verifications repos.VerificationRepo,
) ClaimDiscoveryService {
	return &claimDiscoveryService{
		log:           log.With("service", "ClaimDiscoveryService"),
		oracle:        oracle,
		influencers:   influencers,
		claims:        claims,
		verifications: verifications,
	}
}

func (s *claimDiscoveryService) ExtractHealthClaims(ctx context.Context, content string) ([]domain.ExtractedClaim, error) {
	claims, err := s.oracle.ExtractHealthClaims(ctx, content)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []domain.ExtractedClaim{}
	}
	return claims, nil
}

func (s *claimDiscoveryService) ProcessInfluencerContent(ctx context.Context, username, content string) ([]domain.ExtractedClaim, error) {
	extracted, err := s.ExtractHealthClaims(ctx, content)
	if err != nil {
		return nil, err
	}

	influencer, err := s.influencers.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, apierr.Storage("influencer_lookup_failed", fmt.Errorf("look up influencer %q: %w", username, err))
	}
	if influencer == nil {
		return nil, apierr.NotFound("influencer_not_found", fmt.Errorf("influencer %q not found", username))
	}

	for _, c := range extracted {
		now := time.Now().UTC()
		claim, err := s.claims.Create(ctx, nil, &domain.HealthClaim{
			InfluencerID: influencer.ID,
			ClaimText:    c.Text,
			SourceURL:    c.URL,
			PostedDate:   now,
			CreatedAt:    now,
		})
		if err != nil {
			return nil, apierr.Storage("claim_insert_failed", fmt.Errorf("store claim: %w", err))
		}

		verdict, err := s.oracle.VerifyHealthClaim(ctx, c.Text)
		if err != nil {
			return nil, err
		}

		aiResponse, _ := json.Marshal(verdict)
		if _, err := s.verifications.Create(ctx, nil, &domain.ClaimVerification{
			ClaimID:            claim.ID,
			VerificationStatus: verdict.Status,
			ConfidenceScore:    verdict.ConfidenceScore,
			VerificationNotes:  verdict.Explanation,
			AIResponse:         datatypes.JSON(aiResponse),
		}); err != nil {
			return nil, apierr.Storage("verification_insert_failed", fmt.Errorf("store verification: %w", err))
		}

		s.log.Info("Stored verified claim", "username", username, "claim_id", claim.ID.String(), "status", verdict.Status)
	}

	return extracted, nil
}
