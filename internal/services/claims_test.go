package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/apierr"
)

func TestExtractHealthClaimsReturnsEmptySliceNotNil(t *testing.T) {
	gateway := &fakeGateway{extracted: nil}
	svc := NewClaimDiscoveryService(testLogger(t), gateway, &spyInfluencerRepo{}, &spyClaimRepo{}, &spyVerificationRepo{})

	claims, err := svc.ExtractHealthClaims(context.Background(), "just a recipe, no claims")
	if err != nil {
		t.Fatalf("ExtractHealthClaims: %v", err)
	}
	if claims == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(claims) != 0 {
		t.Fatalf("expected no claims, got %d", len(claims))
	}
}

func TestProcessInfluencerContentStoresEachClaim(t *testing.T) {
	guru := &domain.Influencer{ID: uuid.New(), Username: "guru", Platform: "instagram"}
	gateway := &fakeGateway{
		extracted: []domain.ExtractedClaim{
			{Text: "raw garlic prevents flu", URL: "https://example.com/p/1"},
			{Text: "sunlight replaces vitamin D pills"},
		},
		verdict: domain.ClaimVerdict{
			Status:          domain.VerificationMisleading,
			ConfidenceScore: 0.55,
			Explanation:     "partially supported",
		},
	}
	influencers := &spyInfluencerRepo{byUsername: map[string]*domain.Influencer{"guru": guru}}
	claims := &spyClaimRepo{}
	verifications := &spyVerificationRepo{}

	svc := NewClaimDiscoveryService(testLogger(t), gateway, influencers, claims, verifications)

	extracted, err := svc.ProcessInfluencerContent(context.Background(), "@guru", "long transcript")
	if err != nil {
		t.Fatalf("ProcessInfluencerContent: %v", err)
	}
	if len(extracted) != 2 {
		t.Fatalf("expected 2 extracted claims, got %d", len(extracted))
	}
	if len(claims.created) != 2 || len(verifications.created) != 2 {
		t.Fatalf("expected 2 claim+verification pairs, got %d/%d", len(claims.created), len(verifications.created))
	}
	if gateway.verifyCalls != 2 {
		t.Fatalf("expected each claim verified, got %d calls", gateway.verifyCalls)
	}

	first := claims.created[0]
	if first.InfluencerID != guru.ID || first.ClaimText != "raw garlic prevents flu" || first.SourceURL != "https://example.com/p/1" {
		t.Fatalf("unexpected stored claim: %+v", first)
	}
	v := verifications.created[0]
	if v.ClaimID != first.ID || v.VerificationStatus != domain.VerificationMisleading || v.ConfidenceScore != 0.55 {
		t.Fatalf("unexpected stored verification: %+v", v)
	}
	if v.VerificationNotes != "partially supported" {
		t.Fatalf("explanation not stored as notes: %q", v.VerificationNotes)
	}
}

func TestProcessInfluencerContentUnknownInfluencer(t *testing.T) {
	gateway := &fakeGateway{extracted: []domain.ExtractedClaim{{Text: "claim"}}}
	influencers := &spyInfluencerRepo{byUsername: map[string]*domain.Influencer{}}
	claims := &spyClaimRepo{}

	svc := NewClaimDiscoveryService(testLogger(t), gateway, influencers, claims, &spyVerificationRepo{})

	_, err := svc.ProcessInfluencerContent(context.Background(), "nobody", "content")
	if !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if len(claims.created) != 0 {
		t.Fatalf("nothing must be stored for an unknown influencer")
	}
}

func TestProcessInfluencerContentAbortsOnVerifyFailure(t *testing.T) {
	guru := &domain.Influencer{ID: uuid.New(), Username: "guru"}
	verifyErr := errors.New("provider timeout")
	gateway := &fakeGateway{
		extracted: []domain.ExtractedClaim{{Text: "first"}, {Text: "second"}},
		verifyErr: verifyErr,
	}
	influencers := &spyInfluencerRepo{byUsername: map[string]*domain.Influencer{"guru": guru}}
	claims := &spyClaimRepo{}
	verifications := &spyVerificationRepo{}

	svc := NewClaimDiscoveryService(testLogger(t), gateway, influencers, claims, verifications)

	_, err := svc.ProcessInfluencerContent(context.Background(), "guru", "content")
	if !errors.Is(err, verifyErr) {
		t.Fatalf("expected verify error, got %v", err)
	}
	// Aborts before the second claim; the first claim row stays.
	if len(claims.created) != 1 {
		t.Fatalf("expected processing to stop after the first claim, got %d inserts", len(claims.created))
	}
	if len(verifications.created) != 0 {
		t.Fatalf("no verification should be stored when the verdict call failed")
	}
}

func TestProcessInfluencerContentStorageErrorIsStorageKind(t *testing.T) {
	guru := &domain.Influencer{ID: uuid.New(), Username: "guru"}
	gateway := &fakeGateway{
		extracted: []domain.ExtractedClaim{{Text: "claim"}},
		verdict:   domain.ClaimVerdict{Status: domain.VerificationVerified, ConfidenceScore: 0.9},
	}
	influencers := &spyInfluencerRepo{byUsername: map[string]*domain.Influencer{"guru": guru}}
	claims := &spyClaimRepo{createErr: errors.New("relation does not exist")}

	svc := NewClaimDiscoveryService(testLogger(t), gateway, influencers, claims, &spyVerificationRepo{})

	_, err := svc.ProcessInfluencerContent(context.Background(), "guru", "content")
	if !apierr.IsKind(err, apierr.KindStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
