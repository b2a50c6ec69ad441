package domain

import (
	"time"

	"github.com/google/uuid"
)

// HealthClaim is a single factual assertion attributed to an influencer.
// TrustScore and ScientificAccuracy are both taken from the same analysis run.
type HealthClaim struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	InfluencerID       uuid.UUID `gorm:"type:uuid;not null;index;column:influencer_id" json:"influencer_id"`
	ClaimText          string    `gorm:"not null;column:claim_text" json:"claim_text"`
	SourceURL          string    `gorm:"column:source_url" json:"source_url,omitempty"`
	TrustScore         int       `gorm:"not null;default:0;column:trust_score" json:"trust_score"`
	ScientificAccuracy int       `gorm:"not null;default:0;column:scientific_accuracy" json:"scientific_accuracy"`
	PostedDate         time.Time `gorm:"not null;default:now();column:posted_date" json:"posted_date"`
	CreatedAt          time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
}

func (HealthClaim) TableName() string {
	return "health_claims"
}

// InfluencerClaim is the read model for the claims listing: a health claim
// left-joined against its latest verification row.
type InfluencerClaim struct {
	HealthClaim
	VerificationStatus *string  `json:"verification_status"`
	ConfidenceScore    *float64 `json:"confidence_score"`
}
