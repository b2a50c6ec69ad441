package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Verification status values produced by the oracle.
const (
	VerificationVerified   = "verified"
	VerificationUnverified = "unverified"
	VerificationFalse      = "false"
	VerificationMisleading = "misleading"
)

// ClaimVerification is the detailed AI verdict for one claim. Re-analyses
// insert additional rows; rows are never edited after insert.
type ClaimVerification struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClaimID            uuid.UUID      `gorm:"type:uuid;not null;index;column:claim_id" json:"claim_id"`
	VerificationStatus string         `gorm:"not null;column:verification_status" json:"verification_status"`
	ConfidenceScore    float64        `gorm:"not null;default:0;column:confidence_score" json:"confidence_score"`
	VerificationNotes  string         `gorm:"column:verification_notes" json:"verification_notes"`
	ScientificSources  datatypes.JSON `gorm:"column:scientific_sources" json:"scientific_sources"`
	AIResponse         datatypes.JSON `gorm:"column:ai_response" json:"ai_response,omitempty"`
}

func (ClaimVerification) TableName() string {
	return "claim_verifications"
}

// ScientificSources is the structured payload stored in the column of the
// same name.
type ScientificSources struct {
	Required []string `json:"required"`
	Category string   `json:"category"`
	Risks    []string `json:"risks"`
}
