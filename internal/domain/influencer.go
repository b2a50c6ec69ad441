package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Influencer is keyed by the (username, platform) pair; username is stored
// without a leading "@".
type Influencer struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username      string    `gorm:"not null;uniqueIndex:idx_influencers_username_platform;column:username" json:"username"`
	Platform      string    `gorm:"not null;uniqueIndex:idx_influencers_username_platform;column:platform" json:"platform"`
	FollowerCount int64     `gorm:"not null;default:0;column:follower_count" json:"follower_count"`
	TrustScore    int       `gorm:"not null;default:0;column:trust_score" json:"trust_score"`
	UpdatedAt     time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Influencer) TableName() string {
	return "influencers"
}

// NormalizeUsername strips a single leading "@" and surrounding whitespace.
func NormalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}
