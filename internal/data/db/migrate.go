package db

import (
	"github.com/healthlens/healthlens-backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&domain.Influencer{},
		&domain.HealthClaim{},
		&domain.ClaimVerification{},
	)
}
