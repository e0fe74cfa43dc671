package services

import (
	"context"
	"log"
	"time"

	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/config"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the background jobs: the remote-database health
// probe that drives the storage fallback, and housekeeping.
type CronService struct {
	cron             *cron.Cron
	health           *config.RemoteHealth
	remoteDB         *gorm.DB
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	health *config.RemoteHealth,
	remoteDB *gorm.DB,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		health:           health,
		remoteDB:         remoteDB,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() {
	// Health probe only matters when a remote database exists
	if s.remoteDB != nil {
		s.cron.AddFunc("@every 30s", func() {
			s.health.Probe(s.remoteDB)
		})
	}

	// Nightly cleanup of expired refresh tokens
	s.cron.AddFunc("0 2 * * *", s.cleanupExpiredTokens)

	s.cron.Start()
	log.Println("✅ Cron jobs started")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		log.Println("⚠️ Cron jobs did not stop in time")
	}
	log.Println("🛑 Cron jobs stopped")
}

func (s *CronService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Expired token cleanup failed: %v", err)
		return
	}
	log.Println("🗑️ Expired refresh tokens cleaned up")
}
