package workers

import (
	"context"
	"time"

	"agrihub_backend/internal/logger"
	"agrihub_backend/internal/repositories"
)

// TokenJanitor periodically removes expired refresh tokens. Access
// tokens are stateless and need no cleanup; refresh tokens are
// persisted and would otherwise accumulate.
type TokenJanitor struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
}

func NewTokenJanitor(refreshTokenRepo repositories.RefreshTokenRepository, interval time.Duration) *TokenJanitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenJanitor{
		refreshTokenRepo: refreshTokenRepo,
		interval:         interval,
	}
}

func (w *TokenJanitor) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TokenJanitor) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token janitor stopped")
			return
		case <-ticker.C:
			deleted, err := w.refreshTokenRepo.DeleteExpired()
			if err != nil {
				logger.WorkerLog("token_janitor", "delete_expired", err)
				continue
			}
			if deleted > 0 {
				logger.Info("expired refresh tokens removed", "worker", "token_janitor", "count", deleted)
			}
		}
	}
}
