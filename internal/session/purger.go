package session

import (
	"context"
	"time"

	"user-crud/internal/worker"

	"github.com/rs/zerolog/log"
)

const purgeTimeout = 10 * time.Second

// Purger 結束某位使用者的所有 session
type Purger interface {
	PurgeUser(userID int)
}

type asyncPurger struct {
	store *Store
	pool  worker.Pool
}

// NewPurger 回傳在 worker pool 上非同步清除 session 的 Purger
func NewPurger(store *Store, pool worker.Pool) Purger {
	return &asyncPurger{store: store, pool: pool}
}

func (p *asyncPurger) PurgeUser(userID int) {
	p.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		if err := p.store.PurgeUser(ctx, userID); err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("purge sessions failed")
			return
		}
		log.Debug().Int("user_id", userID).Msg("sessions purged")
	})
}
