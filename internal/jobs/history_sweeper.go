package jobs

import (
	"context"
	"log"
	"time"

	"github.com/crestline-labs/supportdesk/internal/chat"
)

// HistorySweeper drops in-memory conversations that have been idle longer
// than the configured TTL. Without it, histories for one-off visitors live
// until process restart.
type HistorySweeper struct {
	history *chat.History
	ttl     time.Duration
	now     func() time.Time
}

func NewHistorySweeper(history *chat.History, ttl time.Duration) *HistorySweeper {
	return &HistorySweeper{
		history: history,
		ttl:     ttl,
		now:     time.Now,
	}
}

// ProcessJobs implements the JobProcessor interface
func (s *HistorySweeper) ProcessJobs(ctx context.Context) error {
	expired := s.history.ExpireIdle(s.now().Add(-s.ttl))
	if expired > 0 {
		log.Printf("History sweeper expired %d idle conversations", expired)
	}
	return nil
}
