package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/media"
)

// Scheduler runs the periodic media sweep. The sweep also fires once at
// startup so stale files from a previous run do not linger a full hour.
type Scheduler struct {
	cron  *cron.Cron
	store *media.Store
	log   zerolog.Logger
}

func NewScheduler(store *media.Store, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		store: store,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.runSweep); err != nil {
		return err
	}

	go s.runSweep()

	s.cron.Start()
	return nil
}

// Stop waits up to five seconds for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) runSweep() {
	removed := s.store.Sweep()
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("media sweep completed")
	}
}
