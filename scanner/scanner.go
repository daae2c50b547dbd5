package scanner

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs scanner ticks on cron cadences. Overlapping ticks are not
// prevented; every tick's selection + publish is idempotent so an overlap
// only costs duplicate events.
type Scheduler struct {
	c   *cron.Cron
	log zerolog.Logger
}

func NewScheduler(log zerolog.Logger) *Scheduler {
	return &Scheduler{c: cron.New(), log: log}
}

// Add registers a tick on the given cron expression. The tick is wrapped so a
// panic is logged instead of taking down the process.
func (s *Scheduler) Add(spec, name string, tick func()) error {
	_, err := s.c.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Str("job", name).Interface("panic", r).Msg("scanner tick panicked")
			}
		}()
		tick()
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("job", name).Str("cron", spec).Msg("scheduled scanner")
	return nil
}

func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop halts scheduling and waits for in-flight ticks to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
