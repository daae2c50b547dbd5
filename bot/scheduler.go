package bot

import (
	"sync"
	"time"
)

const cooldownSweepInterval = 1 * time.Hour

// Scheduler runs the bot process's periodic housekeeping.
type Scheduler struct {
	bot  *Bot
	done chan struct{}
	wg   sync.WaitGroup
}

func NewScheduler(bot *Bot) *Scheduler {
	return &Scheduler{bot: bot, done: make(chan struct{})}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) Stop() {
	s.bot.Log.Info().Msg("stopping scheduler")
	close(s.done)
	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(cooldownSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.bot.Log.Debug().Msg("sweeping expired cooldowns")
			s.bot.Cooldowns.Sweep()
		case <-s.done:
			return
		}
	}
}
