package bot

import (
	"os"
	"os/signal"
	"syscall"
)

// Run opens the gateway connection, starts the subscriber and scheduler, and
// blocks until the process receives a termination signal.
func (b *Bot) Run() error {
	if err := b.Session.Open(); err != nil {
		return err
	}

	if len(b.CommandDefs) > 0 {
		b.Log.Info().Int("count", len(b.CommandDefs)).Msg("registering commands")
		registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", b.CommandDefs)
		if err != nil {
			b.Log.Error().Err(err).Msg("cannot register commands")
		} else {
			b.RegisteredCommands = registered
		}
	}

	b.Subscriber.Start()
	b.scheduler.Start()

	b.Log.Info().Msg("bot is now running, press CTRL-C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	return nil
}
