package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"sero/cooldown"
	"sero/guildcache"
	"sero/model"
	"sero/pubsub"
	"sero/reconciler"
)

type Bot struct {
	Session            *discordgo.Session
	DB                 *sqlx.DB
	Cfg                *model.Config
	Log                zerolog.Logger
	Cooldowns          *cooldown.Store
	Cache              *guildcache.Cache
	Subscriber         *pubsub.Subscriber
	CommandDefs        []*discordgo.ApplicationCommand
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)

	scheduler *Scheduler
}

// New assembles the bot process: gateway session, event subscriber with the
// reconciler and notifier registered, and the two in-memory stores the
// command hot path consults. All collaborators are injected; nothing here is
// a package-level singleton.
func New(cfg *model.Config, db *sqlx.DB, sub *pubsub.Subscriber, log zerolog.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers | discordgo.IntentMessageContent

	b := &Bot{
		Session:    dg,
		DB:         db,
		Cfg:        cfg,
		Log:        log,
		Cooldowns:  cooldown.New(),
		Cache:      guildcache.New(db),
		Subscriber: sub,
	}
	b.scheduler = NewScheduler(b)

	rec := reconciler.New(db, reconciler.NewDiscordDirectory(dg), log)
	rec.Register(sub)
	NewNotifier(dg, db, log).Register(sub)

	return b, nil
}

func (b *Bot) Close() {
	b.Log.Info().Msg("gracefully shutting down")
	b.scheduler.Stop()
	b.Subscriber.Close()
	if err := b.Session.Close(); err != nil {
		b.Log.Warn().Err(err).Msg("error closing discord session")
	}
}
