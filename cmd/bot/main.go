package main

import (
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"sero/bot"
	"sero/config"
	"sero/database"
	"sero/handlers"
	"sero/logger"
	"sero/pubsub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel)
	if cfg.BotToken == "" {
		log.Fatal().Msg("BOT_TOKEN environment variable not set")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directory")
	}
	db, err := database.Init(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer client.Close()
	sub := pubsub.NewSubscriber(client, log)

	b, err := bot.New(cfg, db, sub, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}
	handlers.Register(b)

	if err := b.Run(); err != nil {
		log.Fatal().Err(err).Msg("failed to start bot")
	}
	b.Close()
}
