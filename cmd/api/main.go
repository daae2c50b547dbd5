package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/redis/go-redis/v9"

	"sero/api"
	"sero/config"
	"sero/database"
	"sero/logger"
	"sero/model"
	"sero/pubsub"
	"sero/scanner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel)

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
	pub := pubsub.NewRedisPublisher(client, log)

	sched := scanner.NewScheduler(log)
	jobs := []struct {
		cron string
		name string
		tick func()
	}{
		{cfg.RoleScanCron, "role-expirer", scanner.NewGrantExpirer(db, pub, log, model.GrantKindRole).Run},
		{cfg.BanScanCron, "ban-expirer", scanner.NewGrantExpirer(db, pub, log, model.GrantKindBan).Run},
		{cfg.BirthdayCron, "birthday-scanner", scanner.NewBirthdayScanner(db, pub, log).Run},
		{cfg.RewardCron, "reward-scanner", scanner.NewRewardDropScanner(db, pub, log).Run},
	}
	for _, job := range jobs {
		if err := sched.Add(job.cron, job.name, job.tick); err != nil {
			log.Fatal().Err(err).Str("job", job.name).Msg("invalid cron expression")
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := api.NewServer(db, pub, log)
	go func() {
		if err := srv.ListenAndServe(cfg.APIAddr); err != nil {
			log.Fatal().Err(err).Msg("api server failed")
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	log.Info().Msg("shutting down api process")
}
