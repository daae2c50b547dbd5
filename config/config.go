package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"sero/model"
)

// Load reads configuration from the environment. A .env file is honored when
// present. Fields a process requires (e.g. BOT_TOKEN for the bot) are
// validated by that process at bootstrap, not here.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Warning: invalid REDIS_DB value %q, using 0", v)
		} else {
			redisDB = n
		}
	}

	cfg := &model.Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		DBPath:        getenvDefault("DB_PATH", "./data/sero.db"),
		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		APIAddr:       getenvDefault("API_ADDR", ":8080"),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
		RoleScanCron:  getenvDefault("ROLE_SCAN_CRON", "*/30 * * * *"),
		BanScanCron:   getenvDefault("BAN_SCAN_CRON", "0 0 * * *"),
		BirthdayCron:  getenvDefault("BIRTHDAY_CRON", "0 8 * * *"),
		RewardCron:    getenvDefault("REWARD_CRON", "0 12 * * *"),
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
