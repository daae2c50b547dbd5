package model

// Config holds process configuration loaded from the environment. Both the
// API and bot processes share the one struct; each checks the fields it needs
// at bootstrap.
type Config struct {
	BotToken      string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	APIAddr       string
	LogLevel      string

	// Cron expressions selecting scanner cadence.
	RoleScanCron string
	BanScanCron  string
	BirthdayCron string
	RewardCron   string
}
