package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDriver        string // "sqlite" or "postgres"
	DatabaseURL     string // used when DBDriver is postgres
	SQLitePath      string
	GroupID         string
	BotPhone        string
	ReplyDelayMinMs int  // Minimum delay before reply (milliseconds)
	ReplyDelayMaxMs int  // Maximum delay before reply (milliseconds), 0 = use min as fixed
	ShowTyping      bool // Show typing indicator during delay
	Location        *time.Location
	LogLevel        string

	LeetCodeURL       string
	LeetCodeTimeout   time.Duration
	SyncPageSize      int
	SyncDelay         time.Duration // pause between problems during a bulk sync
	DailySyncInterval time.Duration // 0 disables the scheduled daily sync
	AnnounceDaily     bool
	APICORSOrigins    []string
	APIRateLimitRPS   float64
	APIRateLimitBurst int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}

	loc, err := time.LoadLocation(getenv("TIMEZONE", "Local"))
	if err != nil {
		log.Printf("Unknown TIMEZONE, falling back to local time: %v", err)
		loc = time.Local
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DBDriver:        getenv("DB_DRIVER", "sqlite"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		SQLitePath:      getenv("SQLITE_PATH", "./data/tracker.db"),
		GroupID:         getenv("GROUP_ID", ""),
		BotPhone:        getenv("BOT_PHONE", ""),
		ReplyDelayMinMs: getenvInt("REPLY_DELAY_MIN_MS", 0),
		ReplyDelayMaxMs: getenvInt("REPLY_DELAY_MAX_MS", 0),
		ShowTyping:      getenvBool("SHOW_TYPING", false),
		Location:        loc,
		LogLevel:        strings.ToUpper(getenv("LOG_LEVEL", "INFO")),

		LeetCodeURL:       getenv("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
		LeetCodeTimeout:   time.Duration(getenvInt("LEETCODE_TIMEOUT_SEC", 15)) * time.Second,
		SyncPageSize:      getenvInt("SYNC_PAGE_SIZE", 5000),
		SyncDelay:         time.Duration(getenvInt("SYNC_DELAY_MS", 500)) * time.Millisecond,
		DailySyncInterval: time.Duration(getenvInt("DAILY_SYNC_INTERVAL_MIN", 360)) * time.Minute,
		AnnounceDaily:     getenvBool("ANNOUNCE_DAILY", true),
		APICORSOrigins:    getenvList("API_CORS_ORIGINS", []string{"*"}),
		APIRateLimitRPS:   getenvFloat("API_RATE_LIMIT_RPS", 5),
		APIRateLimitBurst: getenvInt("API_RATE_LIMIT_BURST", 20),
	}
}

// Today is the current calendar day in the configured time zone.
func (c Config) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
