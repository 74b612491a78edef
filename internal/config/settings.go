package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	Env          string
	Port         string
	DatabaseDSN  string
	JWTSecret    string
	SessionTTL   time.Duration
	CookieName   string
	CookieSecure bool
	RedisAddr    string
	RedisPass    string

	// ContentLength selects the explanation length contract: "standard" or "short".
	ContentLength string
	RevealAnswers bool
	CORSOrigins   []string
}

// Load reads a .env file when one exists and then the process environment.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment")
	}

	return Settings{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    getDuration("SESSION_TTL", 7*24*time.Hour),
		CookieName:    getEnv("COOKIE_NAME", "auth_token"),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		ContentLength: getEnv("CONTENT_LENGTH", "standard"),
		RevealAnswers: getBool("REVEAL_ANSWERS", false),
		CORSOrigins:   getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.WithField("key", key).Warnf("invalid boolean %q, using default", v)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.WithField("key", key).Warnf("invalid duration %q, using default", v)
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
