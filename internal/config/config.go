package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	Mongo struct {
		URL      string
		Database string
	}

	Cache struct {
		// RedisURL — адрес redis (redis://host:port/db).
		RedisURL string
		// TTL снапшота issue в кеше.
		TTL time.Duration
		// StrictOwnership — при true владелец перепроверяется по store
		// даже при попадании в кеш (по умолчанию кешу доверяем как есть).
		StrictOwnership bool
	}

	// KafkaBrokers/KafkaTopicIssue — если не заданы, события issue не шлются.
	KafkaBrokers    []string
	KafkaTopicIssue string
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:  getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort: firstEnv("APP_PORT", "HTTP_PORT", "8098"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	cfg.Mongo.URL = getEnv("MONGODB_URL", "mongodb://localhost:27017")
	cfg.Mongo.Database = getEnv("MONGODB_DATABASE", "igm")

	cfg.Cache.RedisURL = getEnv("REDIS_URL", "redis://localhost:6379")
	cfg.Cache.TTL = time.Duration(getEnvInt("CACHE_TTL", 86400)) * time.Second
	cfg.Cache.StrictOwnership = getEnvBool("CACHE_STRICT_OWNERSHIP", false)

	cfg.KafkaBrokers = splitBrokers(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaTopicIssue = getEnv("KAFKA_TOPIC_ISSUE", "")
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mongo.URL == "" || c.Mongo.Database == "" {
		return errors.New("config: MONGODB_URL and MONGODB_DATABASE are required")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("config: CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func splitBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
