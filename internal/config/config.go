package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	BotToken            string
	ModerationChatID    int64
	AdminIDs            []int64
	LogLevel            string
	LogFormat           string
	PollTimeoutSeconds  int
	ProfileHistoryLimit int
	RegistrationTTL     time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config

	OpsAddr string
}

type DatabaseConfig struct {
	URL            string
	MaxOpenConns   int
	MaxIdleConns   int
	MigrateOnStart bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != "" && strings.TrimSpace(c.Bucket) != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	chatID, err := parseInt64(v, "MODERATION_CHAT_ID")
	if err != nil {
		return Config{}, err
	}
	if chatID == 0 {
		return Config{}, errors.New("MODERATION_CHAT_ID is required")
	}

	adminIDs, err := parseIDList(v.GetString("ADMIN_IDS"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ADMIN_IDS: %w", err)
	}

	token := strings.TrimSpace(v.GetString("BOT_TOKEN"))
	if token == "" {
		token, err = readTokenFile(v.GetString("BOT_TOKEN_FILE"))
		if err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		BotToken:            token,
		ModerationChatID:    chatID,
		AdminIDs:            adminIDs,
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		PollTimeoutSeconds:  v.GetInt("POLL_TIMEOUT_SECONDS"),
		ProfileHistoryLimit: v.GetInt("PROFILE_HISTORY_LIMIT"),
		RegistrationTTL:     v.GetDuration("REGISTRATION_TTL"),
		Database: DatabaseConfig{
			URL:            strings.TrimSpace(v.GetString("DATABASE_URL")),
			MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
			MigrateOnStart: v.GetBool("DB_MIGRATE_ON_START"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		S3: S3Config{
			Endpoint:  strings.TrimSpace(v.GetString("S3_ENDPOINT")),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			UseSSL:    v.GetBool("S3_USE_SSL"),
			Bucket:    strings.TrimSpace(v.GetString("S3_BUCKET")),
		},
		OpsAddr: strings.TrimSpace(v.GetString("OPS_ADDR")),
	}

	if cfg.PollTimeoutSeconds <= 0 {
		cfg.PollTimeoutSeconds = 30
	}
	if cfg.ProfileHistoryLimit <= 0 {
		cfg.ProfileHistoryLimit = 5
	}
	if cfg.RegistrationTTL <= 0 {
		cfg.RegistrationTTL = 24 * time.Hour
	}
	if cfg.Database.URL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BOT_TOKEN_FILE", "token.txt")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("POLL_TIMEOUT_SECONDS", 30)
	v.SetDefault("PROFILE_HISTORY_LIMIT", 5)
	v.SetDefault("REGISTRATION_TTL", "24h")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MIGRATE_ON_START", true)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("OPS_ADDR", ":9090")
}

func parseInt64(v *viper.Viper, key string) (int64, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func parseIDList(raw string) ([]int64, error) {
	ids := make([]int64, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readTokenFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("open bot token file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read bot token file: %w", err)
	}
	return "", nil
}
