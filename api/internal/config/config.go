package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"telegram-nutrition-analyzer/api/internal/apperr"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultOpenAIBaseURL = "https://models.github.ai/inference"
	defaultOpenAIModel   = "openai/gpt-4.1"
	defaultGeminiModel   = "gemini-2.5-flash"
)

var reNumeric = regexp.MustCompile(`^\d+$`)

type Config struct {
	TelegramBotToken string
	TelegramUserID   int64

	Provider string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey string
	GeminiModel  string

	// Location задаёт границы "сегодня" для фильтра фото.
	Location *time.Location
	LogLevel slog.Level
}

func mustEnv(k string) (string, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return "", apperr.New(apperr.Configuration, k+" is not set")
	}
	return v, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Load читает и валидирует окружение один раз при старте.
// Ни одного сетевого вызова до успешного Load.
func Load() (*Config, error) {
	token, err := mustEnv("TELEGRAM_BOT_TOKEN")
	if err != nil {
		return nil, err
	}
	if _, err := mustEnv("TELEGRAM_USER_ID"); err != nil {
		return nil, err
	}
	// ID проверяется как есть, без TrimSpace: " 42" или "42\n" не числовые.
	userID, err := parseUserID(os.Getenv("TELEGRAM_USER_ID"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramBotToken: token,
		TelegramUserID:   userID,
		Provider:         strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIBaseURL:    strings.TrimRight(getEnv("OPENAI_BASE_URL", defaultOpenAIBaseURL), "/"),
		OpenAIModel:      getEnv("OPENAI_MODEL", defaultOpenAIModel),
		GeminiModel:      getEnv("GEMINI_MODEL", defaultGeminiModel),
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey, err = mustEnv("OPENAI_API_KEY"); err != nil {
			return nil, err
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey, err = mustEnv("GEMINI_API_KEY"); err != nil {
			return nil, err
		}
	default:
		return nil, apperr.New(apperr.Configuration,
			fmt.Sprintf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, cfg.Provider))
	}

	cfg.Location = time.Local
	if tz := getEnv("SUMMARY_TZ", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, apperr.Wrap(apperr.Configuration, "SUMMARY_TZ", err)
		}
		cfg.Location = loc
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, apperr.Wrap(apperr.Configuration, "LOG_LEVEL", err)
	}

	return cfg, nil
}

func parseUserID(s string) (int64, error) {
	if !reNumeric.MatchString(s) {
		return 0, apperr.New(apperr.Configuration,
			"TELEGRAM_USER_ID must be your numeric Telegram user ID (not username, not @username, not group/channel ID)")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.Configuration, "TELEGRAM_USER_ID", err)
	}
	return id, nil
}
