package main

import (
	"context"
	"log/slog"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"telegram-nutrition-analyzer/api/internal/apperr"
	"telegram-nutrition-analyzer/api/internal/config"
	"telegram-nutrition-analyzer/api/internal/llm"
	"telegram-nutrition-analyzer/api/internal/llm/gemini"
	"telegram-nutrition-analyzer/api/internal/llm/openai"
	"telegram-nutrition-analyzer/api/internal/meal"
	"telegram-nutrition-analyzer/api/internal/telegram"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background()))
}

// newBot подменяется в тестах; реальный конструктор делает getMe.
var newBot = func(token string) (telegram.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	return bot, nil
}

// run возвращает код выхода: 0, если сводка отправлена или фото нет, иначе 1.
func run(ctx context.Context) int {
	logger := newLogger(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "state", meal.StateValidating, "kind", apperr.KindOf(err), "err", err)
		return 1
	}
	logger = newLogger(cfg.LogLevel).With("run_id", uuid.New().String())

	bot, err := newBot(cfg.TelegramBotToken)
	if err != nil {
		err = apperr.Wrap(apperr.Transport, "getMe", err)
		logger.Error("telegram bot init failed", "kind", apperr.KindOf(err), "err", err)
		return 1
	}

	src := telegram.New(bot, cfg.TelegramBotToken, cfg.TelegramUserID, cfg.Location)
	eng := newEngine(cfg)
	logger.Debug("engine selected", "engine", eng.Name(), "model", eng.GetModel(), "tz", cfg.Location.String())

	res, err := meal.New(src, eng, logger).Run(ctx)
	code := exitCode(res.State, err)
	if code == 0 {
		logger.Info("done", "state", res.State, "photos", res.Photos)
	}
	return code
}

// exitCode: 0 только для Delivered и Empty.
func exitCode(state meal.State, err error) int {
	if err != nil || !state.Terminal() || state == meal.StateFailed {
		return 1
	}
	return 0
}

func newEngine(cfg *config.Config) llm.Engine {
	if cfg.Provider == config.ProviderGemini {
		return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}
