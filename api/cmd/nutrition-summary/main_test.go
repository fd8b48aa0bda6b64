package main

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-nutrition-analyzer/api/internal/config"
	"telegram-nutrition-analyzer/api/internal/llm/gemini"
	"telegram-nutrition-analyzer/api/internal/llm/openai"
	"telegram-nutrition-analyzer/api/internal/meal"
	"telegram-nutrition-analyzer/api/internal/telegram"
)

type stubBot struct {
	updates []tgbotapi.Update
	err     error
	sent    []string
}

func (b *stubBot) GetUpdates(tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	return b.updates, b.err
}

func (b *stubBot) GetFile(cfg tgbotapi.FileConfig) (tgbotapi.File, error) {
	return tgbotapi.File{FileID: cfg.FileID, FilePath: "photos/" + cfg.FileID + ".jpg"}, nil
}

func (b *stubBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if mc, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, mc.Text)
	}
	return tgbotapi.Message{}, nil
}

func setEnv(t *testing.T, userID string) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_USER_ID", userID)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("SUMMARY_TZ", "")
	t.Setenv("LOG_LEVEL", "error")
}

func withBot(t *testing.T, f func(string) (telegram.BotAPI, error)) *int {
	t.Helper()
	calls := 0
	orig := newBot
	newBot = func(token string) (telegram.BotAPI, error) {
		calls++
		return f(token)
	}
	t.Cleanup(func() { newBot = orig })
	return &calls
}

func TestRunNonNumericUserIDExitsBeforeNetwork(t *testing.T) {
	setEnv(t, "@alice")
	calls := withBot(t, func(string) (telegram.BotAPI, error) { return &stubBot{}, nil })

	assert.Equal(t, 1, run(context.Background()))
	assert.Equal(t, 0, *calls, "no Telegram call may happen before configuration is valid")
}

func TestRunMissingTokenExits1(t *testing.T) {
	setEnv(t, "1")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	withBot(t, func(string) (telegram.BotAPI, error) { return &stubBot{}, nil })

	assert.Equal(t, 1, run(context.Background()))
}

func TestRunBotInitFailure(t *testing.T) {
	setEnv(t, "1")
	withBot(t, func(string) (telegram.BotAPI, error) { return nil, errors.New("Not Found") })

	assert.Equal(t, 1, run(context.Background()))
}

func TestRunNoPhotosExits0(t *testing.T) {
	setEnv(t, "424242")
	bot := &stubBot{updates: []tgbotapi.Update{{Message: &tgbotapi.Message{
		From:  &tgbotapi.User{ID: 424242},
		Date:  int(time.Now().Add(-48 * time.Hour).Unix()),
		Photo: []tgbotapi.PhotoSize{{FileID: "old"}},
	}}}}
	calls := withBot(t, func(token string) (telegram.BotAPI, error) {
		assert.Equal(t, "123:abc", token)
		return bot, nil
	})

	require.Equal(t, 0, run(context.Background()))
	assert.Equal(t, 1, *calls)
	assert.Equal(t, []string{meal.NoPhotosNotice}, bot.sent)
}

func TestRunFetchErrorExits1(t *testing.T) {
	setEnv(t, "424242")
	bot := &stubBot{err: errors.New("Conflict: terminated by other getUpdates request")}
	withBot(t, func(string) (telegram.BotAPI, error) { return bot, nil })

	assert.Equal(t, 1, run(context.Background()))
	assert.Empty(t, bot.sent)
}

func TestNewEngine(t *testing.T) {
	e := newEngine(&config.Config{Provider: config.ProviderOpenAI, OpenAIAPIKey: "k", OpenAIModel: "openai/gpt-4.1"})
	assert.IsType(t, &openai.Engine{}, e)
	assert.Equal(t, "openai/gpt-4.1", e.GetModel())

	e = newEngine(&config.Config{Provider: config.ProviderGemini, GeminiAPIKey: "k", GeminiModel: "gemini-2.5-flash"})
	assert.IsType(t, &gemini.Engine{}, e)
	assert.Equal(t, "gemini", e.Name())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(meal.StateDelivered, nil))
	assert.Equal(t, 0, exitCode(meal.StateEmpty, nil))
	assert.Equal(t, 1, exitCode(meal.StateFailed, errors.New("boom")))
	assert.Equal(t, 1, exitCode(meal.StateFailed, nil))
	assert.Equal(t, 1, exitCode(meal.StateSummarizing, nil))
	assert.Equal(t, 1, exitCode(meal.StateDelivered, errors.New("late")))
}
