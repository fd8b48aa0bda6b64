package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-nutrition-analyzer/api/internal/meal"
)

// BotAPI: подмножество *tgbotapi.BotAPI, которое нужно клиенту.
type BotAPI interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client реализует meal.Source поверх Bot API для одного пользователя.
// Ошибки Bot API возвращаются как есть; имя операции добавляет вызывающий.
type Client struct {
	Bot      BotAPI
	Token    string
	UserID   int64
	Location *time.Location

	now func() time.Time
}

var _ meal.Source = (*Client)(nil)

func New(bot BotAPI, token string, userID int64, loc *time.Location) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{Bot: bot, Token: token, UserID: userID, Location: loc, now: time.Now}
}

// TodayPhotos читает очередь апдейтов один раз (без long polling и без сдвига offset)
// и возвращает фото пользователя за текущие сутки.
func (c *Client) TodayPhotos(_ context.Context) ([]meal.Photo, error) {
	now := c.now().In(c.Location)

	updates, err := c.Bot.GetUpdates(tgbotapi.NewUpdate(0))
	if err != nil {
		return nil, err
	}
	return SelectPhotos(updates, c.UserID, StartOfDay(now, c.Location), now), nil
}

func (c *Client) PhotoURL(_ context.Context, fileID string) (string, error) {
	file, err := c.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", err
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("empty file_path for %s", fileID)
	}
	return fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", c.Token, file.FilePath), nil
}

func (c *Client) SendText(_ context.Context, text string) error {
	_, err := c.Bot.Send(tgbotapi.NewMessage(c.UserID, text))
	return err
}
