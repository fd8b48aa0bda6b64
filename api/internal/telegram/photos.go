package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-nutrition-analyzer/api/internal/meal"
)

// StartOfDay: полночь календарного дня now в зоне loc.
func StartOfDay(now time.Time, loc *time.Location) time.Time {
	t := now.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SelectPhotos оставляет фото-сообщения от userID с датой в [since, now].
// Порядок апдейтов сохраняется. Из вариантов размера берётся последний (самый крупный).
func SelectPhotos(updates []tgbotapi.Update, userID int64, since, now time.Time) []meal.Photo {
	var out []meal.Photo
	for _, upd := range updates {
		msg := upd.Message
		if msg == nil || msg.From == nil || msg.From.ID != userID || len(msg.Photo) == 0 {
			continue
		}
		at := msg.Time()
		if at.Before(since) || at.After(now) {
			continue
		}
		ph := msg.Photo[len(msg.Photo)-1]
		out = append(out, meal.Photo{FileID: ph.FileID, CapturedAt: at})
	}
	return out
}
