package meal

import (
	"context"
	"time"
)

// Photo: лучший по размеру вариант фото из сообщения пользователя.
type Photo struct {
	FileID     string
	CapturedAt time.Time
}

// Source описывает транспорт бота.
type Source interface {
	TodayPhotos(ctx context.Context) ([]Photo, error)
	PhotoURL(ctx context.Context, fileID string) (string, error)
	SendText(ctx context.Context, text string) error
}

type State string

const (
	StateValidating  State = "validating"
	StateFetching    State = "fetching"
	StateEmpty       State = "empty"
	StateAnalyzing   State = "analyzing"
	StateSummarizing State = "summarizing"
	StateDelivered   State = "delivered"
	StateFailed      State = "failed"
)

// Terminal: Empty тоже конечное состояние, но не ошибка.
func (s State) Terminal() bool {
	return s == StateEmpty || s == StateDelivered || s == StateFailed
}

type Result struct {
	State    State
	Photos   int
	Analyses []string
	Summary  string
}
