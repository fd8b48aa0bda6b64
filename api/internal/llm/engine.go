package llm

import "context"

// Request описывает один запрос к модели (текст и, опционально, ссылку на изображение).
type Request struct {
	Text      string
	ImageURL  string
	MaxTokens int
}

type Engine interface {
	Name() string
	GetModel() string
	// Complete возвращает текст первого ответа модели без изменений.
	Complete(ctx context.Context, req Request) (string, error)
}
