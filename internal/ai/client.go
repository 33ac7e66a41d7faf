package ai

import (
	"context"
	"errors"
)

// ErrEmptyReply — модель ответила без единого варианта (choices пуст).
var ErrEmptyReply = errors.New("upstream returned no choices")

// Request — один запрос к модели: системный промпт персоны, реплика пользователя
// и, опционально, картинка.
type Request struct {
	System    string
	Text      string
	ImageURL  string // data URL или http(s) URL; пусто — запрос только с текстом
	MaxTokens int64  // 0 — без ограничения
}

// Client интерфейс для взаимодействия с AI. Все реализации должны быть взаимозаменяемыми.
type Client interface {
	SendRequest(ctx context.Context, req Request) (string, error)
}
