package companion

import (
	"context"
	"errors"
	"loria/internal/ai"
	"loria/internal/config"
	"loria/internal/metrics"
	"loria/internal/persona"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AnalysisPrompt — фиксированная инструкция, которая уходит вместе с картинкой.
const AnalysisPrompt = "Analyze the chart in this image: trend, support/resistance, indicator context, possible trade play."

// Операции, по ним размечаются метрики и логи.
const (
	opChat  = "chat"
	opImage = "image"
)

// Image — загруженная картинка как есть, без обработки.
type Image struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Companion собирает запрос к модели: выбирает персону, ставит бюджет токенов и
// ограничивает время ожидания ответа.
type Companion struct {
	client ai.Client
	cfg    config.OpenAIConfig
	logger *zap.SugaredLogger
}

// New создаёт сервис оркестрации.
func New(client ai.Client, cfg config.OpenAIConfig, logger *zap.SugaredLogger) *Companion {
	return &Companion{client: client, cfg: cfg, logger: logger}
}

// Chat отправляет текстовое сообщение пользователя в один ход.
func (c *Companion) Chat(ctx context.Context, message, lang string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", invalid("message is required")
	}
	return c.send(ctx, opChat, lang, ai.Request{
		System:    persona.Select(lang),
		Text:      message,
		MaxTokens: c.cfg.ChatMaxTokens,
	})
}

// AnalyzeImage отправляет картинку (data URL) вместе с инструкцией анализа графика.
// Байты уходят как есть, пустой файл тоже: судить о картинке должна модель.
func (c *Companion) AnalyzeImage(ctx context.Context, lang string, img Image) (string, error) {
	metrics.UploadBytes.Observe(float64(len(img.Data)))
	c.logger.Infow("Картинка на анализ",
		"filename", img.Filename,
		"content_type", img.ContentType,
		"bytes", len(img.Data),
	)
	return c.send(ctx, opImage, lang, ai.Request{
		System:    persona.Select(lang),
		Text:      AnalysisPrompt,
		ImageURL:  ai.DataURL(img.ContentType, img.Data),
		MaxTokens: c.cfg.ImageMaxTokens,
	})
}

func (c *Companion) send(ctx context.Context, op, lang string, req ai.Request) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, c.cfg.Timeout, errors.New("upstream timeout"))
		defer cancel()
	}

	start := time.Now()
	reply, err := c.client.SendRequest(ctx, req)
	dur := time.Since(start)
	metrics.UpstreamDuration.WithLabelValues(op).Observe(dur.Seconds())

	if err != nil {
		e := classify(ctx, err)
		metrics.UpstreamErrors.WithLabelValues(op, string(e.Kind)).Inc()
		c.logger.Warnw("Ошибка запроса к модели",
			"op", op,
			"lang", persona.Resolve(lang),
			"kind", e.Kind,
			"duration", dur.String(),
			"error", err,
		)
		return "", e
	}

	c.logger.Debugw("Ответ модели получен",
		"op", op,
		"lang", persona.Resolve(lang),
		"duration", dur.String(),
		"chars", len(reply),
	)
	return reply, nil
}
