package companion

import (
	"context"
	"errors"
	"loria/internal/ai"
	"net/http"

	"github.com/openai/openai-go/v3"
)

// Kind — категория ошибки, по которой HTTP слой выбирает статус, а клиент
// отличает сбой от нормального ответа.
type Kind string

const (
	KindInvalidRequest      Kind = "invalid_request"
	KindTimeout             Kind = "timeout"
	KindCanceled            Kind = "canceled"
	KindUpstreamAuth        Kind = "upstream_auth"
	KindUpstreamRateLimited Kind = "upstream_rate_limited"
	KindUpstreamBadResponse Kind = "upstream_bad_response"
	KindUpstream            Kind = "upstream_error"
)

// Error — ошибка с категорией. Текст совпадает с текстом исходной ошибки.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func invalid(msg string) error {
	return &Error{Kind: KindInvalidRequest, Err: errors.New(msg)}
}

// KindOf извлекает категорию; для посторонних ошибок — KindUpstream.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

// classify раскладывает ошибку вызова модели по категориям. ctx — контекст
// самого вызова (с таймаутом).
func classify(ctx context.Context, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	case errors.Is(ctx.Err(), context.Canceled), errors.Is(err, context.Canceled):
		return &Error{Kind: KindCanceled, Err: err}
	case errors.Is(err, ai.ErrEmptyReply):
		return &Error{Kind: KindUpstreamBadResponse, Err: err}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Kind: KindUpstreamAuth, Err: err}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindUpstreamRateLimited, Err: err}
		}
	}
	return &Error{Kind: KindUpstream, Err: err}
}
