package ai

import (
	"context"
	"sync"
)

// StubClient заглушка, которая не делает реальных запросов. Запоминает все
// полученные запросы, чтобы их можно было проверить.
type StubClient struct {
	Reply string
	Err   error

	mu       sync.Mutex
	requests []Request
}

var _ Client = (*StubClient)(nil)

func NewStubClient() *StubClient { return &StubClient{Reply: "запрос получен"} }

func (c *StubClient) SendRequest(_ context.Context, req Request) (string, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.Err != nil {
		return "", c.Err
	}
	return c.Reply, nil
}

// Requests возвращает копию истории запросов.
func (c *StubClient) Requests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Request, len(c.requests))
	copy(out, c.requests)
	return out
}
