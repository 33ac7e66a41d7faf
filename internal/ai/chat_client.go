package ai

import (
	"context"
	"loria/internal/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// NewOpenAI создаёт клиента OpenAI из конфигурации. Повторы выключены: ошибка
// апстрима сразу возвращается вызывающему.
func NewOpenAI(cfg config.OpenAIConfig, opts ...option.RequestOption) openai.Client {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	return openai.NewClient(append(base, opts...)...)
}

// ChatClient отправляет однократный запрос в Chat Completions: system + один user,
// с картинкой или без.
type ChatClient struct {
	client *openai.Client
	model  openai.ChatModel
}

var _ Client = (*ChatClient)(nil)

func NewChatClient(client *openai.Client, model string) *ChatClient {
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	return &ChatClient{
		client: client,
		model:  openai.ChatModel(model),
	}
}

func (c *ChatClient) SendRequest(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.params(req))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *ChatClient) params(req Request) openai.ChatCompletionNewParams {
	user := openai.UserMessage(req.Text)
	if req.ImageURL != "" {
		user = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.Text),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: req.ImageURL,
			}),
		})
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			user,
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	return params
}
