package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` // Режим дебага: development-логгер zap

	// HTTP сервер
	BindAddr       string `env:"BIND_ADDR"`        // Адрес слушателя, напр. :8000
	IndexPath      string `env:"INDEX_PATH"`       // Путь к статической странице для GET /
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES"` // Лимит размера загружаемого изображения, в байтах
	StrictErrors   bool   `env:"STRICT_ERRORS"`    // true: ошибки апстрима отдаются со статусами 4xx/5xx вместо 200
	StubUpstream   bool   `env:"STUB_UPSTREAM"`    // Заглушка вместо OpenAI, для локальной разработки фронтенда

	OpenAI OpenAIConfig
}

// OpenAIConfig конфигурация клиента chat completions.
type OpenAIConfig struct {
	APIKey         string        `env:"OPENAI_API_KEY"`   // Обязательный ключ, без него сервис не стартует
	BaseURL        string        `env:"OPENAI_BASE_URL"`  // Пусто — официальный endpoint OpenAI
	Model          string        `env:"OPENAI_MODEL"`     // Модель, по умолчанию gpt-4o
	ChatMaxTokens  int64         `env:"CHAT_MAX_TOKENS"`  // Бюджет ответа для /chat
	ImageMaxTokens int64         `env:"IMAGE_MAX_TOKENS"` // Бюджет ответа для /analyze-image
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT"` // Таймаут одного запроса к модели
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		BindAddr:       ":8000",
		IndexPath:      "web/index.html",
		MaxUploadBytes: 20 << 20,
		StrictErrors:   false,
		OpenAI: OpenAIConfig{
			Model:          "gpt-4o",
			ChatMaxTokens:  400,
			ImageMaxTokens: 450,
			Timeout:        60 * time.Second,
		},
	}
}

// NewConfig загружает конфигурацию приложения из .env, окружения и os.Args.
func NewConfig() *Config {
	cfg, err := Load(flag.CommandLine, nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load собирает конфигурацию: дефолты -> .env -> ENV -> флаги fs. При args == nil
// разбираются os.Args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	fs.StringVar(&cfg.BindAddr, "bind-addr", cfg.BindAddr, "адрес HTTP сервера, напр. :8000")
	fs.StringVar(&cfg.IndexPath, "index-path", cfg.IndexPath, "путь к index.html для GET /")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload-bytes", cfg.MaxUploadBytes, "максимальный размер загружаемого изображения")
	fs.BoolVar(&cfg.StrictErrors, "strict-errors", cfg.StrictErrors, "отдавать ошибки апстрима кодами 502/504 вместо 200")
	fs.BoolVar(&cfg.StubUpstream, "stub", cfg.StubUpstream, "использовать заглушку вместо OpenAI (ключ не нужен)")
	fs.StringVar(&cfg.OpenAI.APIKey, "openai-api-key", cfg.OpenAI.APIKey, "API ключ OpenAI (перекрывает ENV)")
	fs.StringVar(&cfg.OpenAI.BaseURL, "openai-base-url", cfg.OpenAI.BaseURL, "базовый URL OpenAI-совместимого API")
	fs.StringVar(&cfg.OpenAI.Model, "openai-model", cfg.OpenAI.Model, "модель chat completions")
	fs.Int64Var(&cfg.OpenAI.ChatMaxTokens, "chat-max-tokens", cfg.OpenAI.ChatMaxTokens, "max_tokens для текстового чата")
	fs.Int64Var(&cfg.OpenAI.ImageMaxTokens, "image-max-tokens", cfg.OpenAI.ImageMaxTokens, "max_tokens для анализа изображений")
	fs.DurationVar(&cfg.OpenAI.Timeout, "upstream-timeout", cfg.OpenAI.Timeout, "таймаут запроса к модели, напр. 60s")

	if args == nil {
		args = os.Args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.OpenAI.APIKey = strings.TrimSpace(cfg.OpenAI.APIKey)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля и границы.
func (c *Config) Validate() error {
	var errs []error
	if c.OpenAI.APIKey == "" && !c.StubUpstream {
		errs = append(errs, errors.New("OPENAI_API_KEY is required"))
	}
	if c.OpenAI.Model == "" {
		errs = append(errs, errors.New("OPENAI_MODEL must not be empty"))
	}
	if c.OpenAI.ChatMaxTokens <= 0 || c.OpenAI.ImageMaxTokens <= 0 {
		errs = append(errs, errors.New("max tokens must be positive"))
	}
	if c.OpenAI.Timeout <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
