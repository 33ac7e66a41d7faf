package main

import (
	"context"
	"loria/internal/ai"
	"loria/internal/config"
	"loria/internal/server"
	"loria/internal/service/companion"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// HTTP сервис Loria: чат и анализ графиков через OpenAI.
func main() {
	cfg := config.NewConfig()

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"Model", cfg.OpenAI.Model,
		"StrictErrors", cfg.StrictErrors,
		"UpstreamTimeout", cfg.OpenAI.Timeout.String(),
	)

	var aiClient ai.Client
	if cfg.StubUpstream {
		sugar.Warnw("OpenAI отключён, ответы отдаёт заглушка")
		aiClient = ai.NewStubClient()
	} else {
		// клиент создаётся один раз на процесс и передаётся в сервис явно
		oClient := ai.NewOpenAI(cfg.OpenAI)
		aiClient = ai.NewChatClient(&oClient, cfg.OpenAI.Model)
	}

	svc := companion.New(aiClient, cfg.OpenAI, sugar)
	srv := server.New(cfg, svc, sugar)

	// Graceful shutdown on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Останавливаем сервер сами после сигнала, чтобы дождаться завершения Shutdown.
	if err := srv.Start(context.Background()); err != nil {
		sugar.Fatalw("failed to start server", "addr", cfg.BindAddr, "error", err)
	}

	<-ctx.Done()
	if err := srv.Stop(context.Background()); err != nil {
		sugar.Warnw("server stop error", "error", err)
	}
	sugar.Infow("server stopped")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
