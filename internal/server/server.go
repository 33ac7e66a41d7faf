package server

import (
	"context"
	"errors"
	"fmt"
	"loria/internal/config"
	"loria/internal/service/companion"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Service — то, что HTTP слой требует от оркестрации запросов к модели.
type Service interface {
	Chat(ctx context.Context, message, lang string) (string, error)
	AnalyzeImage(ctx context.Context, lang string, img companion.Image) (string, error)
}

// Server — HTTP фронт Loria: статика, health, текстовый чат и анализ графиков.
type Server struct {
	cfg     *config.Config
	svc     Service
	srv     *http.Server
	logger  *zap.SugaredLogger
	running atomic.Bool
	addr    string
}

func New(cfg *config.Config, svc Service, logger *zap.SugaredLogger) *Server {
	s := &Server{cfg: cfg, svc: svc, logger: logger}

	s.srv = &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Ответ ждёт модель, поэтому запас поверх таймаута апстрима.
		WriteTimeout: cfg.OpenAI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler собирает роутер со всеми middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RequestID)
	r.Use(Logging(s.logger))
	r.Use(chimiddleware.Recoverer)
	// Любой origin с credentials: origin отражается в ответе, "*" браузер с cookies не примет.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(*http.Request, string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/chat", s.handleChat)
	r.Post("/analyze-image", s.handleAnalyzeImage)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	// Порт занимаем синхронно: без него сервису незачем жить.
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.addr = ln.Addr().String()

	go func() {
		s.logger.Infow("Loria server listening", "addr", s.addr)
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) && err != nil {
			s.logger.Errorw("Loria server stopped with error", "error", err)
		} else {
			s.logger.Infow("Loria server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Stop(context.WithoutCancel(ctx))
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeoutCause(ctx, 10*time.Second, errors.New("loria server shutdown timeout"))
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	return nil
}

// Addr — фактический адрес после Start (с реальным портом для ":0"), до Start — из конфига.
func (s *Server) Addr() string {
	if s.addr != "" {
		return s.addr
	}
	return s.srv.Addr
}
