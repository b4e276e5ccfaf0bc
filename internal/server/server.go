// Пакет server — HTTP-сервер SWIFT Monitor с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на API Gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/bigkaa/swift-monitor/internal/api/contract"
	"github.com/bigkaa/swift-monitor/internal/api/handlers"
	"github.com/bigkaa/swift-monitor/internal/config"
)

// Server — HTTP-сервер SWIFT Monitor.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// handler — реализация contract.ServerInterface (APIHandler).
// middlewares — дополнительные middleware (metrics, logging), добавляются в порядке переданного среза.
func New(cfg *config.Config, logger *slog.Logger, handler contract.ServerInterface, middlewares ...func(http.Handler) http.Handler) *Server {
	router := chi.NewRouter()

	for _, mw := range middlewares {
		router.Use(mw)
	}

	contract.HandlerWithOptions(handler, contract.ChiServerOptions{
		BaseURL:          cfg.APIPrefix,
		BaseRouter:       router,
		InvalidIDHandler: handlers.InvalidTransactionID,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger.With(slog.String("component", "http_server")),
		cfg:        cfg,
	}
}

// Handler возвращает корневой обработчик (для тестов и встраивания).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run слушает адрес из конфигурации до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("ошибка открытия порта %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln. При отмене ctx выполняется graceful shutdown,
// ограниченный ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", ln.Addr().String()),
			slog.String("api_prefix", s.cfg.APIPrefix),
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("Выполняется graceful shutdown...")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ошибка при graceful shutdown: %w", err)
		}
		s.logger.Info("HTTP-сервер остановлен")
		return nil
	})

	return g.Wait()
}
