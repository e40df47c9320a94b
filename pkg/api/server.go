// Package api — HTTP поверхность сервиса.
//
// Тонкий слой: разбор JSON, маршрутизация, CORS, перевод ошибок
// клиентского ввода в 400 и внутренних отказов в 500. Вся логика
// операций живёт в pkg/organizer.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/cors"

	"github.com/beatercode/organAizer-server/pkg/config"
	"github.com/beatercode/organAizer-server/pkg/organizer"
	"github.com/beatercode/organAizer-server/pkg/utils"
)

// Version попадает в ответ /api/status.
const Version = "1.0.0"

// Server — HTTP сервер сервиса.
type Server struct {
	router *http.ServeMux
	server *http.Server
	org    *organizer.Organizer
	cfg    *config.AppConfig
}

// NewServer создаёт сервер с зарегистрированными маршрутами и
// полной middleware-цепочкой (request id → логирование → recovery),
// обёрнутой в CORS для браузерного клиента.
func NewServer(cfg *config.AppConfig, org *organizer.Organizer) *Server {
	s := &Server{
		org:    org,
		cfg:    cfg,
		router: http.NewServeMux(),
	}

	s.registerRoutes()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.applyMiddleware(s.router))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// registerRoutes регистрирует все маршруты API.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/api/organize", s.handleOrganize)
	s.router.HandleFunc("/api/status", s.handleStatus)
}

// applyMiddleware собирает цепочку middleware вокруг роутера.
func (s *Server) applyMiddleware(h http.Handler) http.Handler {
	return requestIDMiddleware(loggingMiddleware(recoveryMiddleware(h)))
}

// Start запускает сервер и блокируется до его остановки.
func (s *Server) Start() error {
	utils.Info("Starting HTTP server", "addr", s.server.Addr, "ai_enabled", s.cfg.AI.Enabled())

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown корректно останавливает сервер, дожидаясь активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	utils.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
