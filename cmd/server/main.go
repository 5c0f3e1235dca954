package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Lixing-Zhang/just-java/internal/config"
	"github.com/Lixing-Zhang/just-java/internal/handlers"
	"github.com/Lixing-Zhang/just-java/internal/locale"
	"github.com/Lixing-Zhang/just-java/internal/mail"
	"github.com/Lixing-Zhang/just-java/internal/repository"
	"github.com/Lixing-Zhang/just-java/internal/service"
	"github.com/Lixing-Zhang/just-java/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting just java order server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"locale", cfg.Locale,
		"log_level", cfg.LogLevel,
	)

	loc, err := locale.New(cfg.Locale)
	if err != nil {
		log.Error("failed to load locale", "error", err)
		os.Exit(1)
	}

	mailHandlers, err := buildMailHandlers(cfg.Mail)
	if err != nil {
		log.Error("failed to configure mail handlers", "error", err)
		os.Exit(1)
	}
	dispatcher := mail.NewDispatcher(log, mailHandlers...)
	log.Info("mail handoff configured", "handlers", dispatcher.Handlers())

	// Initialize repositories
	sessionRepo := repository.NewInMemorySessionRepository(cfg.Session.TTL)

	// Initialize services
	orderService := service.NewOrderService(loc, dispatcher, sessionRepo, log)
	sessionService := service.NewSessionService(sessionRepo, loc, log)

	// Initialize handlers
	router := handlers.NewRouter(cfg, log,
		handlers.NewHealthHandler(log, version),
		handlers.NewOrderHandler(orderService, log),
		handlers.NewSessionHandler(sessionService, log),
	)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// buildMailHandlers instantiates the configured handlers in order
func buildMailHandlers(cfg config.MailConfig) ([]mail.Handler, error) {
	var out []mail.Handler

	for _, name := range cfg.Handlers {
		switch strings.TrimSpace(name) {
		case mail.MailtoName:
			out = append(out, mail.NewMailtoHandler())
		case mail.SMTPName:
			h, err := mail.NewSMTPHandler(mail.SMTPConfig{
				Addr:      cfg.SMTPAddr,
				From:      cfg.SMTPFrom,
				Username:  cfg.SMTPUsername,
				Password:  cfg.SMTPPassword,
				DefaultTo: cfg.SMTPTo,
			})
			if err != nil {
				return nil, err
			}
			out = append(out, h)
		case "none":
		default:
			return nil, fmt.Errorf("unknown mail handler %q", name)
		}
	}

	return out, nil
}
