package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/advice"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/audit"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/auth"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/config"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/classifier"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/logging"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/refdata"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.Load()
	logging.Setup(true, logging.ParseLevel(cfg.Server.LogLevel))

	// Load reference data.
	store := refdata.New(cfg.Data.Dir)
	if err := store.Load(); err != nil {
		log.Fatalf("failed to load reference data: %v", err)
	}

	// Load the trained model.
	m, err := classifier.Load(cfg.Data.ModelPath)
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	eng, err := engine.New(store, m)
	if err != nil {
		log.Fatalf("failed to create engine: %v", err)
	}

	// Auth is optional: no database, no account routes.
	var users *auth.Store
	var tokens *auth.TokenIssuer
	if cfg.Auth.DatabaseURL != "" {
		users, err = auth.Open(cfg.Auth.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to open user store: %v", err)
		}
		defer users.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := users.Migrate(ctx); err != nil {
			cancel()
			log.Fatalf("failed to migrate user store: %v", err)
		}
		cancel()

		tokens, err = auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
		if err != nil {
			log.Fatalf("failed to create token issuer: %v", err)
		}
	}

	// Diagnosis trail is optional; writes never block request handling.
	var trail audit.Sink = audit.Nop{}
	if cfg.Data.AuditPath != "" {
		fileSink, err := audit.NewFileSink(cfg.Data.AuditPath)
		if err != nil {
			log.Fatalf("failed to open audit trail: %v", err)
		}
		trail = audit.NewAsyncSink(fileSink)
	}
	defer trail.Close()

	// The narrator falls back to template text without an API key.
	var llm advice.Client
	if cfg.LLM.APIKey != "" {
		llm = advice.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model)
	}
	narrator := advice.NewNarrator(llm)

	srv := server.New(eng, narrator, trail, users, tokens)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\nreceived %v, shutting down...\n", sig)
		if err := srv.Shutdown(shutdownTimeout); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	fmt.Fprintf(os.Stderr, "chatdoctor: listening on %s\n", cfg.Server.Addr)
	if err := srv.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
