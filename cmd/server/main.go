package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ignite/newsletter-api/internal/api"
	"github.com/ignite/newsletter-api/internal/config"
	"github.com/ignite/newsletter-api/internal/email"
	"github.com/ignite/newsletter-api/internal/newsletter"
	"github.com/ignite/newsletter-api/internal/repository/postgres"
	"github.com/ignite/newsletter-api/internal/subscription"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale/stub processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	slash := strings.Index(rest, "/")
	if slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	// Connect to PostgreSQL
	if cfg.Database.URL == "" {
		log.Fatal("No database configured (set database.url or DATABASE_URL)")
	}
	log.Printf("DB URL host portion: ...@%s/...", extractHost(cfg.Database.URL))
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime())

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		pingCancel()
		log.Fatalf("Database ping failed: %v", err)
	}
	pingCancel()
	log.Println("Database connected successfully")

	// Select the outbound email transport
	var sender email.Sender
	switch cfg.Email.Provider {
	case "ses":
		sesClient, err := email.NewSESClient(context.Background(), cfg.SES, cfg.Email)
		if err != nil {
			log.Fatalf("Failed to initialize SES client: %v", err)
		}
		sender = sesClient
		log.Printf("Email transport: SES (region: %s)", cfg.SES.Region)
	default:
		sender = email.NewRESTClient(cfg.Email)
		log.Printf("Email transport: REST API (%s)", cfg.Email.BaseURL)
	}

	templates, err := email.NewTemplates()
	if err != nil {
		log.Fatalf("Failed to parse email templates: %v", err)
	}
	gateway := email.NewGateway(sender, templates)

	// Wire services
	repo := postgres.NewSubscriptionRepo(db)
	subs := subscription.NewService(repo, gateway, nil, cfg.Application.BaseURL)
	publisher := newsletter.NewPublisher(repo, gateway)
	handlers := api.NewHandlers(subs, publisher)
	router := api.SetupRoutes(handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s (confirmation links use %s)", srv.Addr, cfg.Application.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("Server stopped")
}
