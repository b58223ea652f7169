package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/kerjahub/mea-go/internal/config"
	"github.com/kerjahub/mea-go/internal/handler"
	"github.com/kerjahub/mea-go/internal/keystore"
	authmw "github.com/kerjahub/mea-go/internal/middleware"
	"github.com/kerjahub/mea-go/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for mobile and web clients",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	store, err := keystore.Open(cfg.KeystorePath)
	if err != nil {
		return fmt.Errorf("open key store: %w", err)
	}

	// First run: no keys yet, walk the operator through issuing one.
	if cfg.AuthEnabled && store.Count() == 0 {
		if err := firstRunSetup(store); err != nil {
			return fmt.Errorf("first-run key setup: %w", err)
		}
	}

	engine := service.NewEngineClient(cfg.EngineURL, cfg.EngineTimeout())
	if err := engine.Ping(cmd.Context()); err != nil {
		slog.Error("engine check failed", "error", err, "engine_url", cfg.EngineURL)
		fmt.Fprintln(os.Stderr, "💡 Make sure the llama.cpp server is running and finished loading its model.")
		os.Exit(1)
	}

	modelID := modelFlag
	if modelID == "" {
		modelID = cfg.ModelID
	}

	// The HTTP API keeps the terminal transcript off.
	assistant := service.NewAssistant(engine, modelID, nil)
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiryHours)

	authHandler := handler.NewAuthHandler(store, authSvc)
	assistantHandler := handler.NewAssistantHandler(assistant)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Health check (no auth required)
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := engine.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"unhealthy","error":%q}`, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	// Token issuance (authenticated by the API key in the body)
	r.Post("/v1/auth/token", authHandler.Token)

	// Protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(store, authSvc, cfg.AuthEnabled))

		r.Post("/v1/chat", assistantHandler.Chat)
		r.Post("/v1/working-hours", assistantHandler.WorkingHours)
		r.Post("/v1/salary", assistantHandler.Salary)
		r.Post("/v1/expenses", assistantHandler.Expenses)
		r.Get("/v1/rights", assistantHandler.Rights)
	})

	slog.Info("starting server",
		"addr", cfg.Addr(),
		"network_url", fmt.Sprintf("http://%s:%s", localIP(), cfg.APIPort),
		"model_id", modelID,
		"auth_enabled", cfg.AuthEnabled,
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("shutting down server...")

	cancelCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(cancelCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// firstRunSetup interactively issues the first API key and prints it
// once, mirroring the original server's first-time setup.
func firstRunSetup(store *keystore.Store) error {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("🔑 FIRST TIME SETUP - API KEY GENERATION")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("\nNo API keys found. Let's create one!")

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("\nEnter a name for your API key (e.g., 'Flutter App'): ")
	name, _ := reader.ReadString('\n')
	fmt.Print("Enter description (optional): ")
	description, _ := reader.ReadString('\n')

	plaintext, _, err := store.Issue(strings.TrimSpace(name), strings.TrimSpace(description))
	if err != nil {
		return err
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("✅ API KEY GENERATED!")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\nYour API Key: %s\n", plaintext)
	fmt.Println("\n⚠️  IMPORTANT:")
	fmt.Println("1. Save this key securely - it will not be shown again!")
	fmt.Println("2. Add it to your client:")
	fmt.Printf("   apiKey: '%s'\n", plaintext)
	fmt.Printf("3. Only a hash of this key is kept in %s\n", store.Path())
	fmt.Println("\n" + strings.Repeat("=", 60))
	return nil
}

// localIP discovers the outbound interface address for the "reachable
// on your network at" hint. Falls back to localhost offline.
func localIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "localhost"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
