package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/vision-analyzer/internal/application"
	appanalysis "github.com/bryanwahyu/vision-analyzer/internal/application/analysis"
	"github.com/bryanwahyu/vision-analyzer/internal/config"
	domain "github.com/bryanwahyu/vision-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/history"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/usage"
	aiopenai "github.com/bryanwahyu/vision-analyzer/internal/infra/ai/openai"
	"github.com/bryanwahyu/vision-analyzer/internal/infra/auth"
	"github.com/bryanwahyu/vision-analyzer/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/vision-analyzer/internal/infra/storage"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.Auth.JWKSURL == "" {
		log.Fatal("auth.jwksURL (or CLERK_JWKS_URL) is required")
	}
	if cfg.OpenAI.APIKey == "" {
		log.Fatal("openai.apiKey (or OPENAI_API_KEY) is required")
	}

	ctx := context.Background()

	// init verifier
	verifier := auth.NewJWKSVerifier(cfg.Auth.JWKSURL)

	// init vision client
	describer := aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// init optional archive
	var archive domain.Archiver
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		archive = store
	}

	// init service
	svc := &appanalysis.Service{
		Ledger:          usage.NewLedger(cfg.Quota.FreeLimit),
		History:         history.NewLog(cfg.Quota.HistoryLimit),
		Describer:       describer,
		Archive:         archive,
		Clock:           application.SystemClock{},
		DescribeTimeout: cfg.DescribeTimeout(),
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	mux.Mount("/", httpserver.NewRouter(svc, verifier))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
