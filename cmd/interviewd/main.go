package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mockstage/interview-engine/internal/archive"
	"github.com/mockstage/interview-engine/internal/config"
	"github.com/mockstage/interview-engine/internal/controller"
	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/store"
)

// #region main

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	gen := buildGenerator(cfg)

	sessions, closeStore, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer closeStore()

	arch, err := archive.New(cfg.Archive.Path)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer arch.Close()

	ctrl := controller.New(gen, sessions, arch, controller.Config{
		MaxQuestions: cfg.Session.MaxQuestions,
		SessionTTL:   cfg.SessionTTL(),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      controller.NewHandler(ctrl),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.GenerationTimeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[MAIN] listening on %s (archive=%s, store=%s)",
			cfg.Server.Addr, cfg.Archive.Path, cfg.Session.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[MAIN] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[MAIN] shutdown: %v", err)
	}
}

// #endregion

// #region wiring

// buildGenerator prefers a live endpoint; without an API key it falls back to
// a scripted stub so local runs still exercise the full pipeline.
func buildGenerator(cfg config.Config) genai.Client {
	if cfg.Generation.APIKey == "" {
		log.Println("[MAIN] no API key configured, using stub generator (all responses empty)")
		return genai.NewScripted()
	}
	oc := genai.DefaultOpenAIConfig()
	oc.APIKey = cfg.Generation.APIKey
	oc.Model = cfg.Generation.Model
	oc.MaxTokens = cfg.Generation.MaxTokens
	oc.Temperature = cfg.Generation.Temperature
	oc.Timeout = cfg.GenerationTimeout()
	if cfg.Generation.BaseURL != "" {
		oc.BaseURL = cfg.Generation.BaseURL
	}
	return genai.NewOpenAIClient(oc)
}

func buildStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.Session.StoreBackend {
	case "sqlite":
		s, err := store.NewSQLite(cfg.Session.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}

// #endregion
