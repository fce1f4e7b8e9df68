package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"oppintel-engine/internal/config"
	"oppintel-engine/internal/domain"
	"oppintel-engine/internal/events"
	"oppintel-engine/internal/feeds"
	"oppintel-engine/internal/httpapi"
	"oppintel-engine/internal/pipeline"
	"oppintel-engine/internal/poll"
	"oppintel-engine/internal/secrets"
	"oppintel-engine/internal/store"
	"oppintel-engine/internal/structure"
	"oppintel-engine/internal/util"
)

func main() {
	dataDir := os.Getenv("OPPINTEL_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine process per data dir; a second one would double-poll the
	// feeds and race the dedup check.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("acquire process lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already holds %s", lock.Path())
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		cfg, vr := config.NormalizeAndValidate(cfg)
		if !vr.OK() {
			return cfg, fmt.Errorf("invalid config: %v", vr.Errors)
		}
		for _, warn := range vr.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(os.Getenv("DATABASE_URL"), dataDir)
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatalf("store migrate failed: %v", err)
	}
	log.Printf("[store] connected driver=%s", db.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Structuring is optional: without a key the pipeline runs in
	// classifier-fallback mode.
	var structurer structure.Structurer
	if cfg.Structuring.Enabled {
		key, kerr := secrets.GeminiAPIKey(cfg.Structuring.KeyringAccount)
		if kerr != nil {
			log.Printf("[structure] disabled: %v", kerr)
		} else {
			gem, gerr := structure.NewGemini(ctx, key, cfg.Structuring.Model)
			if gerr != nil {
				log.Fatalf("structure client failed: %v", gerr)
			}
			defer gem.Close()
			structurer = gem
		}
	}

	hub := events.NewHub()

	runner := func(ctx context.Context) (pipeline.Summary, error) {
		cur := cfgVal.Load().(config.Config)
		// Run-local limiter, rebuilt from config so a reload takes effect
		// on the next run.
		limiter := util.NewHostLimiter(cur.FeedRate(), 2)
		sources := make([]domain.Source, 0, len(cur.Sources))
		for _, s := range cur.Sources {
			sources = append(sources, domain.Source{University: s.University, URL: s.URL})
		}
		return pipeline.Run(ctx, pipeline.Deps{
			Sources:    sources,
			Feeds:      feeds.New(limiter, cur.Feeds.MaxEntriesPerSource),
			Structurer: structurer,
			CallBudget: cur.Structuring.CallBudget,
			Backoff:    cur.Backoff(),
			Store:      db,
			OnInsert: func() {
				hub.Publish(events.MakeEvent("", "opportunity_created", nil))
			},
		})
	}

	poller := poll.New(hub, runner)
	poller.Start(ctx, cfg.PollInterval())

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:               hub,
		CfgVal:            &cfgVal,
		UserCfgPath:       userCfgPath,
		LoadCfg:           loadCfg,
		ListOpportunities: db.List,
		RunNow:            poller.Execute,
		RunStatus:         poller.Status,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.AccessLog, httpapi.Recover, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("engine listening on %s (db=%s)", addr, db.Driver)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
