// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clb2clb2/sgtri-desp/internal/config"
	httptransport "github.com/clb2clb2/sgtri-desp/internal/http"
	"github.com/clb2clb2/sgtri-desp/internal/http/handlers"
	"github.com/clb2clb2/sgtri-desp/internal/infra"
	"github.com/clb2clb2/sgtri-desp/internal/maps"
	"github.com/clb2clb2/sgtri-desp/internal/modules/rates"
	"github.com/clb2clb2/sgtri-desp/internal/modules/settlement"
	"github.com/clb2clb2/sgtri-desp/internal/modules/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ratesStore *rates.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		ratesStore = rates.NewStore(dbPool)
	}

	var ratesCache *rates.Cache
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		ratesCache = rates.NewCache(redisClient, time.Duration(cfg.Rates.CacheTTLSeconds)*time.Second)
	}

	ratesProvider := rates.NewProvider(ratesStore, ratesCache)
	if cfg.Rates.LegacyFile != "" {
		data, err := os.ReadFile(cfg.Rates.LegacyFile)
		if err != nil {
			log.Fatalf("rates file: %v", err)
		}
		tbl, err := rates.DecodeLegacy(data)
		if err != nil {
			log.Fatalf("rates file: %v", err)
		}
		ratesProvider.UseFallback(tbl)
	}

	settlementSvc := settlement.NewService(ratesProvider)
	summarySvc := summary.NewService(cfg.AI.GeminiKey)

	var route handlers.DistanceSource
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		route = routeSvc
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Settlement: settlementSvc,
		Summary:    summarySvc,
		Rates:      ratesProvider,
		Route:      route,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
