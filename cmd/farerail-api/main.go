// README: Entry point; loads config and the fare catalog, starts the HTTP server and the reload listener.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"farerail/internal/catalog"
	"farerail/internal/config"
	httptransport "farerail/internal/http"
	"farerail/internal/infra"
	"farerail/internal/logger"
	"farerail/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	writers := []io.Writer{logger.ConsoleWriter()}
	if cfg.Log.File != "" {
		writers = append(writers, logger.FileWriter(cfg.Log.File))
	}
	appLog := logger.New(logger.ParseLevel(cfg.Log.Level), writers...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var loader catalog.Loader
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		loader = catalog.NewPostgresLoader(dbPool)
	default:
		loader = catalog.FileLoader{Path: cfg.Source.DataFile}
	}

	holder := catalog.NewHolder()
	snap, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	version := holder.Swap(snap)
	appLog.Info("catalog loaded",
		"version", version,
		"source", snap.Source,
		"stations", snap.Stations.Len(),
		"fares", snap.Fares.Len(),
	)
	if n := snap.Fares.Inverted(); n > 0 {
		appLog.Warn("fare matrix has sjt below svc", "pairs", n)
	}

	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
		reloader := catalog.NewReloader(loader, holder, redisClient, cfg.Redis.ReloadChannel, appLog)
		go reloader.Run(ctx)
	}

	pricingSvc := pricing.NewService(holder, pricing.NewStore(cfg.Pricing.QuoteCacheSize))

	gin.SetMode(gin.ReleaseMode)
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Catalog:     holder,
		Pricing:     pricingSvc,
		Logger:      appLog,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.Error("http shutdown", "error", err)
		}
	}()

	appLog.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
