package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	"roastedin/api/router"
	"roastedin/cache"
	"roastedin/config"
	"roastedin/db"
	"roastedin/eventbus"
	"roastedin/logger"
	"roastedin/quota"
	"roastedin/repositories"
	"roastedin/services"
	"roastedin/session"
)

// @title           RoastedIn API
// @version         1.0
// @description     API for roasting LinkedIn profiles
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	roastCache, err := cache.New(cfg.RoastCache)
	if err != nil {
		log.Fatal(err)
	}

	var bus eventbus.EventBus
	if cfg.Kafka.Enabled {
		kbus, err := eventbus.NewKafkaEventBus(eventbus.GetBrokers())
		if err != nil {
			log.Fatal(err)
		}
		defer kbus.Close()
		bus = kbus
	}

	sessions := session.NewManager(cfg)
	defer sessions.Close()

	svc := services.NewRoastService(
		cfg,
		sessions,
		repositories.NewRoastRepository(db.Database()),
		repositories.NewProfileSnapshotRepository(db.Database()),
		repositories.NewAILogRepository(db.Database()),
		quota.NewRoastQuotaLimiterFromConfig(cfg),
		roastCache,
		bus,
	)

	r := router.New(svc)

	// gin 엔진을 http.Handler 로 감싸 CORS 를 바깥에서 처리한다.
	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}).Handler(r)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: handler,
	}

	go func() {
		logger.Log.Info("listening on :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Log.Warnf("server shutdown: %v", err)
	}
}
