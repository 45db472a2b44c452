// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/coralstore-backend/internal/config"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
	"github.com/your-org/coralstore-backend/internal/domain/checkout"
	"github.com/your-org/coralstore-backend/internal/domain/order"
	"github.com/your-org/coralstore-backend/internal/infrastructure/cms"
	"github.com/your-org/coralstore-backend/internal/infrastructure/redis"
	"github.com/your-org/coralstore-backend/internal/infrastructure/square"
	"github.com/your-org/coralstore-backend/internal/interfaces/http"
	"github.com/your-org/coralstore-backend/internal/interfaces/http/routes"
	"github.com/your-org/coralstore-backend/internal/pkg/email"
	"github.com/your-org/coralstore-backend/internal/pkg/logger"
	"github.com/your-org/coralstore-backend/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to Redis. The store runs without it; caching and rate
	// limiting just switch off.
	var rdb *goredis.Client
	redisConn, err := redis.NewConnection(cfg)
	if err != nil {
		appLog.WithError(err).Warn("Redis unavailable, running without cache")
	} else {
		defer redisConn.Close()
		rdb = redisConn.GetClient()
	}

	// Infrastructure clients
	cmsClient := cms.NewClient(cfg)
	squareClient := square.NewClient(cfg)

	// Domain services
	catalogService := catalog.NewService(cmsClient, rdb, appLog)
	emailService := email.NewService(cfg)
	pdfService := pdf.NewService(cfg)
	checkoutService := checkout.NewService(catalogService, squareClient, emailService, cfg, appLog)
	orderService := order.NewService(squareClient, appLog)

	server := http.NewServer(cfg, appLog, rdb, routes.Services{
		Catalog:  catalogService,
		Checkout: checkoutService,
		Order:    orderService,
		PDF:      pdfService,
	})

	go func() {
		if err := server.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	appLog.Info("Server shutdown completed")
}
