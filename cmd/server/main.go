package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos_order_backend/internal/config"
	"pos_order_backend/internal/database"
	"pos_order_backend/internal/repositories"
	"pos_order_backend/internal/router"
	"pos_order_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatalf("Failed to load environment file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orderRepo, closeStore, err := openOrderStore(ctx, cfg)
	if err != nil {
		utils.LogError(err, "Failed to initialize order store", map[string]interface{}{"driver": cfg.StoreDriver})
		os.Exit(1)
	}
	defer closeStore()
	utils.LogInfo("Order store initialized", map[string]interface{}{"driver": cfg.StoreDriver})

	engine := router.New(orderRepo, router.Options{
		Location:           cfg.ReportLocation,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PublicDir:          cfg.PublicDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "report_timezone": cfg.ReportLocation.String()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server shutdown failed")
	}
}

// openOrderStore connects the configured backend and returns its repository
// plus a function releasing the connection.
func openOrderStore(ctx context.Context, cfg *config.Config) (repositories.OrderRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := database.OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				utils.LogError(err, "Failed to disconnect MongoDB")
			}
		}
		repo, err := repositories.NewMongoOrderRepository(ctx, db)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	case config.DriverMemory:
		utils.LogWarn("Using in-memory order store, data is lost on restart")
		return repositories.NewMemoryOrderRepository(nil), func() {}, nil

	default:
		db, err := database.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				utils.LogError(err, "Failed to close PostgreSQL pool")
			}
		}
		return repositories.NewOrderRepository(db), closeFn, nil
	}
}
