package main

import (
	"asura/tracker/internal/api"
	"asura/tracker/internal/config"
	"asura/tracker/internal/repository"
	"asura/tracker/internal/repository/memory"
	"asura/tracker/internal/repository/mongo"
	"asura/tracker/internal/repository/postgres"
	"asura/tracker/internal/seed"
	"asura/tracker/internal/service"
	"asura/tracker/internal/storage"
	"asura/tracker/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// backend bundles the repositories of one database driver with its cleanup.
type backend struct {
	users  repository.UserRepository
	states repository.StateRepository
	close  func()
}

func openBackend(ctx context.Context, cfg config.DatabaseConfig, log logrus.FieldLogger) (*backend, error) {
	switch cfg.Driver {
	case "mongo", "":
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Name)
		go func() { // Run index creation in the background
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(ctx, db); err != nil {
				log.WithError(err).Warn("ensure indexes")
			}
		}()
		return &backend{
			users:  mongo.NewMongoUserRepository(db),
			states: mongo.NewMongoStateRepository(db),
			close: func() {
				if err := mongo.DisconnectDB(client); err != nil {
					log.WithError(err).Error("disconnect mongo")
				}
			},
		}, nil
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &backend{
			users:  postgres.NewUserRepository(pool),
			states: postgres.NewStateRepository(pool),
			close:  pool.Close,
		}, nil
	case "memory":
		log.Warn("using in-memory storage; data is lost on exit")
		return &backend{
			users:  memory.NewUserRepository(),
			states: memory.NewStateRepository(),
			close:  func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("Configuration loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := openBackend(ctx, cfg.Database, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Could not open database")
	}
	defer db.close()
	log.WithField("driver", cfg.Database.Driver).Info("Database connection established")

	for _, o := range cfg.Seed.Overrides {
		if _, err := seed.Load(o.Profile); err != nil {
			log.WithError(err).WithField("email", o.Email).Fatal("Invalid seed override")
		}
	}
	if _, err := seed.Load(cfg.Seed.Profile); err != nil {
		log.WithError(err).Fatal("Invalid seed profile")
	}

	var snapshots storage.SnapshotStorage
	if cfg.S3.Enabled() {
		snapshots, err = storage.NewS3Storage(context.Background(), cfg.S3, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize S3 storage")
		}
	} else {
		log.Info("S3 not configured; state export disabled")
	}

	selector := seed.Selector{Default: cfg.Seed.Profile, Overrides: cfg.Seed.OverrideMap()}
	authService := service.NewAuthService(db.users, db.states, selector, cfg.JWT.Secret, cfg.JWT.Expiration)
	stateService := service.NewStateService(db.states, snapshots)

	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.JWT.Secret, authService, stateService, log)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      c.Handler(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("address", cfg.Server.Address).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exiting")
}
