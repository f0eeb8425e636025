package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "backoffice/internal/config"
	router "backoffice/internal/http"
	"backoffice/internal/http/handlers"
	"backoffice/internal/repositories"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := intconfig.Open(ctx, env)
	if err != nil {
		cancel()
		log.Fatalf("failed to open store: %v", err)
	}
	stores, err := openStores(ctx, store)
	cancel()
	if err != nil {
		_ = store.Close(context.Background())
		log.Fatalf("failed to prepare store: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("warning: closing store: %v", err)
		}
	}()

	opts := services.Options{
		ReferencePrefix:  env.ReferencePrefix,
		ReferenceRetries: env.ReferenceRetries,
		Auth: services.AuthService{
			Secret:       []byte(env.AuthSecret),
			Username:     env.OperatorUsername,
			PasswordHash: env.OperatorPasswordHash,
		},
	}
	if store.Redis != nil {
		opts.Cache = services.RedisBookingCache{Client: store.Redis, TTL: env.CacheTTL}
	}
	if !env.AuthEnabled() {
		log.Println("warning: AUTH_SECRET not set, write routes are open")
	}

	h := handlers.Handler{Services: services.New(stores, opts), Ping: store.Ping}
	r := router.NewRouter(env, h)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown failed: %v", err)
	}

	log.Println("Server stopped.")
}

// openStores binds the repositories to the open connection and makes sure
// the indexes or tables they rely on exist.
func openStores(ctx context.Context, h *intconfig.Handle) (repositories.Stores, error) {
	switch h.Driver {
	case intconfig.DriverMemory:
		return repositories.NewMemoryStores(), nil
	case intconfig.DriverMySQL:
		if err := repositories.EnsureMySQLSchema(ctx, h.SQL); err != nil {
			return repositories.Stores{}, err
		}
		return repositories.NewMySQLStores(h.SQL), nil
	default:
		if err := repositories.EnsureMongoIndexes(ctx, h.Mongo); err != nil {
			return repositories.Stores{}, err
		}
		return repositories.NewMongoStores(h.Mongo), nil
	}
}
