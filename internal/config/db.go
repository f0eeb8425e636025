package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handle owns the store connections for the process lifetime. Mongo or SQL is
// set depending on Env.StoreDriver; neither is for the memory driver. Redis is
// optional.
type Handle struct {
	Driver string
	Mongo  *mongo.Database
	SQL    *sql.DB
	Redis  *redis.Client

	mongoClient *mongo.Client
}

// Open connects to the configured store and pings it.
func Open(ctx context.Context, env Env) (*Handle, error) {
	h := &Handle{Driver: env.StoreDriver}

	switch env.StoreDriver {
	case DriverMemory:
	case DriverMySQL:
		db, err := sql.Open("mysql", env.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(10 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
		h.SQL = db
	default:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(env.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		h.mongoClient = client
		h.Mongo = client.Database(env.MongoDB)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := h.Ping(pingCtx); err != nil {
		_ = h.Close(context.Background())
		return nil, err
	}

	if env.RedisURL != "" {
		h.Redis = redis.NewClient(&redis.Options{Addr: env.RedisURL, DB: 0})
		if err := h.Redis.Ping(pingCtx).Err(); err != nil {
			// the cache is optional; run without it
			log.Printf("warning: redis unavailable at %s, cache disabled: %v", env.RedisURL, err)
			_ = h.Redis.Close()
			h.Redis = nil
		} else {
			log.Printf("Connected to Redis at %s", env.RedisURL)
		}
	}

	log.Printf("Connected to %s store", h.Driver)
	return h, nil
}

// Ping checks the primary store.
func (h *Handle) Ping(ctx context.Context) error {
	switch {
	case h == nil:
		return fmt.Errorf("store not initialized")
	case h.Driver == DriverMemory:
		return nil
	case h.SQL != nil:
		if err := h.SQL.PingContext(ctx); err != nil {
			return fmt.Errorf("ping mysql: %w", err)
		}
	case h.mongoClient != nil:
		if err := h.mongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("ping mongo: %w", err)
		}
	default:
		return fmt.Errorf("store not initialized")
	}
	return nil
}

// Close releases every connection. Safe to call more than once.
func (h *Handle) Close(ctx context.Context) error {
	if h == nil {
		return nil
	}
	var firstErr error
	if h.Redis != nil {
		if err := h.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		h.Redis = nil
	}
	if h.SQL != nil {
		if err := h.SQL.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		h.SQL = nil
	}
	if h.mongoClient != nil {
		if err := h.mongoClient.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		h.mongoClient = nil
		h.Mongo = nil
	}
	return firstErr
}
