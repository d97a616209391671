package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"walk-route-service/internal/adapters/cache"
	"walk-route-service/internal/adapters/routing"
	"walk-route-service/internal/api"
	"walk-route-service/internal/config"
	"walk-route-service/internal/platform/db"
	"walk-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres caches, optional Redis, ORS)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	ttl := time.Duration(config.GetInt("ISOCHRONE_TTL_HOURS", 24)) * time.Hour

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	// Provider caches live in Postgres when DATABASE_URL is set, otherwise in
	// a local SQLite file.
	var (
		geoCache routing.GeocodeCache
		isoCache routing.IsochroneCache
	)

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := cache.InitSchema(pg); err != nil {
			log.Fatal(err)
		}

		geoCache = cache.NewSQLGeocodeCache(pg)
		isoCache = cache.NewSQLIsochroneCache(pg, ttl)
	} else {
		dbPath := config.Get("DB_PATH", "data/app.db")

		local, err := db.OpenSQLite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer local.Close()

		if err := cache.InitSchema(local); err != nil {
			log.Fatal(err)
		}

		geoCache = cache.NewSqliteGeocodeCache(local)
		isoCache = cache.NewSqliteIsochroneCache(local, ttl)
	}

	// REDIS_ADDR moves the isochrone cache to Redis, where key TTLs handle
	// expiry without a prune pass.
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}

		isoCache = cache.NewRedisIsochroneCache(client, ttl)
		log.Printf("Isochrone cache backed by redis addr=%s", addr)
	}

	provider, err := routing.NewORSProvider(orsKey, isoCache, geoCache)
	if err != nil {
		log.Fatal(err)
	}

	sessions := services.NewSessionStore()
	router := api.NewRouter(provider, provider, provider, sessions)

	// Timeouts are tuned for cold-cache route generation (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
