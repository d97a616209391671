package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"
	"walk-route-service/internal/adapters/cache"
	"walk-route-service/internal/config"
	"walk-route-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool initializes the cache schema in Postgres and prunes isochrone rows
// older than the TTL. Run it once at deploy time and then on a schedule.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing cache schema...")
	if err := cache.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	ttl := time.Duration(config.GetInt("ISOCHRONE_TTL_HOURS", 24)) * time.Hour
	cutoff := time.Now().Add(-ttl)

	log.Printf("Pruning isochrones fetched before %s...", cutoff.Format(time.RFC3339))
	pruned, err := cache.PruneExpiredIsochrones(context.Background(), conn, cutoff)
	if err != nil {
		log.Fatalf("prune failed: %v", err)
	}
	log.Printf("Pruned %d isochrone rows.", pruned)
}
