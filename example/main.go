package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aadithya-v/yore"
	"github.com/aadithya-v/yore/store"
	"github.com/joho/godotenv"
)

// sampleHistory is a short walk through Ipswich, one fix every three minutes.
var sampleHistory = []yore.Fix{
	{TimestampMS: 1498358400000, LatitudeE7: 520796733, LongitudeE7: 11965831, Accuracy: 18},
	{TimestampMS: 1498358580000, LatitudeE7: 520567467, LongitudeE7: 11485831, Accuracy: 20},
	{TimestampMS: 1498358760000, LatitudeE7: 520512301, LongitudeE7: 11377210, Accuracy: 25},
	{TimestampMS: 1498358940000, LatitudeE7: 520481022, LongitudeE7: 11297514, Accuracy: 12},
}

// Usage:
//
//	go run ./example 1498358500 1498358700:IMG_0001.jpg
//
// Each argument is a photo timestamp in seconds, optionally followed by the
// path of the photo to tag with the suggested location.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	fixStore, err := openStore(getEnv("STORE", "sqlite"))
	if err != nil {
		log.Fatalf("Failed to open fix store: %v", err)
	}

	// Option 1: Zero-config
	// Leaving FixStore nil creates yore.db in the current directory.
	// Option 2: Any store.FixStore, e.g. MySQL or Redis shared by several processes.
	y, err := yore.New(yore.Config{
		FixStore:       fixStore,
		Interpolate:    getEnv("INTERPOLATE", "true") == "true",
		ReloadInterval: 30 * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Yore: %v", err)
	}
	defer y.Close()

	if y.History().Len() == 0 {
		if err := y.LoadHistory(sampleHistory); err != nil {
			log.Fatalf("Failed to load sample history: %v", err)
		}
	}

	if first, last, ok := y.History().Bounds(); ok {
		fmt.Printf("History covers %s to %s (%d fixes)\n",
			time.UnixMilli(first.TimestampMS).UTC().Format(time.RFC3339),
			time.UnixMilli(last.TimestampMS).UTC().Format(time.RFC3339),
			y.History().Len())
	}

	if dir := os.Getenv("PHOTO_DIR"); dir != "" {
		photos, err := yore.FindJPEGs(dir)
		if err != nil {
			log.Fatalf("Failed to list photos: %v", err)
		}
		fmt.Printf("Found %d photos in %s\n", len(photos), dir)
		for _, photo := range photos {
			fmt.Printf("  %s\n", photo)
		}
	}

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"1498358400", "1498358500", "1498358850", "1498359000"}
	}

	for _, arg := range args {
		timestampArg, photoPath, _ := strings.Cut(arg, ":")

		timestamp, err := strconv.ParseInt(timestampArg, 10, 64)
		if err != nil {
			log.Printf("Skipping %q: %v", arg, err)
			continue
		}

		loc := y.Suggest(timestamp, nil)
		if loc.Kind != yore.LocationSuggested {
			fmt.Printf("%d: no suggestion\n", timestamp)
			continue
		}

		fmt.Printf("%d: %s\n", timestamp, loc.Coordinates)
		fmt.Printf("  accuracy: %s\n", loc.Accuracy)
		fmt.Printf("  map:      %s\n", loc.Coordinates.MapURL())

		if photoPath != "" {
			if err := yore.WriteCoordinates(context.Background(), photoPath, loc.Coordinates); err != nil {
				log.Printf("Failed to tag %s: %v", photoPath, err)
				continue
			}
			fmt.Printf("  saved to: %s\n", photoPath)
		}
	}
}

func openStore(kind string) (store.FixStore, error) {
	switch kind {
	case "sqlite":
		return store.NewSQLite(getEnv("DATABASE_PATH", "yore.db"))
	case "mysql":
		return store.NewMySQLFromDSN(getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/yore"))
	case "redis":
		db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		return store.NewRedisFromConfig(store.RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       db,
		})
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE %q (want sqlite, mysql, redis or memory)", kind)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
