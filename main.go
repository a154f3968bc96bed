package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	miniocredentials "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/01100100/kreuzungen/overpass"
	"github.com/01100100/kreuzungen/stash"
	"github.com/01100100/kreuzungen/strava"
	"github.com/01100100/kreuzungen/tokens"
	"github.com/01100100/kreuzungen/waterways"
	"github.com/01100100/kreuzungen/webhookd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if os.Getenv("APP_ENV") == "development" {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	err := godotenv.Load(".env", ".env.local")
	if err != nil {
		slog.Info("no dotenv", "err", err)
	}

	redisOpts, err := redis.ParseURL(mustGetEnv("REDIS_URL"))
	if err != nil {
		log.Fatal(err)
	}
	rdb := redis.NewClient(redisOpts)

	db, err := stash.Connect(ctx, mustGetEnv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var mc *minio.Client
	if minioEndpoint := os.Getenv("MINIO_ENDPOINT"); minioEndpoint != "" {
		mc, err = minio.New(minioEndpoint, &minio.Options{
			Creds: miniocredentials.NewStaticV4(
				mustGetEnv("MINIO_ACCESS_KEY"), mustGetEnv("MINIO_SECRET_KEY"), ""),
			Secure: true,
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	var cfg waterways.Config
	if v := os.Getenv("KREUZUNGEN_BBOX_AREA_LIMIT"); v != "" {
		cfg.BBoxAreaLimit, err = strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatal("KREUZUNGEN_BBOX_AREA_LIMIT must be a number")
		}
	}

	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "https://kreuzungen.world"
	}
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "kreuzungen-routes"
	}

	server := &webhookd.Server{
		Deps: webhookd.Deps{
			Strava:   strava.New("", mustGetEnv("AUTH_URL")),
			Tokens:   tokens.New(rdb),
			Overpass: overpass.New(os.Getenv("OVERPASS_ENDPOINT")),
			Config:   cfg,
		},
		VerifyToken: mustGetEnv("WEBHOOK_VERIFY_TOKEN"),
		Routes:      stash.New(db, mc, bucket, baseURL),
	}

	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := server.Serve(ctx, host+":"+port); err != nil {
		log.Fatal(err)
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s not set", key)
	}
	return value
}
