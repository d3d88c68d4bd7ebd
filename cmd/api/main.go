package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"reviewshelf/internal/catalog"
	apphttp "reviewshelf/internal/http"
	"reviewshelf/internal/httpx"
	"reviewshelf/internal/platform/googlebooks"
	"reviewshelf/internal/ranking"
	"reviewshelf/internal/review"
	"reviewshelf/internal/storage"
	"reviewshelf/internal/topbooks"
)

func main() {
	_ = godotenv.Load(".env.local")

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		log = log.Level(level)
	}

	serverAddress := getEnv("APP_ADDR", ":8080")
	storageDriver := getEnv("STORAGE_DRIVER", "badger")
	catalogURL := getEnv("GOOGLE_BOOKS_URL", googlebooks.DefaultBaseURL)
	rps := getEnvInt("HTTP_RPS", 10)
	burst := getEnvInt("HTTP_BURST", 20)

	kv, cleanup := openStorage(log, storageDriver)
	defer cleanup()

	reviewStore := review.NewStore(kv, log)
	rankingEngine := ranking.NewEngine(kv, log)
	bookCache := catalog.NewCache(kv, log)
	books := googlebooks.NewClient(catalogURL, "reviewshelf/1.0", 5, 3)
	resolver := topbooks.NewResolver(rankingEngine, bookCache, books, log)

	reviewHandler := apphttp.NewReviewHandler(reviewStore)
	bookHandler := apphttp.NewBookHandler(books)
	topBooksHandler := apphttp.NewTopBooksHandler(resolver)

	router := apphttp.NewRouter(reviewHandler, bookHandler, topBooksHandler)

	rateLimit := httpx.NewRateLimitMiddleware(float64(rps), burst)
	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		handler = httpx.CORSMiddleware(strings.Split(origins, ","))(handler)
	}
	handler = rateLimit.Middleware(handler)
	handler = httpx.RecoveryMiddleware(log)(handler)
	handler = httpx.AccessLogMiddleware(log)(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", serverAddress).Str("storage", storageDriver).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// openStorage picks the KV backend. A missing or broken medium degrades
// to the unavailable backend so the service keeps answering with empty
// data instead of refusing to start.
func openStorage(log zerolog.Logger, driver string) (storage.KV, func()) {
	switch driver {
	case "postgres":
		dsn := mustGetEnv(log, "DB_DSN")
		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Error().Err(err).Msg("cannot create db pool, storage unavailable")
			return storage.Unavailable{}, func() {}
		}
		pg := storage.NewPostgres(pool)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error().Err(err).Msg("cannot prepare kv schema, storage unavailable")
			pool.Close()
			return storage.Unavailable{}, func() {}
		}
		return pg, pool.Close
	case "memory":
		return storage.NewMemory(), func() {}
	default:
		dir := getEnv("BADGER_DIR", "data/reviewshelf")
		db, err := storage.OpenBadger(dir)
		if err != nil {
			log.Error().Err(err).Str("dir", dir).Msg("cannot open badger, storage unavailable")
			return storage.Unavailable{}, func() {}
		}
		return db, func() { _ = db.Close() }
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func mustGetEnv(log zerolog.Logger, key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatal().Str("key", key).Msg("missing required environment variable")
	}
	return v
}
