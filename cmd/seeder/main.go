package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travelgo/internal/adapters/feed"
	"travelgo/internal/adapters/observability"
	redisad "travelgo/internal/adapters/redis"
	"travelgo/internal/app"
	"travelgo/internal/shared"
	mysqlrepo "travelgo/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.FeedBase).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := feed.New(cfg.FeedBase, cfg.FeedKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize feed client")
	}
	cache := redisad.New(redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
	seeder := app.NewSeedService(client, repo, cache)

	ids, err := client.ListActivityIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list feed activity ids")
	}
	log.Info().Int("count", len(ids)).Msg("feed ids fetched")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range ids {
		id := id

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(activityID int64) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := seeder.SeedActivity(ctx, activityID); err != nil {
				log.Warn().Int64("id", activityID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", activityID).Msg("seed ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
