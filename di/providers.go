package di

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"arcade/config"
	stationModel "arcade/internal/domains/station/model"
	stationService "arcade/internal/domains/station/service"
	"arcade/internal/domains/station/state"
	"arcade/shared/cache"
	"arcade/shared/clock"
)

func ProvideClock() clock.Clock {
	return clock.System()
}

// ProvideFloor builds the in-memory floor from config. Rates edited at runtime
// are kept in redis and win over the configured values, so a restart does not
// silently roll a price change back.
func ProvideFloor(cfg *config.Config, redisCache cache.RedisCache, clk clock.Clock) *state.Floor {
	rooms := stationModel.DefaultLayout()

	if len(cfg.Station.Layout) > 0 {
		parsed, err := stationModel.ParseLayout(cfg.Station.Layout)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid station layout configuration")
		}

		rooms = parsed
	}

	rates := stationModel.DefaultRates()

	if cfg.Station.Rates.PS5 > 0 {
		rates[stationModel.CategoryPS5] = cfg.Station.Rates.PS5
	}

	if cfg.Station.Rates.PS4 > 0 {
		rates[stationModel.CategoryPS4] = cfg.Station.Rates.PS4
	}

	if cfg.Station.Rates.Billiards > 0 {
		rates[stationModel.CategoryBilliards] = cfg.Station.Rates.Billiards
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	saved := stationModel.RateTable{}
	if err := redisCache.Get(ctx, stationService.CacheRates, &saved); err == nil {
		for _, category := range stationModel.Categories() {
			if saved[category] > 0 {
				rates[category] = saved[category]
			}
		}

		log.Info().Msg("Restored rate table from cache")
	}

	floor, err := state.NewFloor(rooms, rates, clk)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to provision station floor")
	}

	return floor
}
