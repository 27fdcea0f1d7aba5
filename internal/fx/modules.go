package fx

import (
	"time"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/cache"
	"cs2-tracker/internal/config"
	"cs2-tracker/internal/logger"
	"cs2-tracker/internal/server"
	"cs2-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideRankingCache(svc *service.RankingService, cfg *config.Config, timeout service.CallTimeout, logger zerolog.Logger) *cache.Rankings {
	return cache.NewRankings(svc, cfg.RankingCacheSize, cfg.RankingCacheTTL, time.Duration(timeout), logger)
}

func ProvideTrackerServer(tracker *service.TrackerService, rankings *cache.Rankings, logger zerolog.Logger) *server.TrackerServer {
	return server.NewTrackerServer(tracker, rankings, logger)
}

// CoreModule wires configuration, upstream clients and services.
var CoreModule = fx.Options(
	logger.Module,
	config.Module,
	// api clients
	fx.Provide(fx.Annotate(api.NewFaceitClient, fx.As(new(service.FaceitAPI)))),
	fx.Provide(fx.Annotate(api.NewSteamClient, fx.As(new(service.SteamAPI)))),
	// svc
	fx.Provide(service.NewCallTimeout),
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewRankingService),
	fx.Provide(service.NewProfileService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewTrackerService),
	fx.Provide(ProvideRankingCache),
)

var Module = fx.Options(
	CoreModule,
	// server
	fx.Provide(ProvideTrackerServer),
)
