package service

import (
	"context"
	"errors"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/domain"
)

// FaceitAPI is the subset of the FACEIT Data API the services read.
type FaceitAPI interface {
	GetRankings(ctx context.Context, region string, limit, offset int) (*api.RankingsResponse, error)
	GetPlayerRanking(ctx context.Context, region, playerID, country string) (*api.RankingsResponse, error)
	GetPlayerByNickname(ctx context.Context, nickname string) (*api.PlayerResponse, error)
	GetPlayerByGameID(ctx context.Context, gamePlayerID string) (*api.PlayerResponse, error)
	GetMatchStats(ctx context.Context, playerID string, limit, offset int) (*api.MatchStatsResponse, error)
	GetLifetimeStats(ctx context.Context, playerID string) (*api.LifetimeStatsResponse, error)
}

// SteamAPI is the subset of the Steam Web API used for identifier resolution.
type SteamAPI interface {
	ResolveVanityURL(ctx context.Context, vanity string) (*api.VanityResponse, error)
	GetPlayerSummaries(ctx context.Context, steamID string) (*api.PlayerSummariesResponse, error)
}

// lookupError maps an upstream 404 to ErrNotFound and everything else to a
// TransportError.
func lookupError(op string, err error) error {
	if errors.Is(err, api.ErrNotFound) {
		return domain.ErrNotFound
	}
	return domain.NewTransportError(op, err)
}
