package service

import (
	"context"
	"strings"
	"time"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/domain"
	"cs2-tracker/internal/identifier"

	"github.com/rs/zerolog"
)

type Resolver struct {
	faceit  FaceitAPI
	steam   SteamAPI
	timeout time.Duration
	logger  zerolog.Logger
}

func NewResolver(faceit FaceitAPI, steam SteamAPI, timeout CallTimeout, logger zerolog.Logger) *Resolver {
	return &Resolver{faceit: faceit, steam: steam, timeout: time.Duration(timeout), logger: logger}
}

// Resolve turns a search string into the SteamID64 it refers to. It returns
// domain.ErrNotFound when the lookups succeed but match nobody, and a
// *domain.TransportError when any lookup fails.
func (r *Resolver) Resolve(ctx context.Context, input string) (domain.AccountID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.ErrNotFound
	}

	kind := identifier.Classify(input)
	r.logger.Debug().Str("input", input).Stringer("kind", kind).Msg("resolving player")

	switch kind {
	case identifier.ProfileURL:
		token, _ := identifier.ProfileToken(input)
		return domain.AccountID(token), nil
	case identifier.NumericAccountID:
		return r.bySteamID(ctx, input)
	case identifier.VanityURL:
		vanity, _ := identifier.VanityToken(input)
		return r.byVanity(ctx, vanity)
	default:
		return r.byNickname(ctx, input)
	}
}

func (r *Resolver) bySteamID(ctx context.Context, steamID string) (domain.AccountID, error) {
	apiCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.steam.GetPlayerSummaries(apiCtx, steamID)
	if err != nil {
		r.logger.Error().Err(err).Str("steam_id", steamID).Msg("failed to fetch player summary")
		return "", lookupError("steam player summaries", err)
	}
	if len(resp.Response.Players) == 0 {
		return "", domain.ErrNotFound
	}
	return domain.AccountID(resp.Response.Players[0].SteamID), nil
}

func (r *Resolver) byVanity(ctx context.Context, vanity string) (domain.AccountID, error) {
	apiCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.steam.ResolveVanityURL(apiCtx, vanity)
	if err != nil {
		r.logger.Error().Err(err).Str("vanity", vanity).Msg("failed to resolve vanity url")
		return "", lookupError("steam resolve vanity", err)
	}
	if resp.Response.Success != api.VanityResolved || resp.Response.SteamID == "" {
		r.logger.Debug().Str("vanity", vanity).Int("success", resp.Response.Success).Msg("vanity url not resolved")
		return "", domain.ErrNotFound
	}
	return r.bySteamID(ctx, resp.Response.SteamID)
}

func (r *Resolver) byNickname(ctx context.Context, nickname string) (domain.AccountID, error) {
	apiCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.faceit.GetPlayerByNickname(apiCtx, nickname)
	if err != nil {
		err = lookupError("faceit player by nickname", err)
		if domain.IsTransport(err) {
			r.logger.Error().Err(err).Str("nickname", nickname).Msg("failed to fetch player by nickname")
		}
		return "", err
	}

	steamID := resp.SteamID64
	if game, ok := resp.CS2(); ok && steamID == "" {
		steamID = game.GamePlayerID
	}
	if steamID == "" {
		return "", domain.ErrNotFound
	}
	return domain.AccountID(steamID), nil
}
