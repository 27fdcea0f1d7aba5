package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ProfileService struct {
	faceit  FaceitAPI
	timeout time.Duration
	logger  zerolog.Logger
}

func NewProfileService(faceit FaceitAPI, timeout CallTimeout, logger zerolog.Logger) *ProfileService {
	return &ProfileService{faceit: faceit, timeout: time.Duration(timeout), logger: logger}
}

// FetchProfileWithRank loads the FACEIT profile linked to id along with its
// region and country leaderboard positions. A player without cs2 region data
// is reported as domain.ErrNotFound.
func (s *ProfileService) FetchProfileWithRank(ctx context.Context, id domain.AccountID) (*domain.RankedProfile, error) {
	apiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.faceit.GetPlayerByGameID(apiCtx, string(id))
	if err != nil {
		err = lookupError("faceit player by game id", err)
		if domain.IsTransport(err) {
			s.logger.Error().Err(err).Str("account_id", string(id)).Msg("failed to fetch profile")
		}
		return nil, err
	}

	game, ok := resp.CS2()
	if !ok || game.Region == "" {
		s.logger.Debug().Str("account_id", string(id)).Msg("player has no cs2 region")
		return nil, domain.ErrNotFound
	}
	if resp.PlayerID == "" {
		return nil, domain.NewTransportError("faceit player by game id",
			fmt.Errorf("%w: player without player_id", api.ErrMalformedPayload))
	}

	ranked := &domain.RankedProfile{Profile: toProfile(id, resp, game)}
	profile := ranked.Profile

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pos, err := s.rankPosition(gCtx, profile, "")
		ranked.GlobalRank = pos
		return err
	})
	if profile.Country != "" {
		g.Go(func() error {
			pos, err := s.rankPosition(gCtx, profile, profile.Country)
			ranked.CountryRank = pos
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("player_id", profile.PlayerID).Msg("failed to fetch rank positions")
		return nil, err
	}

	s.logger.Info().Str("player_id", profile.PlayerID).Str("nickname", profile.Nickname).Msg("profile fetched")
	return ranked, nil
}

// rankPosition finds the player in the leaderboard slice around them. A
// player missing from the slice is unranked, which is not an error.
func (s *ProfileService) rankPosition(ctx context.Context, p domain.PlayerProfile, country string) (*int, error) {
	apiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.faceit.GetPlayerRanking(apiCtx, p.Region, p.PlayerID, country)
	if errors.Is(err, api.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewTransportError("faceit player ranking", err)
	}

	for _, item := range resp.Items {
		if item.PlayerID == p.PlayerID {
			pos := item.Position
			return &pos, nil
		}
	}
	return nil, nil
}

func toProfile(id domain.AccountID, resp *api.PlayerResponse, game api.GameDetails) domain.PlayerProfile {
	var activatedAt time.Time
	if resp.ActivatedAt != "" {
		if t, err := time.Parse(time.RFC3339, resp.ActivatedAt); err == nil {
			activatedAt = t
		}
	}
	return domain.PlayerProfile{
		PlayerID:    resp.PlayerID,
		AccountID:   id,
		Nickname:    resp.Nickname,
		Country:     resp.Country,
		Avatar:      resp.Avatar,
		Region:      game.Region,
		SkillLevel:  game.SkillLevel,
		Elo:         game.FaceitElo,
		ProfileURL:  resp.FaceitURL,
		ActivatedAt: activatedAt,
	}
}
