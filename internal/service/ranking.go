package service

import (
	"context"
	"fmt"
	"time"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/constants"
	"cs2-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type RankingService struct {
	faceit  FaceitAPI
	timeout time.Duration
	logger  zerolog.Logger
}

func NewRankingService(faceit FaceitAPI, timeout CallTimeout, logger zerolog.Logger) *RankingService {
	return &RankingService{faceit: faceit, timeout: time.Duration(timeout), logger: logger}
}

// FetchRegionRanking returns one leaderboard page ordered by position. Rankings
// are best effort: on failure it returns an empty page together with a
// *domain.RankingUnavailableError.
func (s *RankingService) FetchRegionRanking(ctx context.Context, region domain.Region, limit, offset int) ([]domain.RankedListEntry, error) {
	limit = min(max(limit, 1), constants.RankingPageMaxLimit)
	offset = max(offset, 0)

	apiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.faceit.GetRankings(apiCtx, region.String(), limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Stringer("region", region).Int("offset", offset).Msg("failed to fetch ranking")
		return []domain.RankedListEntry{}, &domain.RankingUnavailableError{
			Region: region,
			Err:    domain.NewTransportError("faceit rankings", err),
		}
	}

	entries := make([]domain.RankedListEntry, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.PlayerID == "" || item.Position <= 0 {
			err := fmt.Errorf("%w: ranking entry without player_id or position", api.ErrMalformedPayload)
			s.logger.Error().Err(err).Stringer("region", region).Msg("invalid ranking payload")
			return []domain.RankedListEntry{}, &domain.RankingUnavailableError{
				Region: region,
				Err:    domain.NewTransportError("faceit rankings", err),
			}
		}
		entries = append(entries, domain.RankedListEntry{
			Position:   item.Position,
			PlayerID:   item.PlayerID,
			Nickname:   item.Nickname,
			Country:    item.Country,
			Elo:        item.FaceitElo,
			SkillLevel: item.GameSkillLevel,
			RankBucket: RankBucket(item.Position),
		})
	}

	s.logger.Debug().Stringer("region", region).Int("count", len(entries)).Int("offset", offset).Msg("ranking fetched")
	return entries, nil
}

// RankBucket labels a leaderboard position with its challenger badge. The
// "9-1000" label starts at 10; the label text is what the badge assets use.
func RankBucket(position int) string {
	switch {
	case position == 1:
		return "1"
	case position == 2:
		return "2"
	case position == 3:
		return "3"
	case position >= 4 && position <= 9:
		return "4-9"
	case position >= 10 && position <= 1000:
		return "9-1000"
	default:
		return ""
	}
}
