package service

import (
	"context"
	"fmt"
	"time"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/constants"
	"cs2-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	faceit  FaceitAPI
	timeout time.Duration
	logger  zerolog.Logger
}

func NewStatsService(faceit FaceitAPI, timeout CallTimeout, logger zerolog.Logger) *StatsService {
	return &StatsService{faceit: faceit, timeout: time.Duration(timeout), logger: logger}
}

// FetchStats returns up to matchLimit match records, newest first, and the
// lifetime per-map aggregate of playerID.
func (s *StatsService) FetchStats(ctx context.Context, playerID string, matchLimit int) ([]domain.MatchRecord, domain.LifetimeAggregate, error) {
	var matches []domain.MatchRecord
	var lifetime domain.LifetimeAggregate

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.fetchHistory(gCtx, playerID, matchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		lifetime, err = s.fetchLifetime(gCtx, playerID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to fetch stats")
		return nil, domain.LifetimeAggregate{}, err
	}

	s.logger.Debug().Str("player_id", playerID).Int("match_count", len(matches)).Int("segment_count", len(lifetime.Segments)).Msg("stats fetched")
	return matches, lifetime, nil
}

// fetchHistory walks the history one page at a time. A short page means the
// history is exhausted.
func (s *StatsService) fetchHistory(ctx context.Context, playerID string, limit int) ([]domain.MatchRecord, error) {
	matches := make([]domain.MatchRecord, 0, max(limit, 0))

	for offset := 0; offset < limit; offset += constants.MatchHistoryPageSize {
		pageLimit := min(constants.MatchHistoryPageSize, limit-offset)

		page, err := s.fetchHistoryPage(ctx, playerID, pageLimit, offset)
		if err != nil {
			return nil, err
		}
		matches = append(matches, page...)

		if len(page) < pageLimit {
			break
		}
	}
	return matches, nil
}

func (s *StatsService) fetchHistoryPage(ctx context.Context, playerID string, limit, offset int) ([]domain.MatchRecord, error) {
	apiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	op := fmt.Sprintf("faceit match history offset=%d", offset)
	resp, err := s.faceit.GetMatchStats(apiCtx, playerID, limit, offset)
	if err != nil {
		return nil, domain.NewTransportError(op, err)
	}

	page := make([]domain.MatchRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec, err := toMatchRecord(item.Stats)
		if err != nil {
			return nil, domain.NewTransportError(op, err)
		}
		page = append(page, rec)
	}
	return page, nil
}

func (s *StatsService) fetchLifetime(ctx context.Context, playerID string) (domain.LifetimeAggregate, error) {
	apiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.faceit.GetLifetimeStats(apiCtx, playerID)
	if err != nil {
		return domain.LifetimeAggregate{}, domain.NewTransportError("faceit lifetime stats", err)
	}

	agg := domain.LifetimeAggregate{
		Segments:      make([]domain.MapSegment, 0, len(resp.Segments)),
		RecentResults: resp.Lifetime.RecentResults,
	}
	for _, seg := range resp.Segments {
		ms, err := toMapSegment(seg)
		if err != nil {
			return domain.LifetimeAggregate{}, domain.NewTransportError("faceit lifetime stats", err)
		}
		agg.Segments = append(agg.Segments, ms)
	}
	return agg, nil
}

func toMatchRecord(stats api.Stats) (domain.MatchRecord, error) {
	rec := domain.MatchRecord{
		MatchID: stats.String("Match Id"),
		Map:     stats.String("Map"),
		Result:  stats.String("Result"),
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"Kills", &rec.Kills},
		{"Assists", &rec.Assists},
		{"Deaths", &rec.Deaths},
	}
	for _, f := range ints {
		v, ok := stats.Int(f.key)
		if !ok {
			return domain.MatchRecord{}, fmt.Errorf("%w: match stats without %q", api.ErrMalformedPayload, f.key)
		}
		*f.dst = v
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"K/R Ratio", &rec.KillsPerRound},
		{"K/D Ratio", &rec.KillDeathRatio},
		{"Headshots %", &rec.HeadshotPercentage},
	}
	for _, f := range floats {
		v, ok := stats.Float(f.key)
		if !ok {
			return domain.MatchRecord{}, fmt.Errorf("%w: match stats without %q", api.ErrMalformedPayload, f.key)
		}
		*f.dst = v
	}

	if ms, ok := stats.Int("Match Finished At"); ok {
		rec.PlayedAt = time.UnixMilli(int64(ms)).UTC()
	}
	return rec, nil
}

func toMapSegment(seg api.Segment) (domain.MapSegment, error) {
	ms := domain.MapSegment{Label: seg.Label, Mode: seg.Mode}

	fields := []struct {
		key string
		dst *int
	}{
		{"Matches", &ms.Matches},
		{"Kills", &ms.Kills},
		{"Deaths", &ms.Deaths},
		{"Wins", &ms.Wins},
		{"Headshots", &ms.Headshots},
	}
	for _, f := range fields {
		v, ok := seg.Stats.Int(f.key)
		if !ok {
			return domain.MapSegment{}, fmt.Errorf("%w: segment %q without %q", api.ErrMalformedPayload, seg.Label, f.key)
		}
		*f.dst = v
	}
	return ms, nil
}
