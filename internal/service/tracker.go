package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cs2-tracker/internal/constants"
	"cs2-tracker/internal/domain"
	"cs2-tracker/internal/stats"

	"github.com/rs/zerolog"
)

var ErrInvalidWindow = errors.New("invalid averaging window")

// sequentialCalls is the longest chain of dependent upstream calls in one
// request: vanity, summaries, profile, ranks and two history pages.
const sequentialCalls = 6

// TrackerService chains resolution, profile and stats lookups into the
// bundles the presentation adapters render.
type TrackerService struct {
	resolver *Resolver
	profiles *ProfileService
	stats    *StatsService
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewTrackerService bounds each request by constants.RequestTimeout, or by
// the time the longest call chain may take when calls are slower than that.
func NewTrackerService(resolver *Resolver, profiles *ProfileService, stats *StatsService, timeout CallTimeout, logger zerolog.Logger) *TrackerService {
	return &TrackerService{
		resolver: resolver,
		profiles: profiles,
		stats:    stats,
		timeout:  max(constants.RequestTimeout, sequentialCalls*time.Duration(timeout)),
		logger:   logger,
	}
}

func (s *TrackerService) ResolveAndFetchProfile(ctx context.Context, search string) (*domain.ProfileBundle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ranked, err := s.lookup(ctx, search)
	if err != nil {
		return nil, err
	}

	matches, lifetime, err := s.stats.FetchStats(ctx, ranked.Profile.PlayerID, constants.ProfileMatchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}

	bundle := &domain.ProfileBundle{
		RankedProfile: *ranked,
		Matches:       matches,
		Lifetime:      lifetime,
		Summary:       stats.ComputeLifetimeSummary(lifetime),
		MapSegments:   stats.CompetitiveSegments(lifetime),
		Windows:       make([]domain.WindowComparison, 0, len(constants.AverageWindows)),
	}
	for _, size := range constants.AverageWindows {
		bundle.Windows = append(bundle.Windows, stats.CompareWindows(matches, size))
	}

	s.logger.Info().Str("player_id", ranked.Profile.PlayerID).Int("match_count", len(matches)).Msg("profile bundle built")
	return bundle, nil
}

// ComputeAverages compares the latest window matches with the window before
// them. Only the matches those two windows need are fetched.
func (s *TrackerService) ComputeAverages(ctx context.Context, search string, window int) (*domain.WindowComparison, error) {
	if window <= 0 || window > constants.ProfileMatchLimit/2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ranked, err := s.lookup(ctx, search)
	if err != nil {
		return nil, err
	}

	matches, _, err := s.stats.FetchStats(ctx, ranked.Profile.PlayerID, 2*window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}

	cmp := stats.CompareWindows(matches, window)
	return &cmp, nil
}

func (s *TrackerService) lookup(ctx context.Context, search string) (*domain.RankedProfile, error) {
	id, err := s.resolver.Resolve(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", search, err)
	}

	ranked, err := s.profiles.FetchProfileWithRank(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return ranked, nil
}
