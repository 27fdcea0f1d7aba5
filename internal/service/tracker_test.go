package service

import (
	"context"
	"strconv"
	"testing"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const steamID = "76561198012345678"

func newTracker(faceit *fakeFaceit, steam *fakeSteam) *TrackerService {
	logger := zerolog.Nop()
	return NewTrackerService(
		NewResolver(faceit, steam, testTimeout, logger),
		NewProfileService(faceit, testTimeout, logger),
		NewStatsService(faceit, testTimeout, logger),
		testTimeout,
		logger,
	)
}

// rankedFaceit serves a ranked EU player with a total match history.
func rankedFaceit(total int) *fakeFaceit {
	return &fakeFaceit{
		byNickname: func(string) (*api.PlayerResponse, error) {
			return playerResponse("p1", steamID, "EU", "de"), nil
		},
		byGameID: func(id string) (*api.PlayerResponse, error) {
			return playerResponse("p1", id, "EU", "de"), nil
		},
		playerRanking: func(_, _, country string) (*api.RankingsResponse, error) {
			pos := 321
			if country != "" {
				pos = 12
			}
			return rankingAround(api.RankingItem{Position: pos, PlayerID: "p1"}), nil
		},
		matchStats: history(total),
		lifetime: func(string) (*api.LifetimeStatsResponse, error) {
			return &api.LifetimeStatsResponse{Segments: []api.Segment{
				segment("Inferno", "5v5", 20, 400, 300, 10, 200),
				segment("Mirage", "5v5", 10, 220, 150, 6, 110),
				segment("Aim Map", "1v1", 3, 30, 20, 2, 10),
			}}, nil
		},
	}
}

func TestResolveAndFetchProfileByNickname(t *testing.T) {
	faceit := rankedFaceit(250)
	steam := &fakeSteam{}
	tracker := newTracker(faceit, steam)

	bundle, err := tracker.ResolveAndFetchProfile(context.Background(), "  s1mple ")
	require.NoError(t, err)

	assert.Equal(t, domain.AccountID(steamID), bundle.Profile.AccountID)
	assert.Equal(t, "p1", bundle.Profile.PlayerID)
	assert.Equal(t, 321, *bundle.GlobalRank)
	assert.Equal(t, 12, *bundle.CountryRank)
	assert.Len(t, bundle.Matches, 200)
	assert.Empty(t, steam.Calls())

	// history(250) gives kills 250..231 for the latest 20 matches
	sum := 0
	for i := 0; i < 20; i++ {
		sum += 250 - i
	}
	want := (sum + 19) / 20

	require.Len(t, bundle.Windows, 4)
	w20 := bundle.Windows[1]
	assert.Equal(t, 20, w20.Size)
	require.NotNil(t, w20.Current)
	assert.Equal(t, want, w20.Current.AvgKills)
	assert.Equal(t, 3, w20.Current.AvgAssists)
	assert.Equal(t, 10, w20.Current.AvgDeaths)
	assert.InDelta(t, 1.5, w20.Current.AvgKillDeathRatio, 1e-9)
	assert.Equal(t, 50, w20.Current.AvgHeadshotPercentage)
	require.NotNil(t, w20.Previous)

	w100 := bundle.Windows[3]
	assert.Equal(t, 100, w100.Size)
	assert.NotNil(t, w100.Current)
	assert.NotNil(t, w100.Previous)

	assert.Equal(t, 30, bundle.Summary.Matches)
	assert.Equal(t, 54, bundle.Summary.WinRatePercentage)

	require.Len(t, bundle.MapSegments, 2)
	assert.Equal(t, "Mirage", bundle.MapSegments[0].Label)
	assert.Equal(t, "Inferno", bundle.MapSegments[1].Label)

	assert.Contains(t, faceit.Calls(), "nickname s1mple")
	assert.Contains(t, faceit.Calls(), "game id "+steamID)
}

func TestResolveAndFetchProfileByProfileURL(t *testing.T) {
	faceit := rankedFaceit(5)
	steam := &fakeSteam{}
	tracker := newTracker(faceit, steam)

	bundle, err := tracker.ResolveAndFetchProfile(context.Background(), "https://steamcommunity.com/profiles/"+steamID+"/")
	require.NoError(t, err)
	assert.Len(t, bundle.Matches, 5)
	assert.Empty(t, steam.Calls())

	// windows with no matches stay empty
	assert.Nil(t, bundle.Windows[0].Previous)
	assert.NotNil(t, bundle.Windows[0].Current)
}

func TestResolveAndFetchProfileNotFound(t *testing.T) {
	faceit := &fakeFaceit{byNickname: func(string) (*api.PlayerResponse, error) {
		return nil, api.ErrNotFound
	}}
	tracker := newTracker(faceit, &fakeSteam{})

	_, err := tracker.ResolveAndFetchProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"nickname nobody"}, faceit.Calls())
}

func TestResolveAndFetchProfileUnranked(t *testing.T) {
	faceit := rankedFaceit(10)
	faceit.playerRanking = func(string, string, string) (*api.RankingsResponse, error) {
		return nil, api.ErrNotFound
	}
	steam := &fakeSteam{summaries: func(id string) (*api.PlayerSummariesResponse, error) {
		return summariesResponse(id), nil
	}}
	tracker := newTracker(faceit, steam)

	bundle, err := tracker.ResolveAndFetchProfile(context.Background(), steamID)
	require.NoError(t, err)
	assert.Nil(t, bundle.GlobalRank)
	assert.Nil(t, bundle.CountryRank)
	assert.Equal(t, []string{"summaries " + steamID}, steam.Calls())
}

func TestResolveAndFetchProfileStatsFailure(t *testing.T) {
	faceit := rankedFaceit(10)
	faceit.matchStats = func(string, int, int) (*api.MatchStatsResponse, error) {
		return nil, &api.StatusError{Code: 503}
	}
	tracker := newTracker(faceit, &fakeSteam{})

	_, err := tracker.ResolveAndFetchProfile(context.Background(), "s1mple")
	assert.True(t, domain.IsTransport(err))
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestComputeAverages(t *testing.T) {
	faceit := rankedFaceit(300)
	tracker := newTracker(faceit, &fakeSteam{})

	cmp, err := tracker.ComputeAverages(context.Background(), "s1mple", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, cmp.Size)
	require.NotNil(t, cmp.Current)
	require.NotNil(t, cmp.Previous)
	// kills 300..291 and 290..281
	assert.Equal(t, 296, cmp.Current.AvgKills)
	assert.Equal(t, 286, cmp.Previous.AvgKills)

	assert.Equal(t, []string{"match stats p1 20 0"}, matchCalls(faceit.Calls()))
}

func TestComputeAveragesWindowBounds(t *testing.T) {
	for _, window := range []int{0, -1, 101} {
		t.Run(strconv.Itoa(window), func(t *testing.T) {
			faceit := &fakeFaceit{}
			tracker := newTracker(faceit, &fakeSteam{})

			_, err := tracker.ComputeAverages(context.Background(), "s1mple", window)
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.Empty(t, faceit.Calls())
		})
	}
}

func TestComputeAveragesMaxWindowFetchesTwoPages(t *testing.T) {
	faceit := rankedFaceit(300)
	tracker := newTracker(faceit, &fakeSteam{})

	cmp, err := tracker.ComputeAverages(context.Background(), "s1mple", 100)
	require.NoError(t, err)
	assert.NotNil(t, cmp.Previous)
	assert.Equal(t, []string{"match stats p1 100 0", "match stats p1 100 100"}, matchCalls(faceit.Calls()))
}
