package service

import (
	"context"
	"testing"
	"time"

	"cs2-tracker/internal/api"
	"cs2-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingAround(entries ...api.RankingItem) *api.RankingsResponse {
	return &api.RankingsResponse{Items: entries}
}

func TestFetchProfileWithRank(t *testing.T) {
	faceit := &fakeFaceit{
		byGameID: func(id string) (*api.PlayerResponse, error) {
			return playerResponse("p1", id, "EU", "pl"), nil
		},
		playerRanking: func(region, playerID, country string) (*api.RankingsResponse, error) {
			assert.Equal(t, "EU", region)
			assert.Equal(t, "p1", playerID)
			if country == "" {
				return rankingAround(api.RankingItem{Position: 1233, PlayerID: "x"}, api.RankingItem{Position: 1234, PlayerID: "p1"}), nil
			}
			return rankingAround(api.RankingItem{Position: 56, PlayerID: "p1"}), nil
		},
	}
	svc := NewProfileService(faceit, testTimeout, zerolog.Nop())

	ranked, err := svc.FetchProfileWithRank(context.Background(), "76561198000000000")
	require.NoError(t, err)

	p := ranked.Profile
	assert.Equal(t, "p1", p.PlayerID)
	assert.Equal(t, domain.AccountID("76561198000000000"), p.AccountID)
	assert.Equal(t, "EU", p.Region)
	assert.Equal(t, 10, p.SkillLevel)
	assert.Equal(t, 2450, p.Elo)
	assert.Equal(t, time.Date(2018, 4, 1, 12, 0, 0, 0, time.UTC), p.ActivatedAt.UTC())

	require.NotNil(t, ranked.GlobalRank)
	require.NotNil(t, ranked.CountryRank)
	assert.Equal(t, 1234, *ranked.GlobalRank)
	assert.Equal(t, 56, *ranked.CountryRank)
	assert.ElementsMatch(t, []string{
		"game id 76561198000000000",
		"player ranking EU p1 ",
		"player ranking EU p1 pl",
	}, faceit.Calls())
}

func TestFetchProfileUnranked(t *testing.T) {
	faceit := &fakeFaceit{
		byGameID: func(id string) (*api.PlayerResponse, error) {
			return playerResponse("p1", id, "NA", "us"), nil
		},
		playerRanking: func(_, _, country string) (*api.RankingsResponse, error) {
			if country == "" {
				return rankingAround(api.RankingItem{Position: 1, PlayerID: "someone-else"}), nil
			}
			return nil, api.ErrNotFound
		},
	}
	svc := NewProfileService(faceit, testTimeout, zerolog.Nop())

	ranked, err := svc.FetchProfileWithRank(context.Background(), "76561198000000000")
	require.NoError(t, err)
	assert.Nil(t, ranked.GlobalRank)
	assert.Nil(t, ranked.CountryRank)
}

func TestFetchProfileWithoutCountrySkipsCountryRank(t *testing.T) {
	faceit := &fakeFaceit{
		byGameID: func(id string) (*api.PlayerResponse, error) {
			return playerResponse("p1", id, "SEA", ""), nil
		},
		playerRanking: func(_, _, _ string) (*api.RankingsResponse, error) {
			return rankingAround(api.RankingItem{Position: 7, PlayerID: "p1"}), nil
		},
	}
	svc := NewProfileService(faceit, testTimeout, zerolog.Nop())

	ranked, err := svc.FetchProfileWithRank(context.Background(), "76561198000000000")
	require.NoError(t, err)
	assert.Equal(t, 7, *ranked.GlobalRank)
	assert.Nil(t, ranked.CountryRank)
	assert.Len(t, faceit.Calls(), 2)
}

func TestFetchProfileNoRegionIsNotFound(t *testing.T) {
	faceit := &fakeFaceit{byGameID: func(id string) (*api.PlayerResponse, error) {
		return playerResponse("p1", id, "", "fr"), nil
	}}
	svc := NewProfileService(faceit, testTimeout, zerolog.Nop())

	_, err := svc.FetchProfileWithRank(context.Background(), "76561198000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, faceit.Calls(), 1)
}

func TestFetchProfileUpstreamNotFound(t *testing.T) {
	faceit := &fakeFaceit{byGameID: func(string) (*api.PlayerResponse, error) {
		return nil, api.ErrNotFound
	}}
	svc := NewProfileService(faceit, testTimeout, zerolog.Nop())

	_, err := svc.FetchProfileWithRank(context.Background(), "76561198000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchProfileMissingPlayerID(t *testing.T) {
	faceit := &fakeFaceit{byGameID: func(id string) (*api.PlayerResponse, error) {
		return playerResponse("", id, "EU", "fr"), nil
	}}
	svc := NewProfileService(faceit, testTimeout, zerolog.Nop())

	_, err := svc.FetchProfileWithRank(context.Background(), "76561198000000000")
	assert.True(t, domain.IsTransport(err))
	assert.ErrorIs(t, err, api.ErrMalformedPayload)
}

func TestFetchProfileRankTransportFailure(t *testing.T) {
	faceit := &fakeFaceit{
		byGameID: func(id string) (*api.PlayerResponse, error) {
			return playerResponse("p1", id, "EU", "fr"), nil
		},
		playerRanking: func(_, _, country string) (*api.RankingsResponse, error) {
			if country == "fr" {
				return nil, &api.StatusError{Code: 502}
			}
			return rankingAround(), nil
		},
	}
	svc := NewProfileService(faceit, testTimeout, zerolog.Nop())

	_, err := svc.FetchProfileWithRank(context.Background(), "76561198000000000")
	assert.True(t, domain.IsTransport(err))
}
