package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"cs2-tracker/internal/api"
)

var errUnexpectedCall = errors.New("unexpected upstream call")

const testTimeout = CallTimeout(10 * time.Second)

// budget reports how long ctx had left when an upstream call started.
func budget(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}

type fakeFaceit struct {
	mu      sync.Mutex
	calls   []string
	budgets []time.Duration

	rankings      func(region string, limit, offset int) (*api.RankingsResponse, error)
	playerRanking func(region, playerID, country string) (*api.RankingsResponse, error)
	byNickname    func(nickname string) (*api.PlayerResponse, error)
	byGameID      func(gamePlayerID string) (*api.PlayerResponse, error)
	matchStats    func(playerID string, limit, offset int) (*api.MatchStatsResponse, error)
	lifetime      func(playerID string) (*api.LifetimeStatsResponse, error)
}

func (f *fakeFaceit) record(ctx context.Context, call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.budgets = append(f.budgets, budget(ctx))
}

func (f *fakeFaceit) Budgets() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.budgets...)
}

func (f *fakeFaceit) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeFaceit) GetRankings(ctx context.Context, region string, limit, offset int) (*api.RankingsResponse, error) {
	f.record(ctx, fmt.Sprintf("rankings %s %d %d", region, limit, offset))
	if f.rankings == nil {
		return nil, errUnexpectedCall
	}
	return f.rankings(region, limit, offset)
}

func (f *fakeFaceit) GetPlayerRanking(ctx context.Context, region, playerID, country string) (*api.RankingsResponse, error) {
	f.record(ctx, fmt.Sprintf("player ranking %s %s %s", region, playerID, country))
	if f.playerRanking == nil {
		return nil, errUnexpectedCall
	}
	return f.playerRanking(region, playerID, country)
}

func (f *fakeFaceit) GetPlayerByNickname(ctx context.Context, nickname string) (*api.PlayerResponse, error) {
	f.record(ctx, "nickname " + nickname)
	if f.byNickname == nil {
		return nil, errUnexpectedCall
	}
	return f.byNickname(nickname)
}

func (f *fakeFaceit) GetPlayerByGameID(ctx context.Context, gamePlayerID string) (*api.PlayerResponse, error) {
	f.record(ctx, "game id " + gamePlayerID)
	if f.byGameID == nil {
		return nil, errUnexpectedCall
	}
	return f.byGameID(gamePlayerID)
}

func (f *fakeFaceit) GetMatchStats(ctx context.Context, playerID string, limit, offset int) (*api.MatchStatsResponse, error) {
	f.record(ctx, fmt.Sprintf("match stats %s %d %d", playerID, limit, offset))
	if f.matchStats == nil {
		return nil, errUnexpectedCall
	}
	return f.matchStats(playerID, limit, offset)
}

func (f *fakeFaceit) GetLifetimeStats(ctx context.Context, playerID string) (*api.LifetimeStatsResponse, error) {
	f.record(ctx, "lifetime " + playerID)
	if f.lifetime == nil {
		return nil, errUnexpectedCall
	}
	return f.lifetime(playerID)
}

type fakeSteam struct {
	mu      sync.Mutex
	calls   []string
	budgets []time.Duration

	vanity    func(vanity string) (*api.VanityResponse, error)
	summaries func(steamID string) (*api.PlayerSummariesResponse, error)
}

func (f *fakeSteam) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSteam) Budgets() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.budgets...)
}

func (f *fakeSteam) ResolveVanityURL(ctx context.Context, vanity string) (*api.VanityResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "vanity "+vanity)
	f.budgets = append(f.budgets, budget(ctx))
	f.mu.Unlock()
	if f.vanity == nil {
		return nil, errUnexpectedCall
	}
	return f.vanity(vanity)
}

func (f *fakeSteam) GetPlayerSummaries(ctx context.Context, steamID string) (*api.PlayerSummariesResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "summaries "+steamID)
	f.budgets = append(f.budgets, budget(ctx))
	f.mu.Unlock()
	if f.summaries == nil {
		return nil, errUnexpectedCall
	}
	return f.summaries(steamID)
}

func vanityResponse(success int, steamID string) *api.VanityResponse {
	var resp api.VanityResponse
	resp.Response.Success = success
	resp.Response.SteamID = steamID
	return &resp
}

func summariesResponse(steamIDs ...string) *api.PlayerSummariesResponse {
	var resp api.PlayerSummariesResponse
	for _, id := range steamIDs {
		resp.Response.Players = append(resp.Response.Players, api.SteamPlayer{SteamID: id})
	}
	return &resp
}

func playerResponse(playerID, steamID, region, country string) *api.PlayerResponse {
	p := &api.PlayerResponse{
		PlayerID:    playerID,
		Nickname:    "nick-" + playerID,
		Country:     country,
		SteamID64:   steamID,
		ActivatedAt: "2018-04-01T12:00:00Z",
		Games:       map[string]api.GameDetails{},
	}
	if region != "" {
		p.Games["cs2"] = api.GameDetails{Region: region, SkillLevel: 10, FaceitElo: 2450, GamePlayerID: steamID}
	}
	return p
}

// matchItem builds a history entry whose kill count identifies it.
func matchItem(kills int) api.MatchStatsItem {
	return api.MatchStatsItem{Stats: api.Stats{
		"Match Id":    api.StatValue("m" + strconv.Itoa(kills)),
		"Kills":       api.StatValue(strconv.Itoa(kills)),
		"Assists":     "3",
		"Deaths":      "10",
		"K/R Ratio":   "0.75",
		"K/D Ratio":   "1.5",
		"Headshots %": "50",
	}}
}

func segment(label, mode string, matches, kills, deaths, wins, headshots int) api.Segment {
	return api.Segment{Label: label, Mode: mode, Stats: api.Stats{
		"Matches":   api.StatValue(strconv.Itoa(matches)),
		"Kills":     api.StatValue(strconv.Itoa(kills)),
		"Deaths":    api.StatValue(strconv.Itoa(deaths)),
		"Wins":      api.StatValue(strconv.Itoa(wins)),
		"Headshots": api.StatValue(strconv.Itoa(headshots)),
	}}
}
