package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cs2-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// FaceitClient reads the FACEIT Data API v4 for the cs2 game.
type FaceitClient struct {
	baseURL   string
	transport *transport
}

func NewFaceitClient(cfg *config.Config, logger zerolog.Logger) *FaceitClient {
	t := newTransport("faceit", cfg.UpstreamTimeout, cfg.UpstreamMaxRetries, cfg.FaceitRPS, logger)
	bearer := "Bearer " + cfg.FaceitAPIKey
	t.authorize = func(req *fasthttp.Request) {
		req.Header.Set("Authorization", bearer)
	}
	return &FaceitClient{
		baseURL:   strings.TrimRight(cfg.FaceitBaseURL, "/"),
		transport: t,
	}
}

func (c *FaceitClient) GetRankings(ctx context.Context, region string, limit, offset int) (*RankingsResponse, error) {
	u := fmt.Sprintf("%s/rankings/games/cs2/regions/%s?limit=%d&offset=%d", c.baseURL, url.PathEscape(region), limit, offset)
	return doRequest[RankingsResponse](ctx, c.transport, u)
}

// GetPlayerRanking returns the leaderboard slice around playerID, restricted
// to country when it is set.
func (c *FaceitClient) GetPlayerRanking(ctx context.Context, region, playerID, country string) (*RankingsResponse, error) {
	u := fmt.Sprintf("%s/rankings/games/cs2/regions/%s/players/%s", c.baseURL, url.PathEscape(region), url.PathEscape(playerID))
	if country != "" {
		u += "?country=" + url.QueryEscape(country)
	}
	return doRequest[RankingsResponse](ctx, c.transport, u)
}

func (c *FaceitClient) GetPlayerByNickname(ctx context.Context, nickname string) (*PlayerResponse, error) {
	u := fmt.Sprintf("%s/players?nickname=%s", c.baseURL, url.QueryEscape(nickname))
	return doRequest[PlayerResponse](ctx, c.transport, u)
}

func (c *FaceitClient) GetPlayerByGameID(ctx context.Context, gamePlayerID string) (*PlayerResponse, error) {
	u := fmt.Sprintf("%s/players?game=cs2&game_player_id=%s", c.baseURL, url.QueryEscape(gamePlayerID))
	return doRequest[PlayerResponse](ctx, c.transport, u)
}

func (c *FaceitClient) GetMatchStats(ctx context.Context, playerID string, limit, offset int) (*MatchStatsResponse, error) {
	u := fmt.Sprintf("%s/players/%s/games/cs2/stats?limit=%d&offset=%d", c.baseURL, url.PathEscape(playerID), limit, offset)
	return doRequest[MatchStatsResponse](ctx, c.transport, u)
}

func (c *FaceitClient) GetLifetimeStats(ctx context.Context, playerID string) (*LifetimeStatsResponse, error) {
	u := fmt.Sprintf("%s/players/%s/stats/cs2", c.baseURL, url.PathEscape(playerID))
	return doRequest[LifetimeStatsResponse](ctx, c.transport, u)
}

type RankingsResponse struct {
	Start int           `json:"start"`
	End   int           `json:"end"`
	Items []RankingItem `json:"items"`
}

type RankingItem struct {
	Position       int    `json:"position"`
	PlayerID       string `json:"player_id"`
	Nickname       string `json:"nickname"`
	Country        string `json:"country"`
	FaceitElo      int    `json:"faceit_elo"`
	GameSkillLevel int    `json:"game_skill_level"`
}

type PlayerResponse struct {
	PlayerID    string                 `json:"player_id"`
	Nickname    string                 `json:"nickname"`
	Avatar      string                 `json:"avatar"`
	Country     string                 `json:"country"`
	SteamID64   string                 `json:"steam_id_64"`
	FaceitURL   string                 `json:"faceit_url"`
	ActivatedAt string                 `json:"activated_at"`
	Games       map[string]GameDetails `json:"games"`
}

type GameDetails struct {
	Region       string `json:"region"`
	SkillLevel   int    `json:"skill_level"`
	FaceitElo    int    `json:"faceit_elo"`
	GamePlayerID string `json:"game_player_id"`
}

// CS2 returns the cs2 game entry, if the player has one.
func (p *PlayerResponse) CS2() (GameDetails, bool) {
	g, ok := p.Games["cs2"]
	return g, ok
}

type MatchStatsResponse struct {
	Items []MatchStatsItem `json:"items"`
}

type MatchStatsItem struct {
	Stats Stats `json:"stats"`
}

type LifetimeStatsResponse struct {
	PlayerID string `json:"player_id"`
	Lifetime struct {
		RecentResults []string `json:"Recent Results"`
	} `json:"lifetime"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Label string `json:"label"`
	Mode  string `json:"mode"`
	Type  string `json:"type"`
	Stats Stats  `json:"stats"`
}
