package server

import (
	"time"

	"cs2-tracker/internal/domain"
)

type GetProfileRequest struct {
	Search string `json:"search"`
}

type GetProfileResponse struct {
	Profile     Profile      `json:"profile"`
	GlobalRank  *int         `json:"global_rank"`
	CountryRank *int         `json:"country_rank"`
	Summary     Summary      `json:"summary"`
	Windows     []Window     `json:"windows"`
	MapSegments []MapSegment `json:"map_segments"`
	Matches     []Match      `json:"matches"`
	Recent      []string     `json:"recent_results"`
}

type GetRankingRequest struct {
	Region string `json:"region"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type GetRankingResponse struct {
	Region  string         `json:"region"`
	Entries []RankingEntry `json:"entries"`
}

type GetAveragesRequest struct {
	Search string `json:"search"`
	Window int    `json:"window"`
}

type GetAveragesResponse struct {
	Window Window `json:"window"`
}

type Profile struct {
	PlayerID    string `json:"player_id"`
	SteamID     string `json:"steam_id"`
	Nickname    string `json:"nickname"`
	Country     string `json:"country"`
	Avatar      string `json:"avatar"`
	Region      string `json:"region"`
	SkillLevel  int    `json:"skill_level"`
	Elo         int    `json:"elo"`
	ProfileURL  string `json:"profile_url"`
	ActivatedAt string `json:"activated_at,omitempty"`
}

type Summary struct {
	Matches         int     `json:"matches"`
	KillDeathRatio  float64 `json:"kd_ratio"`
	WinRate         int     `json:"win_rate"`
	HeadshotPercent int     `json:"headshot_percent"`
}

type Averages struct {
	Kills           int     `json:"kills"`
	Assists         int     `json:"assists"`
	Deaths          int     `json:"deaths"`
	KillsPerRound   float64 `json:"kr_ratio"`
	KillDeathRatio  float64 `json:"kd_ratio"`
	HeadshotPercent int     `json:"headshot_percent"`
}

type Window struct {
	Size     int       `json:"size"`
	Current  *Averages `json:"current"`
	Previous *Averages `json:"previous"`
}

type MapSegment struct {
	Map       string `json:"map"`
	Matches   int    `json:"matches"`
	Kills     int    `json:"kills"`
	Deaths    int    `json:"deaths"`
	Wins      int    `json:"wins"`
	Headshots int    `json:"headshots"`
}

type Match struct {
	MatchID         string  `json:"match_id"`
	Map             string  `json:"map"`
	Result          string  `json:"result"`
	Kills           int     `json:"kills"`
	Assists         int     `json:"assists"`
	Deaths          int     `json:"deaths"`
	KillsPerRound   float64 `json:"kr_ratio"`
	KillDeathRatio  float64 `json:"kd_ratio"`
	HeadshotPercent float64 `json:"headshot_percent"`
	PlayedAt        string  `json:"played_at,omitempty"`
}

type RankingEntry struct {
	Position   int    `json:"position"`
	PlayerID   string `json:"player_id"`
	Nickname   string `json:"nickname"`
	Country    string `json:"country"`
	Elo        int    `json:"elo"`
	SkillLevel int    `json:"skill_level"`
	Bucket     string `json:"bucket"`
}

func toProfileResponse(b *domain.ProfileBundle) *GetProfileResponse {
	p := b.Profile
	resp := &GetProfileResponse{
		Profile: Profile{
			PlayerID:    p.PlayerID,
			SteamID:     string(p.AccountID),
			Nickname:    p.Nickname,
			Country:     p.Country,
			Avatar:      p.Avatar,
			Region:      p.Region,
			SkillLevel:  p.SkillLevel,
			Elo:         p.Elo,
			ProfileURL:  p.ProfileURL,
			ActivatedAt: timestamp(p.ActivatedAt),
		},
		GlobalRank:  b.GlobalRank,
		CountryRank: b.CountryRank,
		Summary: Summary{
			Matches:         b.Summary.Matches,
			KillDeathRatio:  b.Summary.AverageKillDeathRatio,
			WinRate:         b.Summary.WinRatePercentage,
			HeadshotPercent: b.Summary.AverageHeadshotPercentage,
		},
		Windows:     make([]Window, 0, len(b.Windows)),
		MapSegments: make([]MapSegment, 0, len(b.MapSegments)),
		Matches:     make([]Match, 0, len(b.Matches)),
		Recent:      b.Lifetime.RecentResults,
	}
	for _, w := range b.Windows {
		resp.Windows = append(resp.Windows, toWindow(w))
	}
	for _, seg := range b.MapSegments {
		resp.MapSegments = append(resp.MapSegments, MapSegment{
			Map:       seg.Label,
			Matches:   seg.Matches,
			Kills:     seg.Kills,
			Deaths:    seg.Deaths,
			Wins:      seg.Wins,
			Headshots: seg.Headshots,
		})
	}
	for _, m := range b.Matches {
		resp.Matches = append(resp.Matches, Match{
			MatchID:         m.MatchID,
			Map:             m.Map,
			Result:          m.Result,
			Kills:           m.Kills,
			Assists:         m.Assists,
			Deaths:          m.Deaths,
			KillsPerRound:   m.KillsPerRound,
			KillDeathRatio:  m.KillDeathRatio,
			HeadshotPercent: m.HeadshotPercentage,
			PlayedAt:        timestamp(m.PlayedAt),
		})
	}
	return resp
}

func toWindow(w domain.WindowComparison) Window {
	return Window{Size: w.Size, Current: toAverages(w.Current), Previous: toAverages(w.Previous)}
}

func toAverages(a *domain.WindowAverages) *Averages {
	if a == nil {
		return nil
	}
	return &Averages{
		Kills:           a.AvgKills,
		Assists:         a.AvgAssists,
		Deaths:          a.AvgDeaths,
		KillsPerRound:   a.AvgKillsPerRound,
		KillDeathRatio:  a.AvgKillDeathRatio,
		HeadshotPercent: a.AvgHeadshotPercentage,
	}
}

func toRankingEntries(entries []domain.RankedListEntry) []RankingEntry {
	out := make([]RankingEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, RankingEntry{
			Position:   e.Position,
			PlayerID:   e.PlayerID,
			Nickname:   e.Nickname,
			Country:    e.Country,
			Elo:        e.Elo,
			SkillLevel: e.SkillLevel,
			Bucket:     e.RankBucket,
		})
	}
	return out
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
