package domain

import (
	"time"
)

// AccountID is the SteamID64 a search resolves to. It is the only identifier
// accepted by the profile lookup.
type AccountID string

type PlayerProfile struct {
	PlayerID    string // matchmaking platform id, keys stats lookups
	AccountID   AccountID
	Nickname    string
	Country     string
	Avatar      string
	Region      string
	SkillLevel  int
	Elo         int
	ProfileURL  string
	ActivatedAt time.Time
}

// RankedProfile is a profile with its leaderboard positions. A nil position
// means the player is unranked.
type RankedProfile struct {
	Profile     PlayerProfile
	GlobalRank  *int
	CountryRank *int
}

type RankedListEntry struct {
	Position   int
	PlayerID   string
	Nickname   string
	Country    string
	Elo        int
	SkillLevel int
	RankBucket string // empty above position 1000
}

// MatchRecord is one played match. Slices of records are newest-first.
type MatchRecord struct {
	MatchID            string
	Map                string
	Result             string
	Kills              int
	Assists            int
	Deaths             int
	KillsPerRound      float64
	KillDeathRatio     float64
	HeadshotPercentage float64
	PlayedAt           time.Time
}

type MapSegment struct {
	Label     string
	Mode      string
	Matches   int
	Kills     int
	Deaths    int
	Wins      int
	Headshots int
}

type LifetimeAggregate struct {
	Segments      []MapSegment
	RecentResults []string
}

type WindowAverages struct {
	AvgKills              int
	AvgAssists            int
	AvgDeaths             int
	AvgKillsPerRound      float64
	AvgKillDeathRatio     float64
	AvgHeadshotPercentage int
}

type LifetimeSummary struct {
	Matches                   int
	AverageKillDeathRatio     float64
	WinRatePercentage         int
	AverageHeadshotPercentage int
}

// WindowComparison holds the averages of the latest Size matches and of the
// Size matches before them. Either side is nil when history is too short.
type WindowComparison struct {
	Size     int
	Current  *WindowAverages
	Previous *WindowAverages
}

type ProfileBundle struct {
	RankedProfile
	Matches     []MatchRecord
	Lifetime    LifetimeAggregate
	Summary     LifetimeSummary
	Windows     []WindowComparison
	MapSegments []MapSegment
}
