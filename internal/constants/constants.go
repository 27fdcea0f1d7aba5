package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
	RetryBackoff       = 250 * time.Millisecond
)

const (
	// MatchHistoryPageSize is the upstream maximum per history request.
	MatchHistoryPageSize = 100
	ProfileMatchLimit    = 200
	RankingPageMaxLimit  = 100
	RankingDefaultLimit  = 20
)

// AverageWindows are the rolling window sizes shown on a profile.
var AverageWindows = []int{10, 20, 50, 100}

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)
