// Package stats derives rolling-window averages and lifetime summaries from
// raw match records. Everything here is pure.
package stats

import (
	"math"
	"slices"

	"cs2-tracker/internal/domain"
)

// CompetitiveMode is the only segment mode counted in lifetime summaries.
const CompetitiveMode = "5v5"

// competitiveMaps is the active duty pool, in display order.
var competitiveMaps = []string{"Mirage", "Anubis", "Dust2", "Vertigo", "Ancient", "Nuke", "Overpass", "Inferno"}

// ComputeWindowAverages averages matches[startIndex:startIndex+windowSize].
// It returns nil when that window holds no matches.
//
// Sums are always divided by windowSize, so a short history yields averages
// below the player's real per-match numbers.
func ComputeWindowAverages(matches []domain.MatchRecord, windowSize, startIndex int) *domain.WindowAverages {
	if windowSize <= 0 || startIndex < 0 || startIndex >= len(matches) {
		return nil
	}
	end := startIndex + min(windowSize, len(matches)-startIndex)

	var kills, assists, deaths, kpr, kd, hs float64
	for _, m := range matches[startIndex:end] {
		kills += float64(m.Kills)
		assists += float64(m.Assists)
		deaths += float64(m.Deaths)
		kpr += m.KillsPerRound
		kd += m.KillDeathRatio
		hs += m.HeadshotPercentage
	}

	n := float64(windowSize)
	return &domain.WindowAverages{
		AvgKills:              ceil(kills / n),
		AvgAssists:            ceil(assists / n),
		AvgDeaths:             ceil(deaths / n),
		AvgKillsPerRound:      kpr / n,
		AvgKillDeathRatio:     kd / n,
		AvgHeadshotPercentage: ceil(hs / n),
	}
}

// CompareWindows averages the latest size matches and the size matches
// played before them.
func CompareWindows(matches []domain.MatchRecord, size int) domain.WindowComparison {
	return domain.WindowComparison{
		Size:     size,
		Current:  ComputeWindowAverages(matches, size, 0),
		Previous: ComputeWindowAverages(matches, size, size),
	}
}

// ComputeLifetimeSummary totals the competitive segments of agg.
func ComputeLifetimeSummary(agg domain.LifetimeAggregate) domain.LifetimeSummary {
	var matches, kills, deaths, wins, headshots int
	for _, seg := range agg.Segments {
		if !isCompetitive(seg) {
			continue
		}
		matches += seg.Matches
		kills += seg.Kills
		deaths += seg.Deaths
		wins += seg.Wins
		headshots += seg.Headshots
	}

	summary := domain.LifetimeSummary{Matches: matches}
	if deaths > 0 {
		summary.AverageKillDeathRatio = math.Round(float64(kills)/float64(deaths)*100) / 100
	}
	if matches > 0 {
		summary.WinRatePercentage = ceil(float64(wins*100) / float64(matches))
	}
	if kills > 0 {
		summary.AverageHeadshotPercentage = ceil(float64(headshots*100) / float64(kills))
	}
	return summary
}

// CompetitiveSegments returns the segments counted by ComputeLifetimeSummary,
// ordered by the map pool display order.
func CompetitiveSegments(agg domain.LifetimeAggregate) []domain.MapSegment {
	out := make([]domain.MapSegment, 0, len(competitiveMaps))
	for _, seg := range agg.Segments {
		if isCompetitive(seg) {
			out = append(out, seg)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.MapSegment) int {
		return slices.Index(competitiveMaps, a.Label) - slices.Index(competitiveMaps, b.Label)
	})
	return out
}

func isCompetitive(seg domain.MapSegment) bool {
	return seg.Mode == CompetitiveMode && slices.Contains(competitiveMaps, seg.Label)
}

func ceil(v float64) int {
	return int(math.Ceil(v))
}
