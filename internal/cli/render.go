package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"cs2-tracker/internal/domain"
	"cs2-tracker/internal/format"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const recentMatchCount = 5

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintProfile writes the header, rolling averages, lifetime summary, map
// table and latest matches of a profile bundle.
func PrintProfile(w io.Writer, b *domain.ProfileBundle, now time.Time) {
	p := b.Profile
	fmt.Fprintf(w, "\n%s  |  %s  |  Level %d  |  Elo %s\n", p.Nickname, p.Country, p.SkillLevel, format.Thousands(p.Elo))
	fmt.Fprintf(w, "Region %s rank: %s  |  Country rank: %s\n", p.Region, rankLabel(b.GlobalRank), rankLabel(b.CountryRank))
	if !p.ActivatedAt.IsZero() {
		fmt.Fprintf(w, "Member since %s\n", format.Date(p.ActivatedAt.Format(time.RFC3339)))
	}
	fmt.Fprintln(w, p.ProfileURL)

	fmt.Fprintln(w)
	PrintWindows(w, b.Windows)

	s := b.Summary
	fmt.Fprintf(w, "\nLifetime: %s matches  |  K/D %.2f  |  Win rate %d%%  |  HS %d%%\n\n",
		format.Thousands(s.Matches), s.AverageKillDeathRatio, s.WinRatePercentage, s.AverageHeadshotPercentage)

	if len(b.MapSegments) > 0 {
		printMapSegments(w, b.MapSegments)
		fmt.Fprintln(w)
	}
	printRecentMatches(w, b.Matches, now)
}

// PrintWindows writes one row per window with the previous window's values
// alongside. Windows without enough matches show "n/a".
func PrintWindows(w io.Writer, windows []domain.WindowComparison) {
	table := newTable(w)
	table.Header("LAST", "K", "A", "D", "K/R", "K/D", "HS%", "PREV K", "PREV K/D", "PREV HS%")
	for _, win := range windows {
		row := []any{strconv.Itoa(win.Size)}
		row = append(row, averagesRow(win.Current)...)
		prev := averagesRow(win.Previous)
		row = append(row, prev[0], prev[4], prev[5])
		table.Append(row...)
	}
	table.Render()
}

// PrintRanking writes a leaderboard page.
func PrintRanking(w io.Writer, region domain.Region, entries []domain.RankedListEntry) {
	fmt.Fprintf(w, "\nTop players in %s\n\n", region)
	table := newTable(w)
	table.Header("#", "BADGE", "NICKNAME", "COUNTRY", "ELO", "LEVEL")
	for _, e := range entries {
		table.Append(
			format.Thousands(e.Position),
			e.RankBucket,
			e.Nickname,
			e.Country,
			format.Thousands(e.Elo),
			strconv.Itoa(e.SkillLevel),
		)
	}
	table.Render()
}

func printMapSegments(w io.Writer, segments []domain.MapSegment) {
	table := newTable(w)
	table.Header("MAP", "MATCHES", "WIN%", "K/D", "HS%")
	for _, seg := range segments {
		var winRate, kd, hs float64
		if seg.Matches > 0 {
			winRate = float64(seg.Wins) * 100 / float64(seg.Matches)
		}
		if seg.Deaths > 0 {
			kd = float64(seg.Kills) / float64(seg.Deaths)
		}
		if seg.Kills > 0 {
			hs = float64(seg.Headshots) * 100 / float64(seg.Kills)
		}
		table.Append(
			seg.Label,
			format.Thousands(seg.Matches),
			fmt.Sprintf("%.0f%%", winRate),
			fmt.Sprintf("%.2f", kd),
			fmt.Sprintf("%.0f%%", hs),
		)
	}
	table.Render()
}

func printRecentMatches(w io.Writer, matches []domain.MatchRecord, now time.Time) {
	table := newTable(w)
	table.Header("PLAYED", "MAP", "RESULT", "K", "A", "D", "K/D", "HS%")
	for _, m := range matches[:min(recentMatchCount, len(matches))] {
		played := "n/a"
		if !m.PlayedAt.IsZero() {
			played = format.Since(m.PlayedAt, now)
		}
		table.Append(
			played,
			m.Map,
			result(m.Result),
			strconv.Itoa(m.Kills),
			strconv.Itoa(m.Assists),
			strconv.Itoa(m.Deaths),
			fmt.Sprintf("%.2f", m.KillDeathRatio),
			fmt.Sprintf("%.0f%%", m.HeadshotPercentage),
		)
	}
	table.Render()
}

func averagesRow(a *domain.WindowAverages) []any {
	if a == nil {
		return []any{"n/a", "n/a", "n/a", "n/a", "n/a", "n/a"}
	}
	return []any{
		strconv.Itoa(a.AvgKills),
		strconv.Itoa(a.AvgAssists),
		strconv.Itoa(a.AvgDeaths),
		fmt.Sprintf("%.2f", a.AvgKillsPerRound),
		fmt.Sprintf("%.2f", a.AvgKillDeathRatio),
		fmt.Sprintf("%d%%", a.AvgHeadshotPercentage),
	}
}

func rankLabel(pos *int) string {
	if r := format.Rank(pos); r != "" {
		return r
	}
	return "unranked"
}

func result(r string) string {
	switch r {
	case "1":
		return "W"
	case "0":
		return "L"
	default:
		return r
	}
}
