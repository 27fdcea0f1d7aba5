package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cs2-tracker/internal/constants"
	"cs2-tracker/internal/domain"

	"github.com/spf13/cobra"
)

// Tracker is the part of the core the player commands call.
type Tracker interface {
	ResolveAndFetchProfile(ctx context.Context, search string) (*domain.ProfileBundle, error)
	ComputeAverages(ctx context.Context, search string, window int) (*domain.WindowComparison, error)
}

type Rankings interface {
	FetchRegionRanking(ctx context.Context, region domain.Region, limit, offset int) ([]domain.RankedListEntry, error)
}

// Deps are built lazily so help and flag errors never need API keys.
type Deps struct {
	Tracker  Tracker
	Rankings Rankings
	Now      func() time.Time
}

type Loader func() (*Deps, error)

// NewRootCommand builds the tracker command tree.
func NewRootCommand(load Loader) *cobra.Command {
	var deps *Deps
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "CS2 FACEIT player stats",
		Long:          "Look up FACEIT CS2 players by SteamID64, Steam profile URL, vanity URL or nickname.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			d, err := load()
			if err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}
			if d.Now == nil {
				d.Now = time.Now
			}
			deps = d
			return nil
		},
	}

	get := func() *Deps { return deps }
	root.AddCommand(newPlayerCommand(get))
	root.AddCommand(newTopCommand(get))
	root.AddCommand(newAveragesCommand(get))
	return root
}

func newPlayerCommand(deps func() *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "player <search>",
		Short: "Show a player's profile, rolling averages and recent matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			bundle, err := d.Tracker.ResolveAndFetchProfile(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			PrintProfile(cmd.OutOrStdout(), bundle, d.Now())
			return nil
		},
	}
}

func newTopCommand(deps func() *Deps) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "top <region>",
		Short: "Show a region leaderboard page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region, err := domain.ParseRegion(args[0])
			if err != nil {
				return err
			}
			entries, err := deps().Rankings.FetchRegionRanking(cmd.Context(), region, limit, offset)
			if err != nil {
				return describe(err)
			}
			PrintRanking(cmd.OutOrStdout(), region, entries)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", constants.RankingDefaultLimit, "number of players to show (max 100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "leaderboard offset")
	return cmd
}

func newAveragesCommand(deps func() *Deps) *cobra.Command {
	var window int
	cmd := &cobra.Command{
		Use:   "averages <search>",
		Short: "Compare the latest matches with the ones before them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := deps().Tracker.ComputeAverages(cmd.Context(), args[0], window)
			if err != nil {
				return describe(err)
			}
			PrintWindows(cmd.OutOrStdout(), []domain.WindowComparison{*cmp})
			return nil
		},
	}
	cmd.Flags().IntVar(&window, "window", 20, "matches per window (1-100)")
	return cmd
}

// describe turns core errors into messages fit for a terminal.
func describe(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errors.New("player not found")
	case errors.Is(err, domain.ErrRankingUnavailable):
		return errors.New("ranking is unavailable right now, try again later")
	case domain.IsTransport(err):
		return fmt.Errorf("upstream request failed: %w", err)
	default:
		return err
	}
}
