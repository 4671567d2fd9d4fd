package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <steamId>",
		Short: "Show the derived statistics of one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := opts.statsService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := svc.PlayerStats(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("stats for %s: %w", args[0], err)
			}
			printPlayerView(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func newLeaderboardCmd(opts *options) *cobra.Command {
	var (
		sortBy string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "List the top players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := opts.statsService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			players, err := svc.Leaderboard(cmd.Context(), sortBy, limit)
			if err != nil {
				return err
			}
			printLeaderboard(cmd.OutOrStdout(), players)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "kills", "kills, deaths, matches or wins")
	cmd.Flags().IntVar(&limit, "limit", 10, "number of players")
	return cmd
}

func newRanksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ranks",
		Short: "Print the rank ladders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := opts.statsService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			tiers, err := svc.RankConfig(cmd.Context())
			if err != nil {
				return err
			}
			printTiers(cmd.OutOrStdout(), tiers)
			return nil
		},
	}
}

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

func printPlayerView(w io.Writer, v *stats.PlayerView) {
	fmt.Fprintf(w, "\n%s  (%s)\n\n", v.DisplayName, v.ID)

	table := newTable(w)
	table.Header("STAT", "VALUE")
	table.Append("Kills", strconv.FormatInt(v.Kills, 10))
	table.Append("Deaths", strconv.FormatInt(v.Deaths, 10))
	table.Append("K/D", fmt.Sprintf("%.2f", v.KD))
	table.Append("Revives", strconv.FormatInt(v.Revives, 10))
	table.Append("Teamkills", strconv.FormatInt(v.Teamkills, 10))
	table.Append("Matches", strconv.FormatInt(v.MatchesPlayed, 10))
	table.Append("Win rate", fmt.Sprintf("%.1f%%", v.WinRate))
	table.Append("Playtime", v.Playtime)
	table.Append("Squad leader", v.SquadLeaderTime)
	table.Append("Commander", v.CommanderTime)
	table.Append("Heavy vehicles", v.HeavyVehicleTime)
	table.Append("Helicopters", v.HelicopterTime)
	table.Append("Vehicle kills", strconv.FormatInt(v.VehicleKills, 10))
	table.Append("Knife kills", strconv.FormatInt(v.KnifeKills, 10))
	table.Append("Avg kills", fmt.Sprintf("%.2f", v.AverageKillsPerMatch))
	if v.TopRole != nil {
		table.Append("Top role", v.TopRole.Name)
	}
	if v.TopWeapon != nil {
		table.Append("Top weapon", v.TopWeapon.Name)
	}
	if v.Rank != nil && v.Rank.Current != nil {
		table.Append("Rank progress", fmt.Sprintf("%.0f%%", v.Rank.ProgressPercent))
	}
	table.Render()
}

func printLeaderboard(w io.Writer, players []analytics.PlayerSummary) {
	table := newTable(w)
	table.Header("#", "NAME", "STEAM ID", "K", "D", "K/D", "MATCHES", "WINS", "WIN%")
	for i, p := range players {
		table.Append(
			strconv.Itoa(i+1),
			p.DisplayName,
			p.ID,
			strconv.FormatInt(p.Kills, 10),
			strconv.FormatInt(p.Deaths, 10),
			fmt.Sprintf("%.2f", stats.KillDeathRatio(p.Kills, p.Deaths)),
			strconv.FormatInt(p.MatchesPlayed, 10),
			strconv.FormatInt(p.MatchesWon, 10),
			fmt.Sprintf("%.1f%%", stats.WinRate(p.MatchesWon, p.MatchesPlayed)),
		)
	}
	table.Render()
}

func printTiers(w io.Writer, config stats.TierConfig) {
	table := newTable(w)
	table.Header("CATEGORY", "TIER", "NEED SCORE", "ICON")
	for _, category := range sortedKeys(config) {
		for i, tier := range config[category] {
			table.Append(category, strconv.Itoa(i+1), strconv.FormatInt(tier.Threshold, 10), tier.IconRef)
		}
	}
	table.Render()
}

func sortedKeys(config stats.TierConfig) []string {
	return slices.Sorted(maps.Keys(config))
}
