package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/games/t2048"
	"github.com/vovakirdan/term2048/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresAll     bool
	flagScoresSummary bool
	flagScoresClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top scores for a variant (default: the configured one).
Preset and custom rule sets have their own keys, e.g. classic-hard.

Examples:
  t2048 scores
  t2048 scores mini --limit 10
  t2048 scores classic --all
  t2048 scores --summary
  t2048 scores endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 0, "Number of entries (default from config)")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every score of the variant")
	scoresCmd.Flags().BoolVar(&flagScoresSummary, "summary", false, "Summarize every variant with scores")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the variant's scores")
}

func runScores(cmd *cobra.Command, args []string) error {
	variant := appCfg.Variant
	if len(args) == 1 {
		variant = args[0]
	}
	if variant == "" {
		variant = t2048.Variants[0].ID
	}

	store, err := storage.Open(appCfg.Scores.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case flagScoresSummary:
		return printSummary(out, store)

	case flagScoresClear:
		n, err := store.ClearScores(variant)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d %s for %s.\n", n, plural(n, "score", "scores"), variant)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = store.AllScores(variant)
	} else {
		limit := flagScoresLimit
		if limit <= 0 {
			limit = appCfg.Scores.Limit
		}
		scores, err = store.TopScores(variant, limit)
	}
	if err != nil {
		return err
	}

	stats, err := store.GameStats(variant)
	if err != nil {
		return err
	}

	printScores(out, variant, scores, stats)
	return nil
}

// printScores writes a ranked score table followed by the variant's totals.
func printScores(out io.Writer, variant string, scores []storage.ScoreEntry, stats *storage.Stats) {
	fmt.Fprintf(out, "High Scores - %s\n\n", variant)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 't2048 play' to set the first high score!")
		return
	}

	fmt.Fprintf(out, "  %-4s  %10s  %6s  %s\n", "Rank", "Score", "Tile", "When")
	fmt.Fprintf(out, "  %-4s  %10s  %6s  %s\n", "----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %10s  %6d  %s\n", i+1, humanize.Comma(int64(e.Score)), e.MaxTile, humanize.Time(e.CreatedAt))
	}

	if stats != nil && stats.GamesCount > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s, average %s, total %s, best tile %d\n",
			humanize.Comma(int64(stats.GamesCount)), plural(int64(stats.GamesCount), "game", "games"),
			humanize.Comma(int64(stats.AvgScore)), humanize.Comma(stats.TotalScore), stats.BestTile)
	}
}

// printSummary writes one line per stored variant.
func printSummary(out io.Writer, store *storage.Store) error {
	stats, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Fprintf(out, "  %-16s  %6s  %10s  %6s  %s\n", "Variant", "Games", "Best", "Tile", "Last played")
	fmt.Fprintf(out, "  %-16s  %6s  %10s  %6s  %s\n", "-------", "-----", "----", "----", "-----------")
	for _, id := range ids {
		st := stats[id]
		fmt.Fprintf(out, "  %-16s  %6s  %10s  %6d  %s\n",
			id, humanize.Comma(int64(st.GamesCount)), humanize.Comma(int64(st.HighScore)), st.BestTile, humanize.Time(st.LastPlayed))
	}
	return nil
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
