package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/games/t2048"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in variants",
	Long:  `Shows every built-in variant with its board size and target tile.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range t2048.Variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Rules")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, v := range t2048.Variants {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, v.ID, v.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 't2048 play --variant <id>' to play one directly.")
}
