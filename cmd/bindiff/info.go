package main

import (
	"fmt"

	"github.com/diffnav/bindiff/pkg/bindiff"
	"github.com/diffnav/bindiff/pkg/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <result-file>",
	Short: "Show metadata and per-binary statistics of a result file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		diff, err := bindiff.Open(cmd.Context(), args[0], bindiff.ReadOnly)
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer diff.Close()

		bold := color.New(color.Bold).SprintFunc()

		fmt.Printf("%s %s\n", bold("Differ:"), diff.Version)
		if diff.Description != "" {
			fmt.Printf("%s %s\n", bold("Description:"), diff.Description)
		}
		fmt.Printf("%s %s   %s %s\n",
			bold("Created:"), diff.Created.Format("2006-01-02 15:04:05"),
			bold("Modified:"), diff.Modified.Format("2006-01-02 15:04:05"))
		fmt.Printf("%s %s   %s %s\n",
			bold("Similarity:"), scoreString(diff.Similarity),
			bold("Confidence:"), scoreString(diff.Confidence))
		fmt.Println()

		printFile(bold("Primary:"), diff.PrimaryFile, diff.UnmatchedPrimaryCount())
		printFile(bold("Secondary:"), diff.SecondaryFile, diff.UnmatchedSecondaryCount())

		fmt.Printf("\nMatches: %d functions, %d basic blocks\n",
			len(diff.FunctionMatches()), len(diff.BasicBlockMatches()))
		return nil
	},
}

func printFile(label string, f *types.File, unmatched int) {
	fmt.Printf("%s %s (%s)\n", label, f.Filename, f.Hash)
	fmt.Printf("  functions: %d (+%d library), unmatched: %d\n", f.Functions, f.LibFunctions, unmatched)
	fmt.Printf("  basic blocks: %d (+%d library)\n", f.BasicBlocks, f.LibBasicBlocks)
	fmt.Printf("  instructions: %d (+%d library), calls: %d\n", f.Instructions, f.LibInstructions, f.Calls)
}

// scoreString colors a 0..1 score green/yellow/red.
func scoreString(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	switch {
	case v >= 0.8:
		return color.GreenString(s)
	case v >= 0.5:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}
