package main

import (
	"fmt"
	"sort"

	"github.com/diffnav/bindiff/pkg/bindiff"
	"github.com/spf13/cobra"
)

var functionsMinSimilarity float64

var functionsCmd = &cobra.Command{
	Use:   "functions <result-file>",
	Short: "List matched function pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		diff, err := bindiff.Open(cmd.Context(), args[0], bindiff.ReadOnly)
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer diff.Close()

		matches := diff.FunctionMatches()
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].Address1 < matches[j].Address1
		})

		for _, m := range matches {
			if m.Similarity < functionsMinSimilarity {
				continue
			}
			fmt.Printf("%#016x %-30s  %#016x %-30s  %s  sim=%.3f conf=%.3f\n",
				m.Address1, m.Name1, m.Address2, m.Name2, m.Algorithm, m.Similarity, m.Confidence)
		}
		return nil
	},
}

func init() {
	functionsCmd.Flags().Float64Var(&functionsMinSimilarity, "min-similarity", 0, "only list matches at or above this similarity")
}
