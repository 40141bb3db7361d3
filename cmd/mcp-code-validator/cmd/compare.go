package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/compare"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare <project> <source-branch> <target-branch>",
	Short: "Compare the element sets of two branches",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			result, err := compare.New(st).Compare(ctx, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			printSection(fmt.Sprintf("Only in %s", result.SourceBranch), result.OnlyInSource)
			printSection(fmt.Sprintf("Only in %s", result.TargetBranch), result.OnlyInTarget)
			fmt.Printf("In both: %d elements\n", len(result.InBoth))
			return nil
		})
	},
}

func printSection(title string, keys []graph.ElementKey) {
	fmt.Printf("%s: %d\n", title, len(keys))
	for _, key := range keys {
		fmt.Printf("  %s (%s)\n", key.Name, key.Kind)
	}
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
