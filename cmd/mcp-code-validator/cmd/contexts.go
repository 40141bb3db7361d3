package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/store"
)

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "Manage project:branch contexts",
}

var contextsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every context with element counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			infos, err := st.ListContexts(ctx)
			if err != nil {
				return err
			}
			printContexts(infos)
			return nil
		})
	},
}

var contextsBranchesCmd = &cobra.Command{
	Use:   "branches <project>",
	Short: "List one project's branches with element counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			infos, err := st.ListBranches(ctx, args[0])
			if err != nil {
				return err
			}
			printContexts(infos)
			return nil
		})
	},
}

var contextsDeleteCmd = &cobra.Command{
	Use:   "delete <project> <branch>",
	Short: "Delete every node and edge of one context",
	Long: `Detach and delete the whole subgraph of project:branch.

Warning: this operation cannot be undone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			gctx := graph.ResolveContext(args[0], args[1])
			deleted, err := st.DeleteContext(ctx, gctx)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d nodes from %q\n", deleted, gctx)
			return nil
		})
	},
}

// withStore runs f with a connected store, closing it on all paths.
func withStore(f func(context.Context, *store.Store) error) error {
	ctx := context.Background()
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	st, _, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer st.Close(ctx)
	return f(ctx, st)
}

func printContexts(infos []graph.ContextInfo) {
	if len(infos) == 0 {
		fmt.Println("No contexts found.")
		return
	}
	for _, info := range infos {
		fmt.Printf("%-40s files=%-5d functions=%-5d classes=%-5d components=%d\n",
			info.Context, info.Files, info.Functions, info.Classes, info.Components)
	}
}

func init() {
	contextsCmd.AddCommand(contextsListCmd)
	contextsCmd.AddCommand(contextsBranchesCmd)
	contextsCmd.AddCommand(contextsDeleteCmd)
	rootCmd.AddCommand(contextsCmd)
}
