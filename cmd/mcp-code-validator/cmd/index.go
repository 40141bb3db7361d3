package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

var indexCmd = &cobra.Command{
	Use:   "index <path>",
	Short: "Index a directory tree into the graph",
	Long: `Walk a directory, parse every supported source file and index its
elements under the project:branch context. Honours the root .gitignore.

Examples:
  mcp-code-validator index .
  mcp-code-validator index ./src -p my-app -b feature/login`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		st, cfg, err := openStore(ctx, log)
		if err != nil {
			return err
		}
		defer st.Close(ctx)

		project, branch := resolveDefaults(cfg)
		gctx := graph.ResolveContext(project, branch)

		fileResults, err := newIndexer(st, log).IndexDirectory(ctx, gctx, args[0])
		if err != nil {
			return err
		}

		var elements, relationships, failures int
		for _, r := range fileResults {
			elements += r.Indexed
			relationships += r.Relationships
			failures += len(r.Errors)
			for _, e := range r.Errors {
				fmt.Printf("  %s: %s\n", r.FilePath, e)
			}
		}
		fmt.Printf("Indexed %d files, %d elements, %d relationships into %q (%d errors)\n",
			len(fileResults), elements, relationships, gctx, failures)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
