package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/config"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/indexer"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/infer"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/store"
	"github.com/robertluiz/mcp-code-validator-sub000/util"
)

var (
	projectFlag string
	branchFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "mcp-code-validator",
	Short: "Branch-scoped code knowledge graph over Neo4j",
	Long: `mcp-code-validator indexes source-code elements into a Neo4j
knowledge graph partitioned by project and branch, and validates code
against it.

Run "mcp-code-validator serve" to expose the graph over MCP, or use the
index/contexts/compare commands directly.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "project partition (default: repo directory name)")
	rootCmd.PersistentFlags().StringVarP(&branchFlag, "branch", "b", "", "branch partition (default: current git branch)")
}

// newLogger builds the process logger writing to stderr so stdout stays
// free for MCP stdio framing.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// openStore connects to Neo4j with env configuration and ensures the
// identity constraints exist.
func openStore(ctx context.Context, log *zap.Logger) (*store.Store, config.Config, error) {
	cfg := config.Load()
	st, err := store.New(ctx, cfg.Neo4j, log)
	if err != nil {
		return nil, cfg, err
	}
	if err := st.EnsureConstraints(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, cfg, err
	}
	return st, cfg, nil
}

func newIndexer(st *store.Store, log *zap.Logger) *indexer.Indexer {
	return indexer.New(st, infer.NewLexical(), log)
}

// resolveDefaults fills project/branch from flags, env, then the git
// working tree.
func resolveDefaults(cfg config.Config) (project, branch string) {
	project = projectFlag
	branch = branchFlag
	if project == "" {
		project = cfg.Defaults.Project
	}
	if branch == "" {
		branch = cfg.Defaults.Branch
	}
	if project != "" && branch != "" {
		return project, branch
	}
	if root, err := util.FindGitRoot(); err == nil {
		if project == "" {
			project = util.ProjectName(root)
		}
		if branch == "" {
			branch = util.CurrentBranch(root)
		}
	}
	return project, branch
}
