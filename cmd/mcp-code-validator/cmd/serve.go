package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/config"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the knowledge graph over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		st, cfg, err := openStore(ctx, log)
		if err != nil {
			return err
		}
		defer st.Close(context.Background())

		project, branch := resolveDefaults(cfg)
		srv := server.New(st, newIndexer(st, log), config.Defaults{Project: project, Branch: branch}, log)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
