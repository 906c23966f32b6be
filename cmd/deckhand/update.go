package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mgaudreault/deckhand/internal/logger"
	"github.com/mgaudreault/deckhand/internal/plugin"
	"github.com/mgaudreault/deckhand/internal/repo"
)

func newUpdateCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	var url string
	var branch string
	var depth int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Clone or fast-forward the local plugin repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = os.Getenv("DECKHAND_PLUGIN_REPO")
			}

			manager := plugin.NewManager(flags.home, log)
			return repo.Sync(cmd.Context(), manager.Root(), repo.Options{
				URL:    url,
				Branch: branch,
				Depth:  depth,
			}, log)
		},
	}

	cmd.Flags().StringVar(&url, "repo", "", "Plugin repository URL (defaults to $DECKHAND_PLUGIN_REPO)")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to track")
	cmd.Flags().IntVar(&depth, "depth", 0, "Shallow clone depth, 0 for full history")

	return cmd
}
