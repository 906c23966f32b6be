package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgaudreault/deckhand/internal/logger"
)

type rootFlags struct {
	verbose bool
	home    string
}

func newRootCmd(log *logger.Logger) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "deckhand",
		Short:         "Deckhand resolves and runs versioned deployment plugins",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringVar(&flags.home, "home", defaultHome(), "Deckhand home directory holding the plugin repository")

	cmd.AddCommand(newListCmd(flags, log))
	cmd.AddCommand(newResolveCmd(flags, log))
	cmd.AddCommand(newRunCmd(flags, log))
	cmd.AddCommand(newUpdateCmd(flags, log))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func defaultHome() string {
	if env := os.Getenv("DECKHAND_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deckhand"
	}
	return filepath.Join(home, ".deckhand")
}
