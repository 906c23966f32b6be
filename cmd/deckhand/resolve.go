package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mgaudreault/deckhand/internal/logger"
	"github.com/mgaudreault/deckhand/internal/plugin"
	"github.com/mgaudreault/deckhand/internal/ui"
)

func newResolveCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	var kind string
	var script string

	cmd := &cobra.Command{
		Use:   "resolve <component> <version>",
		Short: "Resolve the best plugin artifact for a component version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			component, version := args[0], args[1]
			manager := plugin.NewManager(flags.home, log)
			palette := ui.NewPalette(term.IsTerminal(int(os.Stdout.Fd())))

			var artifact plugin.Artifact
			if script != "" {
				if resolved := manager.ResolveScript(script, component, version); resolved != nil {
					artifact = resolved
				}
			} else {
				resolved, err := manager.Resolve(kind, component, version)
				if err != nil {
					return err
				}
				artifact = resolved
			}

			if artifact == nil {
				fmt.Printf("%s no compatible plugin for %s %s\n", palette.Failure("missing"), component, version)
				return nil
			}

			badge := palette.Success("exact")
			if !artifact.Version().Equal(plugin.ParseVersion(version)) {
				badge = palette.Warning("fallback")
			}
			fmt.Printf("%s %s (%s)\n", badge, artifact, artifact.Root())
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", plugin.KindParam, "Plugin kind to resolve (param or files)")
	cmd.Flags().StringVar(&script, "script", "", "Resolve a script plugin by name instead of a declarative kind")

	return cmd
}
