package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mgaudreault/deckhand/internal/logger"
	"github.com/mgaudreault/deckhand/internal/plugin"
	"github.com/mgaudreault/deckhand/internal/ui"
)

func newListCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list [component]",
		Short: "List the plugins available in the local repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := plugin.NewManager(flags.home, log)
			palette := ui.NewPalette(term.IsTerminal(int(os.Stdout.Fd())))

			components, err := manager.Components()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				components = []string{args[0]}
			}
			if len(components) == 0 {
				fmt.Printf("no plugins under %s; run %s first\n", manager.Root(), palette.Accent("deckhand update"))
				return nil
			}

			for _, component := range components {
				versions, err := manager.Versions(component)
				if err != nil {
					return err
				}

				fmt.Println(palette.Accent(component))
				for _, version := range versions {
					dir := filepath.Join(manager.Root(), component, version)
					fmt.Printf("  %-12s %s\n", version, palette.Muted(describeVersionDir(dir)))
				}
			}
			return nil
		},
	}
}

// describeVersionDir summarizes which plugin kinds one version directory
// provides.
func describeVersionDir(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var kinds []string
	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch name := entry.Name(); {
		case name == plugin.ParamManifest:
			kinds = append(kinds, plugin.KindParam)
		case name == plugin.FileMapManifest:
			kinds = append(kinds, plugin.KindFileMap)
		case strings.HasSuffix(name, plugin.ScriptExtension):
			scripts = append(scripts, strings.TrimSuffix(name, plugin.ScriptExtension))
		}
	}

	if len(scripts) > 0 {
		kinds = append(kinds, "scripts: "+strings.Join(scripts, ", "))
	}
	return strings.Join(kinds, "  ")
}
