package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgaudreault/deckhand/internal/config"
	"github.com/mgaudreault/deckhand/internal/logger"
	"github.com/mgaudreault/deckhand/internal/plugin"
	"github.com/mgaudreault/deckhand/internal/remote"
	"github.com/mgaudreault/deckhand/internal/stdio"
)

func newRunCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run <script> <component> <version> [-- extra args]",
		Short: "Resolve and invoke a script plugin for a component version",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, component, version := args[0], args[1], args[2]
			extra := args[3:]

			manager := plugin.NewManager(flags.home, log)
			artifact := manager.ResolveScript(script, component, version)
			if artifact == nil {
				return fmt.Errorf("no compatible %s plugin for %s %s", script, component, version)
			}

			var cluster *config.ClusterConfig
			options := map[string]string{}
			clients := map[string]remote.Client{"local": &remote.LocalClient{}}
			components := []string{component}

			if configPath != "" {
				parsed, err := config.ParseClusterConfig(configPath)
				if err != nil {
					return err
				}
				cluster = parsed
				components = cluster.ComponentNames()

				if componentCfg, ok := cluster.Component(component); ok {
					options = componentCfg.Options
					clients = make(map[string]remote.Client, len(componentCfg.Servers))
					for _, host := range componentCfg.Hosts() {
						// The SSH transport lives outside this tool;
						// every host is driven through the local client
						// until one is wired in.
						clients[host] = &remote.LocalClient{}
					}
				}
			}

			console := stdio.NewConsole(os.Stdout, flags.verbose)
			ret := artifact.Invoke(cmd.Context(), plugin.Invocation{
				Components: components,
				Clients:    clients,
				Cluster:    cluster,
				Command:    script,
				Options:    options,
				IO:         console,
				Extra:      extra,
			})

			if !ret.OK() {
				return fmt.Errorf("plugin %s reported failure", artifact)
			}

			if args := ret.Args(); len(args) > 0 {
				console.Print(strings.Join(args, " "))
			}
			for key, value := range ret.Kwargs() {
				console.Verbose(fmt.Sprintf("%s=%s", key, value))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Cluster configuration file handed to the script")

	return cmd
}
