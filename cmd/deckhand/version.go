package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// appVersion is stamped by the release workflow via -ldflags.
var appVersion = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the deckhand version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("deckhand %s\n", appVersion)
		},
	}
}
