package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fluffymud/internal/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fluffymud",
		Short: "FluffyMUD telnet game server",
		Long: `FluffyMUD runs a telnet MUD whose messages follow each player's gender:
"|s", "|o", "|p" and "|a" markers become the right pronouns for every reader.

Run without a subcommand to start the server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	root.AddCommand(newServeCmd(), newConfigCmd(), newProfilesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
