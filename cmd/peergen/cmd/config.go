package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/peergen/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage peergen configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default peergen.toml",
	Long: `Write a commented peergen.toml populated with default settings.

The file is written to the current directory unless a path is given.
Refuses to overwrite an existing file unless --force is set.

Examples:
  peergen config init
  peergen config init --force
  peergen config init tools/peergen.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigFileName
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.WriteDefault(path, configForce); err != nil {
		return err
	}
	pterm.Printf("%s %s\n", pterm.LightGreen("✓ Wrote"), pterm.White(path))
	return nil
}
