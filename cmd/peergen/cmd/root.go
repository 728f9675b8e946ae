package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/logger"
)

var (
	jsonLogs  bool
	verbosity int
)

var rootCmd = &cobra.Command{
	Use:   "peergen",
	Short: "Compile a protocol metamodel into symmetric RPC artifacts",
	Long: `peergen compiles a declarative protocol metamodel into three Python
artifacts: shared type definitions plus Initiator and Responder dispatcher
definitions.

The metamodel declares structures, enumerations, type aliases, and
direction-tagged requests and notifications. peergen turns them into a types
module in dependency order and one dispatcher class per role, each with
senders, handler stubs, and a wire-method dispatch table.

Examples:
  peergen generate                         # Compile using peergen.toml settings
  peergen generate --model metaModel.json  # Explicit model path
  peergen generate --watch                 # Regenerate whenever the model changes
  peergen check                            # Verify committed artifacts are current
  peergen config init                      # Write a default peergen.toml
  peergen skeleton HoverParams             # Print a default-value skeleton
  peergen version                          # Show build information`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ = cmd.Flags().GetCount("verbose")
		if err := logger.InitializeWithVerbosity(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Debugw("logger initialized",
			"verbosity", verbosity,
			"level_name", logger.LevelName(verbosity),
		)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit structured JSON logs")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(skeletonCmd)
	rootCmd.AddCommand(versionCmd)
}
