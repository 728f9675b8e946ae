package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/peergen/compiler"
	"github.com/teranos/peergen/config"
	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/metamodel"
)

var (
	skeletonModel        string
	skeletonOnlyRequired bool
	skeletonRecursive    bool
	skeletonAllMembers   bool
)

var skeletonCmd = &cobra.Command{
	Use:   "skeleton <definition>",
	Short: "Print a Python default value for a metamodel definition",
	Long: `Print a Python expression that represents the default value of a
named definition from the metamodel: zero values for scalars, the first
branch of unions, a dict skeleton for structures.

Examples:
  peergen skeleton Position
  peergen skeleton ClientCapabilities --recursive --only-required
  peergen skeleton TraceValue --all-members`,
	Args: cobra.ExactArgs(1),
	RunE: runSkeleton,
}

func init() {
	skeletonCmd.Flags().StringVarP(&skeletonModel, "model", "m", "", "Metamodel JSON path (default: from config)")
	skeletonCmd.Flags().BoolVar(&skeletonOnlyRequired, "only-required", false, "Skip optional fields in structure skeletons")
	skeletonCmd.Flags().BoolVar(&skeletonRecursive, "recursive", false, "Expand nested structure references into nested skeletons")
	skeletonCmd.Flags().BoolVar(&skeletonAllMembers, "all-members", false, "Render enumeration defaults as the full member list")
}

func runSkeleton(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	modelPath := skeletonModel
	if modelPath == "" {
		modelPath = cfg.ModelPath()
	}

	model, err := metamodel.Load(modelPath)
	if err != nil {
		return err
	}

	defs, err := compiler.BuildDefinitions(model)
	if err != nil {
		return err
	}

	defined := false
	for _, def := range defs {
		if def.Name == name {
			defined = true
			break
		}
	}
	if !defined {
		return errors.Newf("definition %q not found in %s", name, modelPath)
	}

	defaulter := compiler.NewDefaulter(defs)
	value, err := defaulter.Default(compiler.NameExpr(name), compiler.DefaultOptions{
		OnlyRequired: skeletonOnlyRequired,
		Recursive:    skeletonRecursive,
		AllMembers:   skeletonAllMembers,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to build default for %q", name)
	}

	fmt.Println(value)
	return nil
}
