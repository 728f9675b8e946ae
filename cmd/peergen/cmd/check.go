package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/peergen/config"
	"github.com/teranos/peergen/errors"
)

var (
	checkModel  string
	checkOutput string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that generated artifacts are up to date",
	Long: `Regenerate the artifacts into a temporary directory and compare them
byte-for-byte against the committed output directory.

Exit codes:
  0 - Artifacts are up to date
  1 - Artifacts are out of date or missing (drift shown)

Examples:
  peergen check
  peergen check --model protocol/metaModel.json --output generated/`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkModel, "model", "m", "", "Metamodel JSON path (default: from config)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Committed output directory to compare (default: from config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	modelPath := checkModel
	if modelPath == "" {
		modelPath = cfg.ModelPath()
	}
	outputDir := checkOutput
	if outputDir == "" {
		outputDir = cfg.OutputDir()
	}

	pterm.Printf("%s\n", pterm.White("Checking generated artifacts..."))

	tempDir, err := os.MkdirTemp("", "peergen-check-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if err := generateArtifacts(cfg, modelPath, tempDir); err != nil {
		return err
	}

	stale, err := compareDirs(tempDir, outputDir)
	if err != nil {
		return err
	}

	if len(stale) == 0 {
		pterm.Printf("%s\n", pterm.LightGreen("✓ Artifacts are up to date"))
		return nil
	}

	pterm.Printf("%s\n", pterm.Red("✗ Artifacts are out of date:"))
	for _, name := range stale {
		pterm.Printf("  %s %s\n", pterm.Gray("-"), pterm.Yellow(name))
	}
	return errors.New("artifacts are out of date - run 'peergen generate' to update")
}

// compareDirs lists every freshly generated file that differs from (or is
// missing in) the committed directory. Directory entries come back sorted,
// so the drift list is stable.
func compareDirs(freshDir, committedDir string) ([]string, error) {
	entries, err := os.ReadDir(freshDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read temp directory")
	}

	var stale []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fresh, err := os.ReadFile(filepath.Join(freshDir, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read generated %s", entry.Name())
		}
		committed, err := os.ReadFile(filepath.Join(committedDir, entry.Name()))
		if err != nil {
			if os.IsNotExist(err) {
				stale = append(stale, entry.Name()+" (missing)")
				continue
			}
			return nil, errors.Wrapf(err, "failed to read committed %s", entry.Name())
		}
		if !bytes.Equal(fresh, committed) {
			stale = append(stale, entry.Name())
		}
	}
	return stale, nil
}
