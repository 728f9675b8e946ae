package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/peergen/compiler"
	"github.com/teranos/peergen/config"
	"github.com/teranos/peergen/emit/python"
	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/logger"
	"github.com/teranos/peergen/metamodel"
)

var (
	generateModel  string
	generateOutput string
	generateWatch  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the metamodel and write the artifacts",
	Long: `Compile the protocol metamodel into the generated artifact set:
the shared types module, initiator.py, responder.py, and the package
__init__.py.

Flags override the peergen.toml / PEERGEN_* configuration. Nothing is
written unless the whole compilation succeeds.

Examples:
  peergen generate
  peergen generate --model protocol/metaModel.json --output generated/
  peergen generate --watch          # Regenerate whenever the model changes`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "Metamodel JSON path (default: from config)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: from config)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch the model file and regenerate on change")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	modelPath := generateModel
	if modelPath == "" {
		modelPath = cfg.ModelPath()
	}
	outputDir := generateOutput
	if outputDir == "" {
		outputDir = cfg.OutputDir()
	}

	if err := generateArtifacts(cfg, modelPath, outputDir); err != nil {
		return err
	}

	if !generateWatch {
		return nil
	}
	return watchAndRegenerate(cfg, modelPath, outputDir)
}

// generateArtifacts runs one load-compile-emit cycle and writes the files.
func generateArtifacts(cfg *config.Config, modelPath, outputDir string) error {
	start := time.Now()

	model, err := metamodel.Load(modelPath)
	if err != nil {
		return errors.Wrapf(err, "failed to load metamodel %s", modelPath)
	}
	if err := model.CheckVersion(cfg.Model.VersionConstraint); err != nil {
		return err
	}

	result, err := compiler.Compile(model)
	if err != nil {
		return errors.Wrap(err, "compilation failed")
	}
	if logger.ShouldLogTrace(verbosity) {
		for _, def := range result.Definitions.Definitions {
			if refs := result.Definitions.ForwardRefs[def.Name]; len(refs) > 0 {
				logger.Debugw("forward reference recorded",
					logger.FieldTypeName, def.Name,
					"references", refs,
				)
			}
		}
	}

	gen := python.NewGenerator(python.Options{
		Attribution: cfg.Attribution(),
		TypesModule: cfg.TypesModule(),
	})
	files := gen.Files(result)

	if err := os.MkdirAll(outputDir, config.DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	for _, f := range files {
		outputPath := filepath.Join(outputDir, f.Name)
		if err := os.WriteFile(outputPath, f.Content, config.DefaultFilePermissions); err != nil {
			return errors.Wrapf(err, "failed to write %s", outputPath)
		}
		pterm.Printf("%s %s\n", pterm.LightGreen("✓ Generated"), pterm.White(outputPath))
		if logger.ShouldLogAll(verbosity) {
			logger.Debugw("rendered unit", logger.FieldFile, f.Name, "content", string(f.Content))
		}
	}

	if logger.ShouldOutput(verbosity, logger.OutputModelStats) {
		pterm.Printf("%s %d structures, %d enumerations, %d aliases, %d requests, %d notifications\n",
			pterm.Gray("→"),
			len(model.Structures), len(model.Enumerations), len(model.TypeAliases),
			len(model.Requests), len(model.Notifications))
	}
	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		pterm.Printf("%s compiled in %s\n", pterm.Gray("→"), time.Since(start).Round(time.Millisecond))
	}

	logger.Infow("generation complete",
		logger.FieldModel, model.MetaData.Version,
		logger.FieldCount, len(result.Definitions.Definitions),
		"initiator_methods", len(result.Initiator.Methods),
		"responder_methods", len(result.Responder.Methods),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

// watchAndRegenerate blocks, regenerating on every debounced model change,
// until interrupted. A failed regeneration is reported and watching
// continues; the next save gets another chance.
func watchAndRegenerate(cfg *config.Config, modelPath, outputDir string) error {
	watcher, err := metamodel.NewWatcher(modelPath)
	if err != nil {
		return errors.Wrap(err, "failed to create model watcher")
	}
	defer watcher.Stop()

	watcher.OnChange(func(path string) error {
		pterm.Printf("%s %s\n", pterm.Gray("→"), pterm.Yellow("model changed, regenerating"))
		if err := generateArtifacts(cfg, path, outputDir); err != nil {
			pterm.Printf("%s %v\n", pterm.Red("✗ Regeneration failed:"), err)
			return err
		}
		return nil
	})
	watcher.Start()

	pterm.Printf("%s %s\n", pterm.Gray("→"), pterm.White("watching "+modelPath+" (Ctrl+C to stop)"))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return nil
}
