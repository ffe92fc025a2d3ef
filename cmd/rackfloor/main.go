package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/braunma/rackfloor/pkg/catalog"
	"github.com/braunma/rackfloor/pkg/loader"
	"github.com/braunma/rackfloor/pkg/utils"
)

var (
	verbose    bool
	dataDir    string
	catalogDir string
	saveDir    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rackfloor",
		Short:        "Facility layout and generation engine",
		Long:         `Generates seeded data-center facilities, inspects save files, and replays layout edits`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "Base directory for definitions (e.g., 'example' for test data)")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "definitions/catalog", "Equipment catalog folder relative to the data directory")
	rootCmd.PersistentFlags().StringVar(&saveDir, "save-dir", "saves", "Directory for save files")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newInspectCmd(),
		newStreamCmd(),
		newReplayCmd(),
	)
	return rootCmd
}

// banner prints a section header in the console style used by every command
func banner(logger *utils.Logger, title string) {
	logger.Info("═══════════════════════════════════════════════════════")
	logger.Info(title)
	logger.Info("═══════════════════════════════════════════════════════")
}

// loadCatalog reads the equipment catalog from the data directory.
// It falls back to the built-in catalog when no definitions are present.
func loadCatalog(logger *utils.Logger) (*catalog.Static, error) {
	dir := envString("RACKFLOOR_CATALOG_DIR", catalogDir)
	base, err := resolveDataDir(dataDir, logger)
	if err != nil {
		logger.Warning("%v, using built-in catalog", err)
		return catalog.Default(), nil
	}

	folder := dir
	if !filepath.IsAbs(folder) {
		folder = buildPath(base, dir)
	}
	dataLoader := loader.NewDataLoader(".", logger)
	templates, err := dataLoader.LoadCatalog(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(templates) == 0 {
		logger.Warning("No equipment templates in %s, using built-in catalog", dir)
		return catalog.Default(), nil
	}

	cat := catalog.NewStatic(templates)
	logger.Info("Loaded %d equipment templates", cat.Len())
	return cat, nil
}

// resolveDataDir determines the correct data directory to use
// It implements auto-detection: if definitions/ doesn't exist in the specified directory,
// it falls back to the example/ directory
func resolveDataDir(dir string, logger *utils.Logger) (string, error) {
	definitionsPath := fmt.Sprintf("%s/definitions", dir)
	if _, err := os.Stat(definitionsPath); err == nil {
		logger.Debug("Using data directory: %s", dir)
		return dir, nil
	}

	examplePath := "example"
	exampleDefinitionsPath := fmt.Sprintf("%s/definitions", examplePath)
	if _, err := os.Stat(exampleDefinitionsPath); err == nil {
		logger.Warning("definitions/ not found in '%s', falling back to '%s'", dir, examplePath)
		return examplePath, nil
	}

	return "", fmt.Errorf("no valid data directory found: checked '%s' and '%s'", dir, examplePath)
}

// buildPath constructs a path relative to the data directory
func buildPath(dataDir, subPath string) string {
	if dataDir == "." {
		return subPath
	}
	return fmt.Sprintf("%s/%s", dataDir, subPath)
}

// seedFromEnv returns RACKFLOOR_SEED when the --seed flag was not given
func seedFromEnv(cmd *cobra.Command, flagValue int64, logger *utils.Logger) int64 {
	if cmd.Flags().Changed("seed") {
		return flagValue
	}
	raw := os.Getenv("RACKFLOOR_SEED")
	if raw == "" {
		return flagValue
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Warning("Ignoring invalid RACKFLOOR_SEED %q", raw)
		return flagValue
	}
	return seed
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func saveDirectory() string {
	return envString("RACKFLOOR_SAVE_DIR", saveDir)
}
