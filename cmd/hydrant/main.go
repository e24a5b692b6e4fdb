package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/hydrant/hydrus"
	"github.com/five82/hydrant/internal/app"
	"github.com/five82/hydrant/internal/config"
	"github.com/five82/hydrant/internal/logging"
)

var (
	configPath string
	verbose    bool

	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "hydrant: %v\n", err)
		return 1
	}
	return 0
}

// connect loads the config and returns a client plus a logger writing to
// stderr. The caller must Sync the logger.
func connect() (*hydrus.Hydrus, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{Level: level, Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	h, err := app.NewHydrus(cfg, logger, nil)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return h, logger, nil
}

var rootCmd = &cobra.Command{
	Use:           "hydrant",
	Short:         "Client for the hydrus client API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/hydrant/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().Duration("poll", 0, "Refresh interval (default from config)")
	pagesCmd.Flags().String("prefs", "", "Preferences file (default ~/.config/hydrant/prefs.toml)")

	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("sort", "", "Sort by: "+sortNames())
	searchCmd.Flags().Bool("asc", false, "Sort ascending")

	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRemoveCmd)
	for _, c := range []*cobra.Command{tagsAddCmd, tagsRemoveCmd} {
		c.Flags().String("service", string(hydrus.MyTags), "Tag service key")
	}

	rootCmd.AddCommand(urlCmd)
	urlCmd.Flags().Bool("import", false, "Queue the URL for download")
	urlCmd.Flags().String("page", "", "Destination page name for --import")
	urlCmd.Flags().Bool("show-page", false, "Focus the destination page after --import")
	urlCmd.Flags().StringSlice("tag", nil, "Tag added to downloaded files (my tags)")

	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("upload", false, "Send file contents instead of a path hydrus can read")

	rootCmd.AddCommand(setTimeCmd)
	setTimeCmd.Flags().String("type", "modified", "Timestamp to edit: "+timeKindNames())
	setTimeCmd.Flags().String("at", "", "New time as RFC 3339 (default now)")
	setTimeCmd.Flags().String("ms", "", "New time as Unix milliseconds")
	setTimeCmd.Flags().Bool("clear", false, "Remove the timestamp")
	setTimeCmd.Flags().String("domain", "", "Domain for --type domain")
	setTimeCmd.Flags().String("service", "", "File service key for --type imported, deleted or original")
	setTimeCmd.Flags().Uint64("canvas", 0, "Canvas type for --type viewed")
}
