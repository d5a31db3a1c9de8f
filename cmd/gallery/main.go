package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mmcdole/gallery/internal/adapter"
	"github.com/mmcdole/gallery/internal/adapter/artic"
	"github.com/mmcdole/gallery/internal/service"
	"github.com/mmcdole/gallery/internal/store"
	"github.com/mmcdole/gallery/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Browse the Art Institute of Chicago collection and pick artworks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
	}

	flags := root.PersistentFlags()
	flags.String("url", "", "artworks endpoint (default "+adapter.DefaultCatalogURL+")")
	flags.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	flags.Bool("no-persist", false, "keep the selection in memory only")
	_ = v.BindPFlag("catalog.url", flags.Lookup("url"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if off, _ := cmd.Flags().GetBool("no-persist"); off {
			v.Set("store.persist", false)
		}
		return nil
	}

	root.AddCommand(newExportCmd(v, os.Stdout))
	return root
}

// newExportCmd prints the saved selection as JSON
func newExportCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the saved selection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := adapter.LoadConfig(v)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return exportSelection(cfg, out)
		},
	}
}

func exportSelection(cfg *adapter.Config, out io.Writer) error {
	st, err := store.NewSelectionStore(cfg.StoreDir(), cfg.Catalog.URL)
	if err != nil {
		return fmt.Errorf("failed to open selection store: %w", err)
	}
	defer st.Close()

	snap := service.NewSelectionService(st, adapter.NullLogger()).Load()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func run(v *viper.Viper) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("gallery needs an interactive terminal (try 'gallery export' for scripting)")
	}

	// Load configuration
	cfg, err := adapter.LoadConfig(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting gallery", "version", Version, "catalog", cfg.Catalog.URL)

	// Create catalog client
	client := artic.NewClient(cfg.Catalog.URL, logger, artic.WithFields(cfg.Catalog.Fields))

	// Open selection store (memory only when persistence is off)
	st, err := store.NewSelectionStore(cfg.StoreDir(), cfg.Catalog.URL)
	if err != nil {
		logger.Warn("selection store unavailable, keeping selection in memory", "error", err)
		st, _ = store.NewSelectionStore("", "")
	}
	defer st.Close()

	// Create services
	catalogSvc := service.NewCatalogService(client, logger, cfg.Catalog.MaxLimit, cfg.Catalog.Concurrency)
	selectionSvc := service.NewSelectionService(st, logger)

	// Create TUI model
	model := tui.NewModel(catalogSvc, selectionSvc, cfg.Catalog.Timeout)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	final, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		if err := m.FlushSelection(); err != nil {
			logger.Error("failed to save selection on exit", "error", err)
		}
	}

	logger.Info("shutting down")
	return nil
}
