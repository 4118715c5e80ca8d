package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"prodview/internal/catalog"
	"prodview/internal/config"
	"prodview/internal/eventbus"
	"prodview/internal/logic"
	"prodview/internal/ui"
)

var (
	configPath string
	logFile    string
	admin      bool
	noWatch    bool
	verbose    bool
	force      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "prodview [path]",
	Short: "Browse a product catalog in the terminal",
	Long: `prodview shows one product at a time: name, price, stock, an image
carousel with a thumbnail strip, the description and the action buttons.

path is a product file (.json, .yaml, .toml) or a directory of them.
It defaults to the catalog setting of the config file.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "Print the catalog without starting the viewer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE:  runInitConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/prodview/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default in the user cache dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&admin, "admin", false, "Show privileged actions")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload product files when they change")
	initConfigCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(args []string) (config.ConfigService, *config.Config, error) {
	configSvc, err := config.NewConfigService(configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := configSvc.Load()
	if err != nil {
		return nil, nil, err
	}

	if len(args) > 0 {
		cfg.Catalog = args[0]
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if admin {
		cfg.Privileged = true
	}
	if noWatch {
		cfg.Watch = false
	}

	cfg.Catalog, err = config.ExpandPath(cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	return configSvc, cfg, nil
}

// newLogger builds a JSON file logger; the viewer owns the terminal
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	path, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger, err = newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting prodview",
		zap.String("catalog", cfg.Catalog),
		zap.Bool("privileged", cfg.Privileged),
		zap.Bool("watch", cfg.Watch))

	bus := eventbus.New(logger)
	defer bus.Close()

	store := logic.NewMemoryProductStore()
	discovery := catalog.NewDiscovery(bus, cfg.Catalog, logger)
	defer discovery.Close()

	// Load the catalog before the first frame so the viewer opens on a product
	products, err := discovery.Scan(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	store.Replace(products)
	logger.Info("catalog loaded", zap.Int("products", len(products)))

	if cfg.Watch {
		watcher, err := catalog.NewWatcher(bus, cfg.Catalog, logger)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		}
		defer watcher.Stop()
	}

	model := ui.NewModel(ui.Options{
		Privileged:       cfg.Privileged,
		DescriptionStyle: cfg.UISettings.DescriptionStyle,
		ShowHelpBar:      cfg.UISettings.ShowHelpBar,
		CatalogRoot:      cfg.Catalog,
		Logger:           logger,
		Bus:              bus,
		Store:            store,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward catalog events to the UI
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventProductDiscovered,
		eventbus.EventProductUpdated,
		eventbus.EventProductRemoved,
		eventbus.EventError,
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
	} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	if os.Getenv("PRODVIEW_E2E_TEST") != "" {
		fmt.Println("__READY__")
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run viewer: %w", err)
	}
	logger.Info("prodview stopped")
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger, err = newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(logger)
	var (
		mu       sync.Mutex
		problems []string
	)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			mu.Lock()
			problems = append(problems, fmt.Sprintf("%s: %v", event.Message, event.Err))
			mu.Unlock()
		}
	})

	discovery := catalog.NewDiscovery(bus, cfg.Catalog, logger)
	products, err := discovery.Scan(ctx, cfg.Catalog)
	discovery.Close()
	bus.Close() // delivers the queued error events and waits for the handler
	if err != nil {
		return err
	}

	store := logic.NewMemoryProductStore()
	store.Replace(products)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PRICE", "STOCK", "IMAGES")
	for _, p := range store.All() {
		t.Row(p.ID, p.DisplayName(), p.FormattedPrice(), p.StockLabel(), strconv.Itoa(len(p.Images())))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d products in %s\n", store.Len(), cfg.Catalog)

	mu.Lock()
	defer mu.Unlock()
	for _, problem := range problems {
		fmt.Fprintln(cmd.ErrOrStderr(), "invalid:", problem)
	}
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	configSvc, err := config.NewConfigService(configPath)
	if err != nil {
		return err
	}
	path := configSvc.Path()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := configSvc.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
