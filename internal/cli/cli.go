package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/daas/portwatch/internal/api"
	"github.com/daas/portwatch/internal/bot"
	"github.com/daas/portwatch/internal/config"
	"github.com/daas/portwatch/internal/filter"
	"github.com/daas/portwatch/internal/logger"
	"github.com/daas/portwatch/internal/monitor"
	"github.com/daas/portwatch/internal/notifier"
	"github.com/daas/portwatch/internal/scraper"
	"github.com/daas/portwatch/internal/store"
	"github.com/daas/portwatch/internal/telegram"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time with -ldflags "-X github.com/daas/portwatch/internal/cli.Version=..."
var Version = "dev"

var (
	flagConfig   string
	flagLogLevel string

	flagDryRun   bool
	flagHTTPAddr string
	flagInterval time.Duration
	flagNotifier string

	flagURL      string
	flagFormat   string
	flagSort     string
	flagVerbose  bool
	flagBerths   []string
	flagTypes    []string
	flagAgencies []string
	flagDates    string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portwatch",
		Short: "Watch a port's maneuver schedule and alert on new entries",
		Long: `PortWatch polls a page listing scheduled vessel maneuvers, posts an alert
for every maneuver that was not listed on the previous poll, and answers
/status and /detalhes queries over Telegram.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(newRunCmd(), newCheckCmd(), newValidateCmd(), newVersionCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the poll loop, the chat bot and the optional HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runRun,
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print alerts to stdout instead of sending them")
	cmd.Flags().StringVar(&flagHTTPAddr, "http-addr", "", "Serve the HTTP API on this address (e.g. :8080)")
	cmd.Flags().DurationVar(&flagInterval, "interval", 0, "Time between two polls (default 10m)")
	cmd.Flags().StringVar(&flagNotifier, "notifier", "", "Alert destination: telegram, twitter or dryrun")

	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch the listing once and print the current maneuvers",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Listing URL (overrides URL from the configuration)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&flagSort, "sort", "listing", "Sort order: listing, date, berth or name")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Show every column")
	cmd.Flags().StringSliceVar(&flagBerths, "berth", nil, "Only berths containing this text (repeatable)")
	cmd.Flags().StringSliceVar(&flagTypes, "type", nil, "Only maneuver types containing this text (repeatable)")
	cmd.Flags().StringSliceVar(&flagAgencies, "agency", nil, "Only agencies containing this text (repeatable)")
	cmd.Flags().StringVar(&flagDates, "dates", "", "Only these days, e.g. 18/10/2026 or 18/10/2026-25/10/2026")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portwatch %s\n", Version)
		},
	}
}

// loadConfig reads every configuration source and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("http-addr") {
		cfg.HTTPAddr = flagHTTPAddr
	}
	if flags.Changed("interval") {
		cfg.PollInterval = config.Duration(flagInterval)
	}
	if flags.Changed("notifier") {
		cfg.Notifier = flagNotifier
	}
	if flags.Changed("dry-run") && flagDryRun {
		cfg.Notifier = "dryrun"
	}
	if flags.Changed("url") {
		cfg.SourceURL = flagURL
	}

	return cfg, nil
}

// setupLogger installs the default logger at the configured level.
func setupLogger(cfg *config.Config, w io.Writer) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(level, w))
	return nil
}

// buildNotifier creates the alert destination chosen by the configuration
func buildNotifier(cfg *config.Config, client *telegram.Client, out io.Writer) (notifier.Notifier, error) {
	delay := cfg.SendDelay.Duration()

	switch cfg.Notifier {
	case "telegram":
		return notifier.NewTelegramNotifier(client, delay), nil
	case "twitter":
		return notifier.NewTwitterNotifier(cfg.Twitter.Credentials(), delay)
	case "dryrun":
		return notifier.NewDryRunNotifier(out), nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}
}

// runRun starts every long-running component and waits for a signal
func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := setupLogger(cfg, os.Stderr); err != nil {
		return err
	}

	client, err := telegram.NewClient(cfg.BotToken, cfg.ChatID)
	if err != nil {
		return fmt.Errorf("creating telegram client: %w", err)
	}

	n, err := buildNotifier(cfg, client, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("creating notifier: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New()
	mon := monitor.New(scraper.New(cfg.SourceURL, cfg.FetchTimeout.Duration()), st, n, cfg.PollInterval.Duration())
	b := bot.New(client, st, cfg.StatusLimit)

	logger.Info("portwatch starting", logger.Fields{
		"version":   Version,
		"source":    cfg.SourceURL,
		"notifier":  n.Name(),
		"interval":  cfg.PollInterval.Duration().String(),
		"http_addr": cfg.HTTPAddr,
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		mon.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		b.Run(ctx)
	}()

	var serveErr error
	if cfg.HTTPAddr != "" {
		srv := api.NewServer(st, cfg.StatusLimit)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Start(ctx, cfg.HTTPAddr); err != nil {
				logger.Error("http api failed", nil, err)
				serveErr = err
				stop()
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down", nil)
	wg.Wait()

	return serveErr
}

// runCheck fetches the listing once and prints it
func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON && format != FormatICS {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", flagFormat)
	}

	order := SortOrder(strings.ToLower(flagSort))
	switch order {
	case SortByListing, SortByDate, SortByBerth, SortByName:
	default:
		return fmt.Errorf("invalid sort: %s (must be 'listing', 'date', 'berth' or 'name')", flagSort)
	}

	f := filter.NewFilter()
	f.Berths = flagBerths
	f.Types = flagTypes
	f.Agencies = flagAgencies
	if flagDates != "" {
		from, to, err := filter.ParseDateRange(flagDates)
		if err != nil {
			return fmt.Errorf("invalid --dates: %w", err)
		}
		f.DateFrom, f.DateTo = from, to
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.SourceURL == "" {
		return fmt.Errorf("no listing URL: set URL or pass --url")
	}
	if err := setupLogger(cfg, cmd.ErrOrStderr()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc := scraper.New(cfg.SourceURL, cfg.FetchTimeout.Duration())
	maneuvers, err := sc.FetchManeuvers(ctx)
	if err != nil {
		return fmt.Errorf("fetching maneuvers: %w", err)
	}

	maneuvers = f.Apply(maneuvers)
	sortManeuvers(maneuvers, order)

	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Source:    sc.URL(),
		Count:     len(maneuvers),
		Maneuvers: maneuvers,
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runValidate loads the configuration and reports whether it can start
func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	httpAPI := "disabled"
	if cfg.HTTPAddr != "" {
		httpAPI = cfg.HTTPAddr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration OK")
	fmt.Fprintf(out, "  source:        %s\n", cfg.SourceURL)
	fmt.Fprintf(out, "  notifier:      %s\n", cfg.Notifier)
	fmt.Fprintf(out, "  poll interval: %s\n", cfg.PollInterval.Duration())
	fmt.Fprintf(out, "  http api:      %s\n", httpAPI)
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
