package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantsift/quantsift/internal/collector"
	"github.com/quantsift/quantsift/internal/collector/yahoo"
	"github.com/quantsift/quantsift/internal/config"
	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/export"
	"github.com/quantsift/quantsift/internal/llm/factory"
	"github.com/quantsift/quantsift/internal/logger"
	"github.com/quantsift/quantsift/internal/metrics"
	"github.com/quantsift/quantsift/internal/notifier"
	"github.com/quantsift/quantsift/internal/notifier/telegram"
	"github.com/quantsift/quantsift/internal/notifier/webhook"
	"github.com/quantsift/quantsift/internal/report"
	"github.com/quantsift/quantsift/internal/screen"
	"github.com/quantsift/quantsift/internal/universe"
	"github.com/quantsift/quantsift/internal/universe/wikipedia"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// summaryTopN caps the shortlist included in notifications.
const summaryTopN = 10

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run the undervalued growth screen over an index",
	RunE:  runScreen,
}

func init() {
	screenCmd.Flags().String("index", "", "index universe to scan (default sp500)")
	screenCmd.Flags().Float64("max-pe", 0, "maximum trailing P/E")
	screenCmd.Flags().Float64("max-forward-pe", 0, "maximum forward P/E")
	screenCmd.Flags().Float64("max-peg", 0, "maximum PEG ratio")
	screenCmd.Flags().Float64("min-roe", 0, "minimum return on equity percent")
	screenCmd.Flags().Float64("min-upside", 0, "minimum analyst upside percent")
	screenCmd.Flags().Int("concurrency", 0, "parallel fetch workers")
	screenCmd.Flags().String("output", "", "export directory (overrides config)")
	screenCmd.Flags().Bool("no-export", false, "skip CSV export")
	screenCmd.Flags().Bool("notify", false, "send the run summary to configured notifiers")
	screenCmd.Flags().Bool("commentary", false, "generate AI commentary for the shortlist")
	screenCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address during the scan")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	applyScreenFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, reg.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
		log.Info("metrics server started", zap.String("addr", cfg.Metrics.Addr))
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	fetcher, err := buildFetcher(cfg)
	if err != nil {
		return err
	}

	opts := []screen.RunnerOption{
		screen.WithLogger(log),
		screen.WithConcurrency(cfg.Screen.Concurrency),
		screen.WithProgress(func(i, n int, symbol string) {
			fmt.Fprintf(os.Stderr, "Scanning %s (%d/%d)\n", symbol, i, n)
		}),
	}
	if reg != nil {
		opts = append(opts, screen.WithMetrics(reg))
	}

	runner, err := screen.NewRunner(provider, fetcher, cfg.Screen.Thresholds(), opts...)
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, core.Index(cfg.Universe.Index))
	if err != nil {
		return err
	}

	if result.Empty() {
		fmt.Println("No stocks matched the screening criteria. Try relaxing the thresholds.")
	} else {
		fmt.Printf("Found %d undervalued growth stocks:\n\n", len(result.Records))
		if err := report.RenderTable(os.Stdout, result.Records); err != nil {
			return err
		}
	}

	noExport, _ := cmd.Flags().GetBool("no-export")
	if !noExport && !result.Empty() && cfg.Export.Type != "" {
		if err := exportResult(ctx, cfg, result); err != nil {
			return err
		}
	}

	if notify, _ := cmd.Flags().GetBool("notify"); notify {
		notifyResult(ctx, log, cfg, result)
	}

	if commentary, _ := cmd.Flags().GetBool("commentary"); commentary {
		if err := printCommentary(ctx, cfg, result); err != nil {
			log.Warn("commentary failed", zap.Error(err))
		}
	}

	return nil
}

// buildProvider selects the universe source named in the config.
func buildProvider(cfg *config.Config) (universe.Provider, error) {
	switch cfg.Universe.Source {
	case "wikipedia":
		return universe.NewCached(wikipedia.New()), nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown universe source: %s", cfg.Universe.Source))
	}
}

// buildFetcher resolves the collector source through the fetcher
// registry and initializes it.
func buildFetcher(cfg *config.Config) (collector.Fetcher, error) {
	registry := collector.NewRegistry()
	registry.Register(yahoo.New())

	fetcher, ok := registry.Get(cfg.Collector.Source)
	if !ok {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown collector source: %s", cfg.Collector.Source))
	}

	if err := fetcher.Init(collector.Config{
		Timeout:   cfg.Collector.Timeout,
		UserAgent: cfg.Collector.UserAgent,
	}); err != nil {
		return nil, fmt.Errorf("initializing fetcher %s: %w", fetcher.Name(), err)
	}
	return fetcher, nil
}

func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
		return config.Defaults(), nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyScreenFlags copies explicitly set flags over the loaded config.
func applyScreenFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("index") {
		cfg.Universe.Index, _ = flags.GetString("index")
	}
	if flags.Changed("max-pe") {
		cfg.Screen.MaxPE, _ = flags.GetFloat64("max-pe")
	}
	if flags.Changed("max-forward-pe") {
		cfg.Screen.MaxForwardPE, _ = flags.GetFloat64("max-forward-pe")
	}
	if flags.Changed("max-peg") {
		cfg.Screen.MaxPEG, _ = flags.GetFloat64("max-peg")
	}
	if flags.Changed("min-roe") {
		cfg.Screen.MinROE, _ = flags.GetFloat64("min-roe")
	}
	if flags.Changed("min-upside") {
		cfg.Screen.MinUpside, _ = flags.GetFloat64("min-upside")
	}
	if flags.Changed("concurrency") {
		cfg.Screen.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("output") {
		cfg.Export.Type = "dir"
		cfg.Export.Path, _ = flags.GetString("output")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
}

func exportResult(ctx context.Context, cfg *config.Config, result *screen.Result) error {
	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, result.Records); err != nil {
		return err
	}

	name := report.Filename(result.Index)
	if err := store.Write(ctx, name, buf.Bytes()); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}

	fmt.Printf("\nResults saved to %s\n", name)
	return nil
}

func buildStore(cfg *config.Config) (export.Store, error) {
	switch cfg.Export.Type {
	case "dir":
		return export.NewDir(cfg.Export.Path)
	case "s3":
		return export.NewS3(export.S3Config{
			Bucket:    cfg.Export.S3.Bucket,
			Endpoint:  cfg.Export.S3.Endpoint,
			Region:    cfg.Export.S3.Region,
			AccessKey: cfg.Export.S3.AccessKey,
			SecretKey: cfg.Export.S3.SecretKey,
			Prefix:    cfg.Export.S3.Prefix,
		})
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown export type: %s", cfg.Export.Type))
	}
}

// buildNotifiers constructs and initializes every enabled notifier
// from the config. Notifiers that fail Init are skipped.
func buildNotifiers(cfg *config.Config, log *zap.Logger) *notifier.Registry {
	registry := notifier.NewRegistry()

	for name, nc := range cfg.Notifiers {
		if !nc.Enabled {
			continue
		}

		var n notifier.Notifier
		var params map[string]any
		switch name {
		case "telegram":
			n = telegram.New("", "")
			params = map[string]any{"bot_token": nc.BotToken, "chat_id": nc.ChatID}
		case "webhook":
			n = webhook.New("", nil)
			params = map[string]any{"url": nc.URL, "headers": nc.Headers}
		default:
			log.Warn("unknown notifier, skipping", zap.String("name", name))
			continue
		}

		if err := n.Init(notifier.Config{Type: name, Params: params}); err != nil {
			log.Warn("notifier init failed", zap.String("name", name), zap.Error(err))
			continue
		}
		if err := registry.Register(n); err != nil {
			log.Warn("notifier registration failed", zap.String("name", name), zap.Error(err))
		}
	}

	return registry
}

// notifyResult delivers the summary on a best-effort basis. Notifier
// failures never fail the run.
func notifyResult(ctx context.Context, log *zap.Logger, cfg *config.Config, result *screen.Result) {
	registry := buildNotifiers(cfg, log)

	top := result.Records
	if len(top) > summaryTopN {
		top = top[:summaryTopN]
	}

	summary := notifier.Summary{
		RunID:        result.RunID,
		Index:        result.Index,
		UniverseSize: result.UniverseSize,
		Scanned:      result.Scanned,
		Failed:       result.Failed,
		Matches:      len(result.Records),
		Duration:     result.Duration(),
		Top:          top,
	}

	for name, err := range registry.NotifyAll(ctx, summary) {
		log.Warn("notification failed", zap.String("notifier", name), zap.Error(err))
	}
}

func printCommentary(ctx context.Context, cfg *config.Config, result *screen.Result) error {
	if cfg.LLM.Provider == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("llm provider required for commentary"))
	}

	provider, err := factory.New(cfg.LLM)
	if err != nil {
		return err
	}

	text, err := report.Commentary(ctx, provider, result)
	if err != nil {
		return err
	}

	fmt.Printf("\nAI Commentary:\n%s\n", text)
	return nil
}
