package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"userdir/internal/config"
	"userdir/internal/directory"
	"userdir/internal/eventbus"
	"userdir/internal/logging"
	"userdir/internal/randomuser"
	"userdir/internal/source"
	"userdir/internal/ui"
)

// options holds the command-line flags shared by every command
type options struct {
	configPath string
	apiURL     string
	results    int
	pages      int
	seed       string
	file       string
	delay      time.Duration
	logFile    string
	noMouse    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "userdir",
		Short:        "Browse and filter random user records in the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/userdir/config.toml)")
	flags.StringVar(&opts.apiURL, "api-url", "", "randomuser-compatible API endpoint")
	flags.IntVarP(&opts.results, "results", "n", 0, "users per page")
	flags.IntVar(&opts.pages, "pages", 0, "pages to fetch concurrently")
	flags.StringVar(&opts.seed, "seed", "", "seed for a reproducible batch")
	flags.StringVarP(&opts.file, "file", "f", "", "read users from a JSON file instead of the API")
	flags.DurationVar(&opts.delay, "delay", 0, "filter debounce delay")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (default in the user cache directory)")
	flags.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse tracking and hover previews")

	cmd.AddCommand(newConfigCmd(opts), newMockAPICmd())
	return cmd
}

func configService(opts *options) config.ConfigService {
	if opts.configPath != "" {
		return config.NewConfigServiceAt(opts.configPath)
	}
	return config.NewConfigService()
}

// loadConfig reads the config file and environment, then applies the flags
// that were set explicitly
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := configService(opts).Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = opts.apiURL
	}
	if flags.Changed("results") {
		cfg.API.Results = opts.results
	}
	if flags.Changed("pages") {
		cfg.API.Pages = opts.pages
	}
	if flags.Changed("seed") {
		cfg.API.Seed = opts.seed
	}
	if flags.Changed("file") {
		cfg.Source.File = opts.file
	}
	if flags.Changed("delay") {
		cfg.UI.FilterDelay = config.Duration{Duration: opts.delay}
	}
	if opts.noMouse {
		cfg.UI.Mouse = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLog(opts *options) (zerolog.Logger, io.Closer) {
	path := opts.logFile
	if path == "" {
		path = logging.DefaultPath()
	}
	logger, closer, err := logging.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		return logging.New(io.Discard), io.NopCloser(nil)
	}
	return logger, closer
}

func run(cmd *cobra.Command, opts *options) error {
	logger, closer := openLog(opts)
	defer closer.Close()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(logger)
	defer bus.Close()

	client := randomuser.NewClient(
		randomuser.WithBaseURL(cfg.API.BaseURL),
		randomuser.WithResults(cfg.API.Results),
		randomuser.WithPages(cfg.API.Pages),
		randomuser.WithSeed(cfg.API.Seed),
		randomuser.WithNationalities(cfg.API.Nationalities),
		randomuser.WithTimeout(cfg.API.Timeout.Duration),
		randomuser.WithLogger(logger),
	)

	var src source.Source = client
	if cfg.Source.File != "" {
		src = source.NewFile(cfg.Source.File)
	}
	directorySvc := directory.NewService(ctx, bus, src, cfg.API.Timeout.Duration, logger)

	uiModel := ui.NewModel(cfg, bus, client, logger)
	defer uiModel.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(uiModel, progOpts...)
	uiModel.SetProgram(p)

	// Forward fetch outcomes to the UI
	for _, t := range []eventbus.EventType{
		eventbus.EventFetchStarted,
		eventbus.EventUsersFetched,
		eventbus.EventFetchFailed,
		eventbus.EventSourceChanged,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	if cfg.Source.File != "" && cfg.Source.Watch {
		watcher := source.NewWatcher(cfg.Source.File, bus, source.DefaultSettleDelay, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Str("path", cfg.Source.File).Msg("file watcher stopped")
			}
		}()
	}

	logger.Info().Str("source", src.Name()).Msg("starting UI")
	_, err = p.Run()
	uiModel.Close()
	stop()
	directorySvc.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error().Err(err).Msg("error running program")
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info().Msg("UI exited normally")
	return nil
}
