package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/flashingpumpkin/terminus/internal/config"
	terrors "github.com/flashingpumpkin/terminus/internal/errors"
	"github.com/flashingpumpkin/terminus/internal/log"
	"github.com/flashingpumpkin/terminus/internal/render"
	"github.com/flashingpumpkin/terminus/internal/session"
	"github.com/flashingpumpkin/terminus/internal/tui"
)

// rootOptions holds the flag values of the root command.
type rootOptions struct {
	configFile     string
	prompt         string
	theme          string
	minimal        bool
	noAnimation    bool
	logFile        string
	debug          bool
	baseDelay      time.Duration
	echoDelay      time.Duration
	tickerInterval time.Duration
	maxLines       int
}

// newRootCmd builds the terminus command tree.
func newRootCmd() *cobra.Command {
	return buildRootCmd(&rootOptions{})
}

// buildRootCmd builds the root command with its flags bound to opts.
func buildRootCmd(opts *rootOptions) *cobra.Command {
	defaults := config.NewConfig()

	cmd := &cobra.Command{
		Use:   "terminus",
		Short: "A make-believe terminal with typewriter output",
		Long: `terminus draws a pretend shell. Typed commands are echoed with a
typewriter animation and answered by a handful of built-in handlers.

COMMANDS

    ls                  list some files that do not exist
    clear               wipe the screen
    scramblybugs        print a random number every tick (scramblybugs stop ends it)
    test                echo every line until you type exit
    hide                hide the prompt

CONFIGURATION FILE

terminus reads .terminus/config.toml in the working directory when present.
Use --config to load a different TOML or YAML file. Flags override the file.`,
		Args:         cobra.NoArgs,
		Version:      "0.1.0",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminus(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to config file (default: .terminus/config.toml)")
	flags.StringVar(&opts.prompt, "prompt", defaults.Prompt, "Prompt glyph shown before the input")
	flags.StringVar(&opts.theme, "theme", defaults.Theme, "Colour theme: auto, dark, light")
	flags.BoolVar(&opts.minimal, "minimal", false, "Use line mode instead of the full screen TUI")
	flags.BoolVar(&opts.noAnimation, "no-animation", false, "Print every line instantly")
	flags.StringVar(&opts.logFile, "log-file", "", "Write diagnostics to this file")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug diagnostics")
	flags.DurationVar(&opts.baseDelay, "base-delay", defaults.BaseDelay, "Typewriter delay between output characters")
	flags.DurationVar(&opts.echoDelay, "echo-delay", defaults.EchoDelay, "Typewriter delay between echoed characters")
	flags.DurationVar(&opts.tickerInterval, "ticker-interval", defaults.TickerInterval, "Interval between scramblybugs numbers")
	flags.IntVar(&opts.maxLines, "max-lines", defaults.MaxLines, "Output lines kept before the oldest are dropped")

	cmd.AddCommand(newInitCmd())
	return cmd
}

// resolveConfig merges defaults, the config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg := config.NewConfig()

	var fileConfig *config.FileConfig
	var err error
	if opts.configFile != "" {
		fileConfig, err = config.LoadFileConfigFrom(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", opts.configFile, err)
		}
		if fileConfig == nil {
			return nil, fmt.Errorf("config file not found: %s", opts.configFile)
		}
	} else {
		workingDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		fileConfig, err = config.LoadFileConfig(workingDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := fileConfig.Apply(cfg); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	// Flags win over the file, but only when given
	flags := cmd.Flags()
	if flags.Changed("prompt") {
		cfg.Prompt = opts.prompt
	}
	if flags.Changed("theme") {
		cfg.Theme = opts.theme
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("base-delay") {
		cfg.BaseDelay = opts.baseDelay
	}
	if flags.Changed("echo-delay") {
		cfg.EchoDelay = opts.echoDelay
	}
	if flags.Changed("ticker-interval") {
		cfg.TickerInterval = opts.tickerInterval
	}
	if flags.Changed("max-lines") {
		cfg.MaxLines = opts.maxLines
	}
	cfg.Minimal = opts.minimal
	cfg.NoAnimation = opts.noAnimation
	cfg.Debug = opts.debug

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func runTerminus(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.SetLevel(log.LevelDebug)
	}

	ctx, stop := setupSignalHandler(cmd.Context())
	defer stop()

	sessOpts := sessionOptions(cfg)

	if shouldUseTUI(cfg) {
		return runTUI(ctx, cfg, sessOpts)
	}
	return runPlain(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cfg, sessOpts)
}

// sessionOptions carries the resolved timings into the session. A zero
// delay stays zero.
func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		BaseDelay:      cfg.BaseDelay,
		EchoDelay:      cfg.EchoDelay,
		TickerInterval: cfg.TickerInterval,
	}
}

// shouldUseTUI determines whether to use the TUI based on flags and environment.
func shouldUseTUI(cfg *config.Config) bool {
	// Explicit minimal flag disables TUI
	if cfg.Minimal {
		return false
	}

	// CI environment disables TUI
	if os.Getenv("CI") != "" {
		return false
	}

	// Non-interactive terminal disables TUI
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	return true
}

// isShutdown reports whether err is part of a normal shutdown.
func isShutdown(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, terrors.ErrRendererClosed)
}

// runTUI runs the session against the full screen front end. The session
// and the bubbletea program run side by side; whichever ends first stops
// the other.
func runTUI(ctx context.Context, cfg *config.Config, sessOpts session.Options) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "terminus")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(nil)
	}
	log.Info("starting tui: theme %s, max lines %d", cfg.Theme, cfg.MaxLines)

	reader := session.NewReader()
	program := tui.New(tui.Options{
		Prompt:    cfg.Prompt,
		Theme:     tui.Theme(cfg.Theme),
		MaxLines:  cfg.MaxLines,
		Instant:   cfg.NoAnimation,
		AltScreen: true,
		Submit: func(line string) {
			if !reader.Submit(line) {
				log.Debug("input dropped, no read pending: %q", line)
			}
		},
	})
	sess := session.New(program, reader, sessOpts)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		if err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer program.Quit()
		err := sess.Run(runCtx)
		if isShutdown(err) {
			return nil
		}
		log.Error("session: %v", err)
		return err
	})

	return g.Wait()
}

// runPlain runs the session in line mode: lines come from in, output goes
// to out. End of input lets the last command finish, then shuts down.
func runPlain(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, sessOpts session.Options) error {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(os.Stderr)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := session.NewReader()
	renderer := render.NewPlain(out, render.PlainOptions{
		Prompt:   cfg.Prompt,
		Animate:  !cfg.NoAnimation,
		Terminal: render.IsTerminal(out),
	})
	sess := session.New(renderer, reader, sessOpts)

	// The scanner may stay blocked on stdin after shutdown, so it is not
	// waited for.
	go func() {
		defer cancel()
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if err := reader.SubmitWait(ctx, scanner.Text()); err != nil {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Error("read input: %v", err)
			return
		}
		_ = reader.WaitPending(ctx)
	}()

	err := sess.Run(ctx)
	if isShutdown(err) {
		return nil
	}
	return err
}
