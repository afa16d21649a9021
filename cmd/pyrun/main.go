package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/chainguard-dev/clog/slag"
	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"pyrun/internal/config"
	"pyrun/internal/interp"
	"pyrun/internal/interp/cpython"
	"pyrun/internal/provision"
	"pyrun/internal/pyversion"
	"pyrun/internal/rewrite"
)

type options struct {
	logLevel slag.Level

	python     string
	cacheDir   string
	noRewrite  bool
	configPath string

	// selector is a py-launcher style version ("-3.12") stripped from
	// the raw argument vector before flag parsing.
	selector *interp.Version
}

// setupLogging configures logging for the command
func (o *options) setupLogging(ctx context.Context) context.Context {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           charmlog.Level(o.logLevel),
		ReportTimestamp: isatty.IsTerminal(os.Stderr.Fd()),
	})
	ctx = clog.WithLogger(ctx, clog.New(l))
	slog.SetDefault(slog.New(l))
	return ctx
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code, err := run(ctx)
	cancel()
	if err != nil {
		printErrorChain(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(ctx context.Context) (int, error) {
	opts := &options{}
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:   "pyrun [flags] script.py [args...]",
		Short: "Run python scripts with an auto-provisioned interpreter",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx = opts.setupLogging(ctx)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := opts.run(cmd.Context(), args)
			exitCode = code
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Var(&opts.logLevel, "log-level", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&opts.python, "python", "", "python version to use, e.g. 3.12")
	rootCmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "directory for cached interpreter distributions")
	rootCmd.Flags().BoolVar(&opts.noRewrite, "no-rewrite", false, "run the script as-is, skipping the source rewrite")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")

	// Everything after the first positional belongs to the interpreter
	// invocation, not to us. Interpreter flags ahead of the script go
	// after a "--".
	rootCmd.Flags().SetInterspersed(false)

	// Pull a "-3.12" selector out before pflag rejects it as an unknown
	// shorthand flag.
	rawArgs, selector := pyversion.StripSelector(os.Args[1:])
	opts.selector = selector
	rootCmd.SetArgs(rawArgs)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1, err
	}
	return exitCode, nil
}

func (o *options) run(ctx context.Context, args []string) (int, error) {
	log := clog.FromContext(ctx)
	log.Debug("starting pyrun", "args", args)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return 1, err
	}

	var explicit *interp.Version
	if o.python != "" {
		v, err := pyversion.Parse(o.python)
		if err != nil {
			return 1, err
		}
		explicit = &v
	}

	fallback := pyversion.Default
	if cfg.Python != "" {
		v, err := pyversion.Parse(cfg.Python)
		if err != nil {
			return 1, fmt.Errorf("config: %w", err)
		}
		fallback = v
	}

	cacheDir := o.cacheDir
	if cacheDir == "" {
		cacheDir = cfg.CacheDir
	}
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return 1, fmt.Errorf("system needs to have a cache dir: %w", err)
		}
		cacheDir = filepath.Join(base, "pyrun")
	}

	version, fixed := pyversion.Choose(explicit, o.selector, fallback)

	rewriteFn := rewrite.Rewrite
	if o.noRewrite || (cfg.Rewrite != nil && !*cfg.Rewrite) {
		rewriteFn = func(src string, _ rewrite.Options) (string, error) { return src, nil }
	}

	l := &launcher{
		provision: provision.New(cacheDir).Python,
		rewrite:   rewriteFn,
		interp:    cpython.New(),
	}
	return l.launch(ctx, args, version, fixed)
}

// printErrorChain writes err and every underlying cause to w, one
// "Caused by:" line per layer.
func printErrorChain(w io.Writer, err error) {
	fmt.Fprintln(w, "pyrun failed")
	for ; err != nil; err = errors.Unwrap(err) {
		fmt.Fprintf(w, "  Caused by: %v\n", err)
	}
}
