package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	// Zone data for date helpers on hosts without a zoneinfo database
	_ "time/tzdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/dago-hbs-render/internal/config"
	"github.com/aescanero/dago-hbs-render/internal/eval/cel"
	"github.com/aescanero/dago-hbs-render/internal/eval/template"
	"github.com/aescanero/dago-hbs-render/internal/funcs"
	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/vars"
	"github.com/aescanero/dago-hbs-render/internal/watch"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

// Exit statuses
const (
	exitOK = iota
	exitFailure
	exitUsage
	exitSyntax
	exitRender
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, environ(os.Environ()))
	cancel()

	if err != nil {
		reportError(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// run is the main entry point, kept free of process globals for tests
func run(ctx context.Context, args []string, stdout, stderr io.Writer, env map[string]string) error {
	// Check for subcommands first
	if len(args) > 0 {
		switch args[0] {
		case "helpers":
			return runHelpers(args[1:], stdout, env)
		case "worker":
			return runWorker(ctx, args[1:], env)
		}
	}

	// Default: render a template
	return runRender(ctx, args, stdout, stderr, env)
}

// usageError is a bad command line
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// runRender renders TEMPLATE against VARS to stdout
func runRender(ctx context.Context, args []string, stdout, stderr io.Writer, env map[string]string) error {
	// Load configuration
	cfg, err := config.LoadFrom(env)
	if err != nil {
		return err
	}

	// Set up flags; environment values are the defaults
	flags := flag.NewFlagSet("hbs-render", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		strict      = flags.Bool("strict", cfg.Strict, "Fail on undefined identifiers")
		devMode     = flags.Bool("dev-mode", cfg.DevMode, "Disable the template cache")
		watchFiles  = flags.Bool("watch", false, "Re-render when the template or variables change")
		logLevel    = flags.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
		showVersion = flags.Bool("version", false, "Show version")
		showHelp    = flags.Bool("help", false, "Show help")
	)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return nil
		}
		printUsage(stderr)
		return usagef("%v", err)
	}

	if *showHelp {
		printUsage(stdout)
		return nil
	}

	if *showVersion {
		fmt.Fprintf(stdout, "hbs-render version %s (%s)\n", Version, BuildTime)
		return nil
	}

	if flags.NArg() != 2 {
		printUsage(stderr)
		return usagef("expected TEMPLATE and VARS, got %d arguments", flags.NArg())
	}
	templatePath, varsPath := flags.Arg(0), flags.Arg(1)

	if !config.IsValidLogLevel(*logLevel) {
		return usagef("--log-level must be one of: debug, info, warn, error")
	}

	// Initialize logger
	logger, err := initLogger(*logLevel, "stderr")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	engine := template.NewEngine(newRegistry(cfg),
		template.WithStrict(*strict),
		template.WithDevMode(*devMode),
		template.WithLogger(logger),
	)

	render := func() error {
		return renderFiles(engine, templatePath, varsPath, stdout)
	}

	if !*watchFiles {
		return render()
	}

	// Watch mode: report failures and keep going
	if err := render(); err != nil {
		reportError(stderr, err)
	}

	w, err := watch.New([]string{templatePath, varsPath}, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching for changes",
		zap.String("template", templatePath),
		zap.String("vars", varsPath),
	)

	err = w.Run(ctx, func(path string) {
		logger.Debug("re-rendering", zap.String("changed", path))
		if err := render(); err != nil {
			reportError(stderr, err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// renderFiles renders one template file against one variables file
func renderFiles(engine *template.Engine, templatePath, varsPath string, stdout io.Writer) error {
	src, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	data, err := vars.Load(varsPath)
	if err != nil {
		return err
	}

	out, err := engine.Render(string(src), data)
	if err != nil {
		return fmt.Errorf("%s: %w", templatePath, err)
	}

	_, err = io.WriteString(stdout, out)
	return err
}

// runHelpers lists every registered helper with its signature
func runHelpers(args []string, stdout io.Writer, env map[string]string) error {
	if len(args) > 0 {
		return usagef("helpers takes no arguments")
	}

	cfg, err := config.LoadFrom(env)
	if err != nil {
		return err
	}

	registry := newRegistry(cfg)
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for _, name := range registry.Names() {
		entry, _ := registry.Lookup(name)
		fmt.Fprintf(tw, "%s\t%s\n", entry.Spec.Signature(), entry.Spec.Description)
	}
	return tw.Flush()
}

// newRegistry builds the helper registry for the configuration
func newRegistry(cfg *config.Config) *helper.Registry {
	if cfg.CELEnabled {
		return funcs.NewRegistry(funcs.WithExpr(cel.NewEvaluator()))
	}
	return funcs.NewRegistry()
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		return exitUsage
	}

	switch helper.KindOf(err) {
	case 0:
		return exitFailure
	case helper.KindTemplateSyntax:
		return exitSyntax
	default:
		return exitRender
	}
}

// reportError prints err on stderr, naming its kind when it has one
func reportError(stderr io.Writer, err error) {
	if kind := helper.KindOf(err); kind != 0 {
		fmt.Fprintf(stderr, "error [%s]: %v\n", kind, err)
		return
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
}

// initLogger initializes the logger
func initLogger(level string, output string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

// environ turns KEY=VALUE pairs into a map
func environ(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if k, v, ok := strings.Cut(pair, "="); ok {
			env[k] = v
		}
	}
	return env
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: hbs-render [flags] TEMPLATE VARS
       hbs-render helpers
       hbs-render worker

Renders the Handlebars TEMPLATE file against the VARS file (.json, .yaml,
.yml or .toml) and writes the result to standard output.

Flags:
  --strict           Fail on undefined identifiers (HBS_STRICT)
  --dev-mode         Disable the template cache (HBS_DEV_MODE)
  --watch            Re-render when TEMPLATE or VARS change
  --log-level LEVEL  debug, info, warn or error (LOG_LEVEL)
  --version          Show version
  --help             Show this help

Exit status: 0 success, 1 I/O or configuration error, 2 usage error,
3 template syntax error, 4 helper or render error.
`)
}
