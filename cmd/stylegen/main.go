package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/goliatone/go-stylegen/internal/config"
	"github.com/goliatone/go-stylegen/pkg/render"
)

const appName = "stylegen"

var version = "dev"

// initializeAppContext loads configuration and prepares logging after the
// command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.Level = "debug"
	}
	if env.Log, env.logFile, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
		_ = env.Log.Sync()
	}
	if env.logFile != nil {
		if err := env.logFile.Close(); err != nil {
			return fmt.Errorf("unable to close log file: %w", err)
		}
	}
	return nil
}

// Errors from subcommands are logged here and the exit code is set in main.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Log != nil && env.Cfg != nil && env.Cfg.Logging.Level != "none" {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "compiles page-builder module attributes into scoped CSS",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log every skipped field and breakpoint"},
		},
		Commands: []*cli.Command{
			{
				Name:         "compile",
				Usage:        "Compiles one module instance's attributes",
				OnUsageError: usageErrorHandler,
				Action:       runCompile,
				Flags: []cli.Flag{
					modulesFlag(), moduleFlag(), slugFlag(), rendererFlag(), strictFlag(), presetsFlag(), outFlag(),
					&cli.StringFlag{Name: "attrs", Aliases: []string{"a"}, Required: true, Usage: "attribute bag `FILE` (JSON or YAML, - for STDIN)"},
				},
			},
			{
				Name:         "prompt",
				Usage:        "Asks for a module's attribute values interactively and compiles them",
				OnUsageError: usageErrorHandler,
				Action:       runPrompt,
				Flags: []cli.Flag{
					modulesFlag(), moduleFlag(), slugFlag(), rendererFlag(), strictFlag(), presetsFlag(), outFlag(),
					&cli.StringFlag{Name: "save", Usage: "also write the collected attributes to `FILE` (YAML)"},
					&cli.BoolFlag{Name: "no-responsive", Usage: "do not ask for tablet/phone values"},
					&cli.BoolFlag{Name: "no-hover", Usage: "do not ask for hover values"},
				},
			},
			{
				Name:         "modules",
				Usage:        "Lists the available modules",
				OnUsageError: usageErrorHandler,
				Action:       runModules,
				Flags:        []cli.Flag{modulesFlag()},
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps either default or actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}

	var err error
	// os.Exit is called at the end of main, no deferred functions may follow
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func modulesFlag() cli.Flag {
	return &cli.StringFlag{Name: "modules", Aliases: []string{"m"}, Usage: "load module descriptors from `DIR` instead of the bundled set"}
}

func moduleFlag() cli.Flag {
	return &cli.StringFlag{Name: "module", Required: true, Usage: "module `NAME` to compile"}
}

func slugFlag() cli.Flag {
	return &cli.StringFlag{Name: "slug", Usage: "render `SLUG` substituted for the order class (default: <module>_0)"}
}

func rendererFlag() cli.Flag {
	return &cli.StringFlag{Name: "renderer", Aliases: []string{"r"}, Usage: "output `TYPE` (" + render.NameCSS + ", " + render.NameStyleTag + ")"}
}

func strictFlag() cli.Flag {
	return &cli.BoolFlag{Name: "strict", Usage: "skip values that could break out of their declaration"}
}

func presetsFlag() cli.Flag {
	return &cli.StringFlag{Name: "presets", Usage: "fill attributes missing from the bag using preset `FILE` (JSON or YAML)"}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write output to `FILE` instead of STDOUT"}
}
