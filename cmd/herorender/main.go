// herorender lays out and paints hero pages without a window: to PNG, as a
// text dump of the laid-out elements, or as the recorded draw calls.
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

	"herobrowser/pkg/config"
	"herobrowser/pkg/state"
)

const appName = "herorender"

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(appName); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// errors from subcommands are plain errors, reported once here or on exit
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "headless renderer for hero pages",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			{
				Name:         "render",
				Usage:        "Renders a page to PNG",
				OnUsageError: usageErrorHandler,
				Action:       renderPage,
				ArgsUsage:    "SOURCE [DESTINATION]",
				Flags: append(frameFlags(),
					&cli.BoolFlag{Name: "chrome", Usage: "draw address and status bars around the page"},
				),
			},
			{
				Name:         "dump",
				Usage:        "Prints the laid-out elements of a page",
				OnUsageError: usageErrorHandler,
				Action:       dumpPage,
				ArgsUsage:    "SOURCE",
				Flags: append(frameFlags(),
					&cli.BoolFlag{Name: "ops", Usage: "print the draw calls of one frame instead of the elements"},
				),
			},
			{
				Name:         "compare",
				Usage:        "Compares two rendered frames pixel by pixel",
				OnUsageError: usageErrorHandler,
				Action:       compareFrames,
				ArgsUsage:    "ACTUAL EXPECTED",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "tolerance", Value: 2, Usage: "largest channel difference still counted as equal"},
					&cli.IntFlag{Name: "fuzzy", Usage: "let pixels match neighbours within `RADIUS`"},
					&cli.FloatFlag{Name: "percent", Usage: "pass when at most this percentage of pixels differ"},
					&cli.StringFlag{Name: "diff", Usage: "write a diff image to `FILE` when frames differ"},
				},
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// os.Exit is called at the end of main, no deferred functions after this one
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

func frameFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: "viewport width in pixels (default from configuration)"},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: "viewport height in pixels (default from configuration)"},
		&cli.IntFlag{Name: "scroll", Usage: "scroll the page down by `PIXELS` before painting"},
		&cli.IntFlag{Name: "hover-x", Usage: "pointer x for link hover"},
		&cli.IntFlag{Name: "hover-y", Usage: "pointer y for link hover"},
	}
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err  error
		data []byte
		kind string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		kind = "default"
		data = config.Prepare()
	} else {
		kind = "actual"
		if data, err = config.Dump(env.Cfg); err != nil {
			return fmt.Errorf("unable to get configuration: %w", err)
		}
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Debug("Outputing configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
