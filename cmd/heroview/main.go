// heroview is the windowed hero page browser.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2/app"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"herobrowser/pkg/config"
	"herobrowser/pkg/state"
)

const appName = "heroview"

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
	return ctx, nil
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()))
		_ = env.Log.Sync()
	}
	env.RestoreStdLog()
	return nil
}

func browse(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	b, err := newBrowser(ctx, app.New(), env.Cfg, env.Log)
	if err != nil {
		return err
	}
	b.run(cmd.Args().Get(0))
	return nil
}

func main() {
	root := &cli.Command{
		Name:            appName,
		Usage:           "browser for hero pages",
		ArgsUsage:       "[ADDRESS]",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		Action:          browse,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
	}

	if err := root.Run(state.ContextWithEnv(context.Background()), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		os.Exit(1)
	}
}
