package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"herobrowser/pkg/config"
	"herobrowser/pkg/page"
	"herobrowser/pkg/resource"
	"herobrowser/pkg/state"
)

// loadSource fetches the page named by the first argument. Fetch failures
// become error pages, the same as in the viewer.
func loadSource(ctx context.Context, cmd *cli.Command, env *state.LocalEnv) (string, string, error) {
	if cmd.Args().Len() == 0 {
		return "", "", errors.New("no SOURCE specified")
	}
	addr := cmd.Args().Get(0)
	fetcher := resource.NewFetcher(env.Log.Named("fetch"), env.Cfg.FetcherOptions()...)
	env.Log.Info("Loading page", zap.String("address", addr))
	return addr, resource.Load(ctx, fetcher, addr), nil
}

func imageOptions(cmd *cli.Command, cfg *config.Config) page.ImageOptions {
	opts := page.ImageOptions{
		Width:   cfg.Viewer.Width,
		Height:  cfg.Viewer.Height,
		ScrollY: int(cmd.Int("scroll")),
	}
	if cmd.IsSet("width") {
		opts.Width = int(cmd.Int("width"))
	}
	if cmd.IsSet("height") {
		opts.Height = int(cmd.Int("height"))
	}
	if cmd.IsSet("hover-x") || cmd.IsSet("hover-y") {
		opts.Hover = true
		opts.HoverX = int(cmd.Int("hover-x"))
		opts.HoverY = int(cmd.Int("hover-y"))
	}
	return opts
}

func renderPage(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	addr, markup, err := loadSource(ctx, cmd, env)
	if err != nil {
		return err
	}
	pc, err := env.Cfg.PageConfig()
	if err != nil {
		return fmt.Errorf("unable to prepare page engine: %w", err)
	}

	opts := imageOptions(cmd, env.Cfg)
	if cmd.Bool("chrome") {
		opts.Chrome = true
		opts.TopOffset = env.Cfg.Viewer.TopBarHeight
		opts.StatusBarHeight = env.Cfg.Viewer.StatusBarHeight
		opts.Address = addr
		opts.Status = "Loaded"
	}

	img, err := page.RenderImage(markup, opts, pc, env.Log.Named("page"))
	if err != nil {
		return fmt.Errorf("unable to render %s: %w", addr, err)
	}

	dst := cmd.Args().Get(1)
	if dst == "" {
		dst = outputName(addr)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, er)
		}
	}()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("unable to encode PNG: %w", err)
	}
	env.Log.Info("Page rendered", zap.String("file", dst), zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	return nil
}

// outputName derives a PNG file name from a page address.
func outputName(addr string) string {
	if resource.IsFileAddress(addr) {
		base := filepath.Base(strings.TrimPrefix(addr, "file://"))
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}
	name := addr
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+3:]
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', ':', '\\', '?', '*', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimRight(name, "/"))
	if name == "" {
		name = "page"
	}
	return name + ".png"
}
