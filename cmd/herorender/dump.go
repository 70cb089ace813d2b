package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"herobrowser/pkg/layout"
	"herobrowser/pkg/page"
	"herobrowser/pkg/render"
	"herobrowser/pkg/state"
)

func dumpPage(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	_, markup, err := loadSource(ctx, cmd, env)
	if err != nil {
		return err
	}
	pc, err := env.Cfg.PageConfig()
	if err != nil {
		return fmt.Errorf("unable to prepare page engine: %w", err)
	}
	opts := imageOptions(cmd, env.Cfg)

	rec := render.NewRecorder()
	e := page.New(rec, pc, env.Log.Named("page"))
	defer func() {
		if er := e.Close(); er != nil {
			env.Log.Warn("Unable to release page engine", zap.Error(er))
		}
		if rec.Live() != 0 {
			env.Log.Warn("Textures left unreleased", zap.Int("count", rec.Live()))
		}
	}()

	e.Layout(markup, opts.Width)
	if !cmd.Bool("ops") {
		return writeElements(os.Stdout, e.Document())
	}

	e.Render(opts.Height, 0)
	e.Scroll(opts.ScrollY)
	if opts.Hover {
		e.UpdateHover(opts.HoverX, opts.HoverY, 0)
	}
	rec.Reset()
	e.Render(opts.Height, 0)
	return rec.Dump(os.Stdout)
}

func writeElements(w io.Writer, doc *layout.Document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "#\trole\tx\ty\tw\th\ttext\thref")
	for i, el := range doc.Elements {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%q\t%s\n", i, el.Role, el.Rect.X, el.Rect.Y, el.Rect.W, el.Rect.H, el.Text, el.Href)
	}
	for _, bd := range doc.Backdrops {
		fmt.Fprintf(tw, "-\t%s\t%d\t%d\t%d\t%d\tbefore %d\t\n", bd.Kind, bd.Rect.X, bd.Rect.Y, bd.Rect.W, bd.Rect.H, bd.Before)
	}
	fmt.Fprintf(tw, "\ntotal height\t%d\n", doc.TotalContentHeight)
	return tw.Flush()
}
