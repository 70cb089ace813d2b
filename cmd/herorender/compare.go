package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"herobrowser/pkg/state"
	"herobrowser/pkg/visualtest"
)

var errFramesDiffer = errors.New("frames differ")

func compareFrames(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() < 2 {
		return errors.New("ACTUAL and EXPECTED must both be specified")
	}

	actual, err := visualtest.LoadPNG(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	expected, err := visualtest.LoadPNG(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	opts := visualtest.Options{
		Tolerance:           int(cmd.Int("tolerance")),
		FuzzyRadius:         int(cmd.Int("fuzzy")),
		MaxDifferentPercent: cmd.Float("percent"),
	}
	res, err := visualtest.Compare(actual, expected, opts)
	if err != nil {
		return err
	}
	env.Log.Info("Frames compared",
		zap.Bool("match", res.Match),
		zap.Int("different", res.DifferentPixels),
		zap.Int("total", res.TotalPixels),
		zap.Int("max difference", res.MaxDifference),
		zap.Stringer("bounds", res.Bounds))

	if path := cmd.String("diff"); path != "" && !res.Match {
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("unable to create diff image '%s': %w", path, err)
		}
		defer out.Close()
		if err := png.Encode(out, visualtest.Diff(actual, expected, opts)); err != nil {
			return fmt.Errorf("unable to encode diff image: %w", err)
		}
	}
	if !res.Match {
		return fmt.Errorf("%w: %d of %d pixels", errFramesDiffer, res.DifferentPixels, res.TotalPixels)
	}
	return nil
}
