package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/frontier/frontier"
	"github.com/katalvlaran/frontier/render"
)

type renderFlags struct {
	output string
	scale  int
	cell   int
	trace  bool
	from   string
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render MAP",
		Short: "Draw a map as an image",
		Long: `Draw MAP with the configured palette. With --trace, search from the
robot cell and overlay the enqueued spans, the unknown contacts and a line
to the nearest unknown cell.

Examples:
  frontier render map.txt -o map.png --scale 8
  frontier render map.txt -o trace.png --scale 8 --trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, f, args[0])
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "map.png", "Output image (format from extension)")
	cmd.Flags().IntVar(&f.scale, "scale", 0, "Pixels per cell (default: render.scale from config)")
	cmd.Flags().IntVar(&f.cell, "cell", 1, "Pixels per cell when MAP is an image")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "Overlay a search from the robot cell")
	cmd.Flags().StringVar(&f.from, "from", "", "Start cell x,y for --trace (default: the map's R cell)")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, f *renderFlags, path string) error {
	g, robot, ok, err := a.loadMap(path, f.cell)
	if err != nil {
		return err
	}
	p, err := a.cfg.Palette()
	if err != nil {
		return err
	}
	scale := f.scale
	if scale == 0 {
		scale = a.cfg.Render.Scale
	}
	opts := []render.Option{render.WithPalette(p), render.WithScale(scale)}

	if f.trace {
		origin, err := startCell(f.from, robot, ok)
		if err != nil {
			return err
		}
		tr := render.NewTrace()
		res, err := frontier.Search(g, origin.X, origin.Y, tr.Options()...)
		if err != nil {
			return err
		}
		tr.Record(res)
		opts = append(opts, render.WithTrace(tr))
	}

	img, err := render.Image(g, opts...)
	if err != nil {
		return err
	}
	if err := render.Save(f.output, img); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", f.output, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
