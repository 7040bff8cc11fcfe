package main

import (
	"errors"
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/frontier/frontier"
	"github.com/katalvlaran/frontier/occgrid"
)

type searchFlags struct {
	from     string
	cell     int
	pockets  bool
	diagonal bool
}

func newSearchCmd(a *app) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search MAP",
		Short: "Report the nearest reachable unknown cell",
		Long: `Search MAP from the robot cell ('R', or --from) and print the nearest
reachable unknown cell with its Manhattan distance, or "explored" when
nothing reachable is unknown.

Examples:
  frontier search map.txt
  frontier search scan.png --cell 4 --from 120,88
  frontier search map.txt --pockets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, a, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.from, "from", "", "Start cell x,y (default: the map's R cell)")
	cmd.Flags().IntVar(&f.cell, "cell", 1, "Pixels per cell for image maps")
	cmd.Flags().BoolVar(&f.pockets, "pockets", false, "Also list the unknown regions, largest first")
	cmd.Flags().BoolVar(&f.diagonal, "diagonal", false, "Join pockets diagonally (with --pockets)")
	return cmd
}

func runSearch(cmd *cobra.Command, a *app, f *searchFlags, path string) error {
	g, robot, ok, err := a.loadMap(path, f.cell)
	if err != nil {
		return err
	}
	origin, err := startCell(f.from, robot, ok)
	if err != nil {
		return err
	}

	var opts []frontier.Option
	if a.cfg.Search.Trace {
		opts = append(opts, frontier.WithLogger(a.log.WithField("component", "search")))
	}
	res, err := frontier.Search(g, origin.X, origin.Y, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "map %dx%d, origin (%d,%d)\n", g.Width(), g.Height(), origin.X, origin.Y)
	if res.Explored() {
		fmt.Fprintln(out, "explored")
	} else {
		fmt.Fprintf(out, "nearest (%d,%d) distance %d\n", res.Nearest.X, res.Nearest.Y, res.Nearest.Distance)
	}
	fmt.Fprintf(out, "spans %d, enqueued %d, visited %d, contacts %d\n",
		res.Stats.Spans, res.Stats.Enqueued, res.Stats.Visited, res.Stats.Contacts)

	if f.pockets {
		conn := occgrid.Conn4
		if f.diagonal {
			conn = occgrid.Conn8
		}
		for i, p := range g.UnknownPockets(conn) {
			x, y := g.Coordinate(p.Cells[0])
			fmt.Fprintf(out, "pocket %d: %d cells from (%d,%d)\n", i+1, p.Size(), x, y)
		}
	}
	return nil
}

// startCell picks --from over the map's robot marker.
func startCell(from string, robot image.Point, ok bool) (image.Point, error) {
	if from != "" {
		return parsePoint(from)
	}
	if !ok {
		return image.Point{}, errors.New("map has no robot cell; use --from x,y")
	}
	return robot, nil
}
