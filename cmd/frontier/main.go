// Command frontier searches occupancy maps for the nearest unknown cell,
// renders them, and runs simulated explorations.
package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/frontier/config"
	"github.com/katalvlaran/frontier/logger"
	"github.com/katalvlaran/frontier/occgrid"
	"github.com/katalvlaran/frontier/render"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "frontier",
		Short: "Find the nearest unexplored cell of an occupancy map",
		Long: `frontier flood-fills the charted space around a robot and reports the
nearest unknown cell it can reach.

Maps are ASCII files ('#' wall, '.' seen, 'o' driven, '?' or space unknown,
'R' robot) or PNG images drawn with the render palette.

Examples:
  frontier search map.txt
  frontier search map.txt --from 7,4 --pockets
  frontier render map.txt -o map.png --scale 8 --trace
  frontier explore world.txt -o explored.png`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides config and LOG_LEVEL)")

	root.AddCommand(newSearchCmd(a), newRenderCmd(a), newExploreCmd(a), newVersionCmd())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	log, err := logger.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// loadMap reads an ASCII map, or an image when the extension is .png, .jpg
// or .jpeg. cell is the image block size in pixels.
func (a *app) loadMap(path string, cell int) (*occgrid.Grid, image.Point, bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		p, err := a.cfg.Palette()
		if err != nil {
			return nil, image.Point{}, false, err
		}
		return render.Load(path, p, cell)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, image.Point{}, false, fmt.Errorf("read map: %w", err)
	}
	return occgrid.Parse(string(b))
}

// parsePoint parses "x,y".
func parsePoint(s string) (image.Point, error) {
	var p image.Point
	if _, err := fmt.Sscanf(s, "%d,%d", &p.X, &p.Y); err != nil {
		return p, fmt.Errorf("invalid point %q (use x,y): %w", s, err)
	}
	return p, nil
}
