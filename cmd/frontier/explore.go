package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/frontier/emitter"
	"github.com/katalvlaran/frontier/explore"
	"github.com/katalvlaran/frontier/laser"
	"github.com/katalvlaran/frontier/render"
	"github.com/katalvlaran/frontier/sim"
	"github.com/katalvlaran/frontier/transform"
)

type exploreFlags struct {
	scale    float64
	maxSteps int
	output   string
	mqtt     bool
}

func newExploreCmd(a *app) *cobra.Command {
	f := &exploreFlags{}
	cmd := &cobra.Command{
		Use:   "explore WORLD",
		Short: "Explore a simulated world until nothing reachable is unknown",
		Long: `Simulate a robot with the configured laser inside WORLD, an ASCII map with
'#' walls and an 'R' start cell. Every step takes a sweep, updates the map,
searches for the nearest unknown cell and moves next to it.

Sweeps also feed an exploration session whose targets are published over
MQTT when mqtt.enabled is set in the configuration or --mqtt is given.

Examples:
  frontier explore world.txt --scale 20
  frontier explore world.txt -o explored.png
  frontier explore world.txt -c frontier.yaml --mqtt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, a, f, args[0])
		},
	}
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "World resolution in cells per metre (default: frame.scale from config)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 1000, "Stop after this many steps")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the final map image here")
	cmd.Flags().BoolVar(&f.mqtt, "mqtt", false, "Publish targets over MQTT")
	return cmd
}

func runExplore(cmd *cobra.Command, a *app, f *exploreFlags, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read world: %w", err)
	}
	scale := f.scale
	if !cmd.Flags().Changed("scale") {
		scale = a.cfg.Frame.Scale
	}
	world, start, err := sim.NewWorld(string(b), scale)
	if err != nil {
		return err
	}
	model := a.cfg.Laser.Model
	mapper, err := laser.NewMapper(world.Frame, model, a.cfg.MapperOptions()...)
	if err != nil {
		return err
	}

	sessOpts := []explore.Option{
		explore.WithLogger(a.log),
		explore.WithMapperOptions(a.cfg.MapperOptions()...),
		explore.WithTrace(a.cfg.Search.Trace),
	}
	if f.mqtt || a.cfg.MQTT.Enabled {
		pub, err := emitter.New(a.cfg.MQTT.Config, a.log)
		if err != nil {
			return err
		}
		if err := pub.Connect(ctx); err != nil {
			return err
		}
		defer pub.Close()
		sessOpts = append(sessOpts, explore.WithPublisher(pub))
	}
	session, err := explore.New(world.Frame, model, sessOpts...)
	if err != nil {
		return err
	}

	explorer, err := sim.NewExplorer(world, mapper, start,
		sim.WithMaxSteps(f.maxSteps),
		sim.WithLogger(a.log),
		sim.WithOnSweep(func(pose transform.Pose, scan laser.Scan) {
			mirror(ctx, a, session, pose, scan)
		}))
	if err != nil {
		return err
	}

	rep, err := explorer.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	wf := world.Frame
	fmt.Fprintf(out, "world %dx%d at %g cells/m\n", wf.Width, wf.Height, wf.Scale)
	fmt.Fprintf(out, "session %s\n", session.ID())
	fmt.Fprintf(out, "steps %d, targets %d, touched %d, explored %t\n",
		rep.Steps, len(rep.Targets), rep.Touched, rep.Explored)
	c := explorer.Map.Counts()
	fmt.Fprintf(out, "cells: %d unknown, %d seen, %d driven, %d wall\n", c.Unknown, c.Seen, c.Driven, c.Wall)

	if f.output != "" {
		return writeExplored(cmd, a, explorer, f.output)
	}
	return nil
}

// mirror feeds a simulated sweep into the session and asks it for a target,
// which publishes it when a publisher is set.
func mirror(ctx context.Context, a *app, s *explore.Session, pose transform.Pose, scan laser.Scan) {
	if _, err := s.Update(pose, scan); err != nil {
		a.log.WithError(err).Warn("session update failed")
		return
	}
	if _, err := s.Nearest(ctx, pose); err != nil {
		a.log.WithError(err).Warn("session search failed")
	}
}

func writeExplored(cmd *cobra.Command, a *app, e *sim.Explorer, path string) error {
	p, err := a.cfg.Palette()
	if err != nil {
		return err
	}
	img, err := render.Image(e.Map, render.WithPalette(p), render.WithScale(a.cfg.Render.Scale))
	if err != nil {
		return err
	}
	if err := render.Save(path, img); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
