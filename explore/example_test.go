package explore_test

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/frontier/explore"
	"github.com/katalvlaran/frontier/laser"
	"github.com/katalvlaran/frontier/transform"
)

// ExampleSession_Nearest integrates one beam and asks where to go next.
func ExampleSession_Nearest() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	frame := transform.Frame{Scale: 10, OffsetX: 10, OffsetY: 10, Width: 21, Height: 21}
	beam := laser.Model{FOVDeg: 0.0001, Samples: 1, RangeMax: 4, Epsilon: 0.001}
	s, err := explore.New(frame, beam,
		explore.WithLogger(log),
		explore.WithMapperOptions(laser.WithThickness(0)))
	if err != nil {
		fmt.Println(err)
		return
	}

	pose := transform.Pose{X: 0.05, Y: 0.05}
	if _, err := s.Update(pose, laser.Scan{Ranges: []float64{0.62}}); err != nil {
		fmt.Println(err)
		return
	}
	t, err := s.Nearest(context.Background(), pose)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("cell %v at (%.2f, %.2f) m, distance %d\n", t.Cell, t.X, t.Y, t.Distance)
	// Output:
	// cell (9,10) at (-0.15, 0.00) m, distance 1
}
