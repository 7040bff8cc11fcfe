package sim

import (
	"github.com/katalvlaran/frontier/laser"
	"github.com/katalvlaran/frontier/transform"
)

// Ranger produces sweeps by marching every beam through the world in steps
// of half a cell until it enters a blocked cell.
type Ranger struct {
	World *World
	Model laser.Model
}

// Sweep returns the readings seen from pose. Beams that hit nothing within
// the model's range read RangeMax.
func (r *Ranger) Sweep(pose transform.Pose) laser.Scan {
	step := 1 / (2 * r.World.Frame.Scale)
	ranges := make([]float64, r.Model.Samples)
	for i := range ranges {
		ranges[i] = r.cast(pose, r.Model.AngleAt(i), step)
	}
	return laser.Scan{Ranges: ranges}
}

func (r *Ranger) cast(pose transform.Pose, angle, step float64) float64 {
	for d := step; d < r.Model.RangeMax; d += step {
		lx, ly := transform.Polar(angle, d)
		x, y := r.World.Frame.ToGrid(transform.LocalToMap(pose, lx, ly))
		if r.World.Blocked(x, y) {
			return d
		}
	}
	return r.Model.RangeMax
}
