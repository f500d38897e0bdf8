package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"nbody/internal/octree"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce
	// allocations.
	updateInterval = 30
)

// Overlay draws runtime debugging text: FPS and octree statistics.
type Overlay struct {
	ShowFPS       bool
	ShowStats     bool
	frameCount    uint32
	lastFpsText   string
	lastStatsText string
}

// New returns an Overlay with FPS and stats visible.
func New() *Overlay {
	return &Overlay{ShowFPS: true, ShowStats: true}
}

// Draw renders enabled overlays at the top-left. Call after the 3D scene in
// the draw loop. Text is recomputed every updateInterval frames.
func (o *Overlay) Draw(stats octree.Stats) {
	o.frameCount++
	update := o.frameCount%updateInterval == 0
	if o.lastFpsText == "" || o.lastStatsText == "" {
		update = true
	}

	y := int32(padding)
	if o.ShowFPS {
		if update {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		rl.DrawText(o.lastFpsText, padding, y, fontSize, rl.Green)
		y += lineHeight
	}
	if o.ShowStats {
		if update {
			o.lastStatsText = fmt.Sprintf("nodes %d | bodies %d | mass %.0f | force evals %d",
				stats.NodeCount, stats.BodyCount, stats.TotalMass, stats.ForceCalculationCount)
		}
		rl.DrawText(o.lastStatsText, padding, y, fontSize, rl.SkyBlue)
	}
}
