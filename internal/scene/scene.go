// Package scene renders the simulation: bodies as spheres, octree node
// bounds as wireframe boxes, plus a reference grid on the XZ plane.
package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"nbody/internal/octree"
	"nbody/internal/sim"
)

const (
	gridExtent = 100
	gridStep   = 10
	gridAlpha  = 50
	axisAlpha  = 220

	// minBodyRadius keeps light bodies visible; above it the radius scales
	// with cbrt(mass) so drawn volume tracks mass.
	minBodyRadius   = 0.2
	bodyRadiusScale = 0.25
	sphereRings     = 6
	sphereSlices    = 6
)

// Scene holds the viewer camera and draw toggles.
type Scene struct {
	Camera        rl.Camera3D
	GridVisible   bool
	BoundsVisible bool
	BoundsDepth   int // depth passed to Octree.Bounds; -1 draws every node
}

// New returns a scene with a perspective camera orbiting the origin.
// Camera: position (160,160,160), target (0,0,0), up (0,1,0), fovy 45°.
func New() *Scene {
	s := &Scene{GridVisible: true, BoundsVisible: true, BoundsDepth: -1}
	s.Camera.Position = rl.NewVector3(160, 160, 160)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Update runs once per frame: orbital camera motion plus viewer toggles.
// G toggles the grid, B toggles tree bounds, - and = adjust bounds depth.
func (s *Scene) Update() {
	rl.UpdateCamera(&s.Camera, rl.CameraOrbital)
	if rl.IsKeyPressed(rl.KeyG) {
		s.GridVisible = !s.GridVisible
	}
	if rl.IsKeyPressed(rl.KeyB) {
		s.BoundsVisible = !s.BoundsVisible
	}
	if rl.IsKeyPressed(rl.KeyEqual) {
		s.BoundsDepth++
	}
	if rl.IsKeyPressed(rl.KeyMinus) && s.BoundsDepth >= 0 {
		s.BoundsDepth--
	}
}

// Draw renders the world in 3D mode: grid, bodies, then the octree bounds
// from the tree's depth-limited bounds query.
func (s *Scene) Draw(bodies []sim.Body, tree *octree.Octree) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawGrid()
	}
	for i := range bodies {
		drawBody(&bodies[i])
	}
	if s.BoundsVisible && tree != nil {
		for _, b := range tree.Bounds(s.BoundsDepth) {
			drawBounds(b)
		}
	}
	rl.EndMode3D()
}

func drawBody(b *sim.Body) {
	radius := bodyRadiusScale * math32.Cbrt(float32(b.Mass))
	if radius < minBodyRadius {
		radius = minBodyRadius
	}
	rl.DrawSphereEx(toVector3(b.Position), radius, sphereRings, sphereSlices, rl.RayWhite)
}

func drawBounds(b octree.AABB) {
	rl.DrawCubeWiresV(toVector3(b.Center()), toVector3(b.Size()), rl.NewColor(80, 160, 220, 120))
}

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// drawGrid draws grid lines on the XZ plane plus axis lines through the
// origin (X=red, Y=green, Z=blue).
func drawGrid() {
	grid := rl.NewColor(128, 128, 128, gridAlpha)
	axisX := rl.NewColor(220, 80, 80, axisAlpha)
	axisY := rl.NewColor(80, 220, 80, axisAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridStep {
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, grid)
	}
	for z := -gridExtent; z <= gridExtent; z += gridStep {
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, grid)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
