// Package sim is the simulation loop around the octree: it owns body
// velocities, rebuilds the tree every step, and integrates the resulting
// forces.
package sim

import (
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"nbody/internal/octree"
)

// Body is a simulated particle: an octree body plus its velocity.
type Body struct {
	ID       octree.ID
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Mass     float64
}

// StepTiming reports where a step spent its time.
type StepTiming struct {
	Build time.Duration
	Force time.Duration
}

// World steps a set of bodies under self-gravity. Each step rebuilds the
// octree wholesale and only then queries it, so the tree is never mutated
// while forces are being read.
type World struct {
	G       float64
	Dt      float64
	Workers int
	Bodies  []Body
	Tree    *octree.Octree

	snapshot []octree.Body // reused build input, one entry per live body
	forces   []mgl64.Vec3  // reused per-step force buffer
}

// NewWorld returns a world over the given tree and bodies. Workers defaults
// to the number of CPUs.
func NewWorld(g, dt float64, tree *octree.Octree, bodies []Body) *World {
	return &World{
		G:       g,
		Dt:      dt,
		Workers: runtime.NumCPU(),
		Bodies:  bodies,
		Tree:    tree,
	}
}

// Step advances the simulation by Dt: snapshot the bodies, rebuild the
// tree, evaluate forces across worker goroutines, then integrate with an
// explicit Euler step. The build completes before any force query starts.
func (w *World) Step() StepTiming {
	var timing StepTiming

	w.snapshot = w.snapshot[:0]
	for _, b := range w.Bodies {
		w.snapshot = append(w.snapshot, octree.Body{ID: b.ID, Position: b.Position, Mass: b.Mass})
	}

	start := time.Now()
	w.Tree.Build(w.snapshot)
	timing.Build = time.Since(start)

	if cap(w.forces) < len(w.Bodies) {
		w.forces = make([]mgl64.Vec3, len(w.Bodies))
	}
	w.forces = w.forces[:len(w.Bodies)]

	start = time.Now()
	w.evaluateForces()
	timing.Force = time.Since(start)

	for i := range w.Bodies {
		b := &w.Bodies[i]
		if b.Mass <= 0 {
			continue
		}
		b.Velocity = b.Velocity.Add(w.forces[i].Mul(w.Dt / b.Mass))
		b.Position = b.Position.Add(b.Velocity.Mul(w.Dt))
	}
	return timing
}

// evaluateForces fans the read-only force queries out over Workers
// goroutines in contiguous chunks.
func (w *World) evaluateForces() {
	workers := w.Workers
	if workers < 1 {
		workers = 1
	}
	chunk := (len(w.Bodies) + workers - 1) / workers
	if chunk == 0 {
		return
	}

	var wg sync.WaitGroup
	for lo := 0; lo < len(w.Bodies); lo += chunk {
		hi := min(lo+chunk, len(w.Bodies))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				w.forces[i] = w.Tree.CalculateForce(w.snapshot[i], w.G)
			}
		}(lo, hi)
	}
	wg.Wait()
}
