package sim

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"nbody/internal/octree"
)

// SpawnOptions controls procedural body generation. Seed == 0 uses a
// time-based seed; any other seed reproduces the same set exactly.
type SpawnOptions struct {
	Count       int
	Radius      float64
	MinMass     float64
	MaxMass     float64
	CentralMass float64 // > 0 adds one heavy body at the origin
	Seed        int64
}

// DefaultSpawnOptions returns a sane default distribution.
func DefaultSpawnOptions() SpawnOptions {
	return SpawnOptions{
		Count:   500,
		Radius:  100,
		MinMass: 1,
		MaxMass: 10,
		Seed:    42,
	}
}

// Spawn returns Count bodies uniformly distributed in a ball of Radius
// with masses in [MinMass, MaxMass), plus an optional central body.
func Spawn(opts SpawnOptions) []Body {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bodies := make([]Body, 0, opts.Count+1)
	id := octree.ID(0)
	if opts.CentralMass > 0 {
		bodies = append(bodies, Body{ID: id, Mass: opts.CentralMass})
		id++
	}
	for i := 0; i < opts.Count; i++ {
		// Rejection-sample a point in the unit ball, then scale to Radius.
		var p mgl64.Vec3
		for {
			p = mgl64.Vec3{
				rng.Float64()*2 - 1,
				rng.Float64()*2 - 1,
				rng.Float64()*2 - 1,
			}
			if p.LenSqr() <= 1 {
				break
			}
		}
		bodies = append(bodies, Body{
			ID:       id,
			Position: p.Mul(opts.Radius),
			Mass:     opts.MinMass + rng.Float64()*(opts.MaxMass-opts.MinMass),
		})
		id++
	}
	return bodies
}
