// Command bench measures octree build and force-query performance across a
// body-count sweep and reports approximation accuracy against the direct
// O(n^2) sum.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"nbody/internal/octree"
)

const (
	theta       = 0.5
	minDistance = 0.1
	maxForce    = 1e4
	gravity     = 6.674e-11
	buildReps   = 10
	forceReps   = 1000
)

func main() {
	maxBodies := flag.Int("max", 50000, "largest body count in the sweep")
	seed := flag.Int64("seed", 42, "body generation seed")
	flag.Parse()

	counts := []int{100, 500, 1000, 2000, 5000, 10000, 20000, 50000, 100000}
	var sweep []int
	for _, c := range counts {
		if c <= *maxBodies {
			sweep = append(sweep, c)
		}
	}

	benchmarkBuild(sweep, *seed)
	benchmarkForce(sweep, *seed)
	reportAccuracy(1000, *seed)
}

func generateBodies(count int, seed int64) []octree.Body {
	rng := rand.New(rand.NewSource(seed))
	bodies := make([]octree.Body, count)
	for i := range bodies {
		bodies[i] = octree.Body{
			ID: octree.ID(i),
			Position: mgl64.Vec3{
				rng.Float64()*200 - 100,
				rng.Float64()*200 - 100,
				rng.Float64()*200 - 100,
			},
			Mass: 1 + rng.Float64()*9,
		}
	}
	return bodies
}

func benchmarkBuild(counts []int, seed int64) {
	fmt.Println("=== Build performance ===")
	for _, count := range counts {
		bodies := generateBodies(count, seed)

		// Cold: fresh tree each repetition, arena grown from nothing.
		start := time.Now()
		for r := 0; r < buildReps; r++ {
			tree := octree.New(theta, minDistance, maxForce)
			tree.Build(bodies)
		}
		cold := time.Since(start)

		// Warm: one tree rebuilt in place, arena reused via the free list.
		tree := octree.New(theta, minDistance, maxForce).WithPoolCapacity(count)
		tree.Build(bodies)
		start = time.Now()
		for r := 0; r < buildReps; r++ {
			tree.Build(bodies)
		}
		warm := time.Since(start)

		allocated, free := tree.PoolStats()
		fmt.Printf("bodies %6d | cold %8.2fms | warm %8.2fms | pool %d slots (%d free)\n",
			count,
			cold.Seconds()*1000/buildReps,
			warm.Seconds()*1000/buildReps,
			allocated, free)
	}
}

func benchmarkForce(counts []int, seed int64) {
	fmt.Println("\n=== Force query performance ===")
	for _, count := range counts {
		bodies := generateBodies(count, seed)
		tree := octree.New(theta, minDistance, maxForce)
		tree.Build(bodies)

		start := time.Now()
		for r := 0; r < forceReps; r++ {
			tree.CalculateForce(bodies[r%len(bodies)], gravity)
		}
		elapsed := time.Since(start)

		fmt.Printf("bodies %6d | %8.2fus per query | %d evals counted\n",
			count,
			float64(elapsed.Microseconds())/forceReps,
			tree.Stats().ForceCalculationCount)
	}
}

// reportAccuracy compares octree forces at several theta values against the
// direct pairwise sum over a sample of bodies.
func reportAccuracy(count int, seed int64) {
	fmt.Println("\n=== Accuracy vs direct sum ===")
	bodies := generateBodies(count, seed)

	const sample = 32
	for _, th := range []float64{0.0, 0.3, 0.5, 1.0} {
		tree := octree.New(th, minDistance, maxForce)
		tree.Build(bodies)

		worst := 0.0
		for i := 0; i < sample; i++ {
			b := bodies[i*len(bodies)/sample]
			approx := tree.CalculateForce(b, gravity)
			exact := directForce(bodies, b)
			if exact.Len() == 0 {
				continue
			}
			if rel := approx.Sub(exact).Len() / exact.Len(); rel > worst {
				worst = rel
			}
		}
		fmt.Printf("theta %.1f | max relative error %.3e\n", th, worst)
	}
}

// directForce is the O(n^2) reference: the same clamped kernel summed over
// every other body.
func directForce(bodies []octree.Body, target octree.Body) mgl64.Vec3 {
	const minSq = minDistance * minDistance
	var total mgl64.Vec3
	for _, b := range bodies {
		if b.ID == target.ID {
			continue
		}
		dir := b.Position.Sub(target.Position)
		distSq := dir.LenSqr()
		if distSq < minSq {
			distSq = minSq
		}
		mag := gravity * target.Mass * b.Mass / distSq
		if mag > maxForce {
			mag = maxForce
		}
		total = total.Add(dir.Mul(mag / math.Sqrt(distSq)))
	}
	return total
}
