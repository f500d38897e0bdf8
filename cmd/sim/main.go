package main

import (
	"flag"
	"fmt"

	"nbody/internal/debug"
	"nbody/internal/graphics"
	"nbody/internal/logger"
	"nbody/internal/octree"
	"nbody/internal/scene"
	"nbody/internal/sim"
	"nbody/internal/simconfig"
)

func main() {
	configPath := flag.String("config", simconfig.DefaultPath, "path to the run configuration")
	bodies := flag.Int("bodies", 0, "override the configured body count")
	headless := flag.Bool("headless", false, "run without a window")
	steps := flag.Int("steps", 1000, "steps to run in headless mode")
	flag.Parse()

	cfg, _ := simconfig.Load(*configPath)
	if *bodies > 0 {
		cfg.Bodies = *bodies
	}

	log := logger.New()

	tree := octree.New(cfg.Theta, cfg.MinDistance, cfg.MaxForce).
		WithLeafThreshold(cfg.LeafThreshold).
		WithPoolCapacity(cfg.Bodies)

	world := sim.NewWorld(cfg.Gravity, cfg.Dt, tree, sim.Spawn(sim.SpawnOptions{
		Count:       cfg.Bodies,
		Radius:      cfg.SpawnRadius,
		MinMass:     cfg.MinMass,
		MaxMass:     cfg.MaxMass,
		CentralMass: cfg.CentralMass,
		Seed:        cfg.Seed,
	}))
	if cfg.Workers > 0 {
		world.Workers = cfg.Workers
	}

	log.Logf("starting: %d bodies, theta %.2f, leaf threshold %d, dt %.4f",
		len(world.Bodies), cfg.Theta, cfg.LeafThreshold, cfg.Dt)

	if *headless {
		runHeadless(world, log, *steps)
		return
	}

	scn := scene.New()
	overlay := debug.New()
	step := 0
	update := func() {
		world.Step()
		scn.Update()
		step++
		if step%600 == 0 {
			s := tree.Stats()
			log.Logf("step %d: %d nodes, %d force evals", step, s.NodeCount, s.ForceCalculationCount)
		}
	}
	draw := func() {
		scn.Draw(world.Bodies, tree)
		overlay.Draw(tree.Stats())
	}
	graphics.Run("nbody", update, draw)
}

// runHeadless steps the world without a window and reports progress to
// stdout and the run log.
func runHeadless(world *sim.World, log *logger.Logger, steps int) {
	for i := 1; i <= steps; i++ {
		timing := world.Step()
		if i%100 == 0 || i == steps {
			s := world.Tree.Stats()
			log.Logf("step %d: build %v, force %v, %d nodes", i, timing.Build, timing.Force, s.NodeCount)
			fmt.Printf("step %d: build %v force %v nodes %d bodies %d\n",
				i, timing.Build, timing.Force, s.NodeCount, s.BodyCount)
		}
	}
}
