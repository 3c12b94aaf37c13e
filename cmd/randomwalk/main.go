// Command randomwalk simulates a 2D lattice random walk and saves its trajectory.
//
// Usage:
//
//	go run ./cmd/randomwalk -steps 50000 -seed 1 -out random_walk.png
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/couchcryptid/cmb-spectrum/internal/randomwalk"
	"github.com/couchcryptid/cmb-spectrum/internal/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	steps := flag.Int("steps", 50000, "number of steps to simulate")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	out := flag.String("out", "random_walk.png", "output PNG path")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	fmt.Printf("Running simulation for %d steps...\n", *steps)
	traj, err := randomwalk.Simulate(*steps, rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render.WriteWalk(f, traj); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	x, y := traj.End()
	fmt.Printf("Simulation complete (seed %d, end at %g,%g). Graph saved to %s\n", *seed, x, y, *out)
	return nil
}
