// Command boids runs an interactive flock simulation in a 640x640 window.
//
// Usage:
//
//	boids [config_file]
//
// The optional argument is a .json or .toml file overriding the default
// rule constants. Space pauses and resumes, right arrow advances one tick.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/render"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
)

const (
	windowSize     = 640
	snapshotBuffer = 10
)

const usage = `Usage: boids [config_file]

The first argument is optional and is the path to a .json or .toml config file.
`

func main() {
	logger := golog.DefaultLogger
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger golog.Logger) error {
	cfg := flock.DefaultConfig()
	switch len(os.Args) {
	case 1:
	case 2:
		var err error
		if cfg, err = flock.LoadConfig(os.Args[1]); err != nil {
			return err
		}
		logger.Infof("loaded config from %s", os.Args[1])
	default:
		return fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("BoidsFlock", actor.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() {
		if err := system.Stop(ctx); err != nil {
			logger.Error(err)
		}
	}()

	seed := uint64(time.Now().UnixNano())
	logger.Infof("seeding flock with %d", seed)
	f := flock.New(cfg, flock.NewVariates(seed))

	clock, snapshots, err := simulation.Spawn(ctx, system, f, snapshotBuffer)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(windowSize, windowSize)
	ebiten.SetWindowTitle("Boids")
	return ebiten.RunGame(render.NewGame(clock, snapshots, cfg, windowSize))
}
