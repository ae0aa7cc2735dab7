package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
)

// FlockActorName is the name the flock actor is spawned under.
const FlockActorName = "flock"

// Controller is the clock handed to the frame scheduler. It forwards every
// tick to the flock actor unless paused.
type Controller struct {
	ctx    context.Context
	pid    *actor.PID
	paused bool
	err    error
}

var _ flock.Clock = (*Controller)(nil)

// Spawn starts a FlockActor for sim inside system. The returned channel
// carries the snapshots published after each tick; it holds at most buffer frames.
func Spawn(ctx context.Context, system actor.ActorSystem, sim Simulation, buffer int) (*Controller, <-chan *Snapshot, error) {
	snapshotCh := make(chan *Snapshot, buffer)
	pid, err := system.Spawn(ctx, FlockActorName, NewFlockActor(sim, snapshotCh))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to spawn flock actor: %w", err)
	}
	return &Controller{ctx: ctx, pid: pid}, snapshotCh, nil
}

// Tick sends dt to the flock actor. It does nothing while paused or after
// a failed send; see Err.
func (c *Controller) Tick(dt float64) {
	if c.paused {
		return
	}
	c.send(dt)
}

// Step advances the flock by dt even while paused.
func (c *Controller) Step(dt float64) {
	c.send(dt)
}

// Refresh asks for a snapshot of the current state without advancing it.
func (c *Controller) Refresh() {
	if c.err != nil {
		return
	}
	if err := actor.Tell(c.ctx, c.pid, &emptypb.Empty{}); err != nil {
		c.err = fmt.Errorf("failed to request snapshot: %w", err)
	}
}

func (c *Controller) send(dt float64) {
	if c.err != nil {
		return
	}
	elapsed := durationpb.New(time.Duration(dt * float64(time.Second)))
	if err := actor.Tell(c.ctx, c.pid, elapsed); err != nil {
		c.err = fmt.Errorf("failed to send tick: %w", err)
	}
}

// TogglePause flips the paused state and reports the new one.
func (c *Controller) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

func (c *Controller) Paused() bool {
	return c.paused
}

// Err returns the first send failure, after which the controller stays silent.
func (c *Controller) Err() error {
	return c.err
}
