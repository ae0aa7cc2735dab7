package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
)

func newTestSystem(t *testing.T) actor.ActorSystem {
	t.Helper()
	ctx := context.Background()
	system, err := actor.NewActorSystem("FlockTest", actor.WithLogger(golog.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })
	return system
}

func waitSnapshot(t *testing.T, ch <-chan *Snapshot) *Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return nil
	}
}

func closePair() *flock.Flock {
	return flock.NewFromBoids(flock.DefaultConfig(), []flock.Boid{
		{Pos: geometry.Vector2D{X: 0.5, Y: 0.5}},
		{Pos: geometry.Vector2D{X: 0.55, Y: 0.5}},
	})
}

func TestFlockActor_TickPublishesSnapshot(t *testing.T) {
	ctx := context.Background()
	system := newTestSystem(t)
	ctrl, snapshots, err := Spawn(ctx, system, closePair(), 4)
	require.NoError(t, err)

	// first tick: positions move with the initial zero velocity, then separation kicks in
	ctrl.Step(1.0)
	snap := waitSnapshot(t, snapshots)
	require.NoError(t, ctrl.Err())
	assert.Equal(t, uint64(1), snap.Tick)
	require.Len(t, snap.Boids, 2)
	assert.InDelta(t, 0.5, snap.Boids[0].Pos.X, 1e-9)
	assert.Less(t, snap.Boids[0].Vel.X, 0.0)
	assert.Greater(t, snap.Boids[1].Vel.X, 0.0)
	assert.Equal(t, flock.DefaultConfig().BoidRadius, snap.BoidRadius)

	// second tick moves them apart
	ctrl.Tick(1.0)
	snap = waitSnapshot(t, snapshots)
	assert.Equal(t, uint64(2), snap.Tick)
	assert.Less(t, snap.Boids[0].Pos.X, 0.5)
	assert.Greater(t, snap.Boids[1].Pos.X, 0.55)
}

func TestController_PauseAndStep(t *testing.T) {
	ctx := context.Background()
	system := newTestSystem(t)
	ctrl, snapshots, err := Spawn(ctx, system, closePair(), 4)
	require.NoError(t, err)

	require.True(t, ctrl.TogglePause())
	assert.True(t, ctrl.Paused())
	ctrl.Tick(0.5)
	ctrl.Refresh()

	snap := waitSnapshot(t, snapshots)
	assert.Equal(t, uint64(0), snap.Tick, "paused controller must not advance the flock")
	assert.InDelta(t, 0.0, snap.Boids[0].Vel.X, 1e-9)

	ctrl.Step(0.5)
	snap = waitSnapshot(t, snapshots)
	assert.Equal(t, uint64(1), snap.Tick)

	require.False(t, ctrl.TogglePause())
	ctrl.Tick(0.5)
	snap = waitSnapshot(t, snapshots)
	assert.Equal(t, uint64(2), snap.Tick)
	require.NoError(t, ctrl.Err())
}

func TestFlockActor_DropsFramesWhenRendererIsBusy(t *testing.T) {
	snapshotCh := make(chan *Snapshot, 1)
	a := NewFlockActor(closePair(), snapshotCh)

	a.pushSnapshot()
	a.pushSnapshot()

	assert.Len(t, snapshotCh, 1)
}

func TestBuildSnapshot(t *testing.T) {
	f := flock.NewFromBoids(flock.DefaultConfig(), []flock.Boid{
		{Pos: geometry.Vector2D{X: 0.1, Y: 0.1}, Vel: geometry.Vector2D{X: 3, Y: 4}},
		{Pos: geometry.Vector2D{X: 0.9, Y: 0.9}, Vel: geometry.Vector2D{X: 0, Y: 1}},
	})

	snap := buildSnapshot(7, f)

	assert.Equal(t, uint64(7), snap.Tick)
	assert.InDelta(t, 3.0, snap.MeanSpeed, 1e-9)
	assert.Equal(t, f.Boids(), snap.Boids)

	snap.Boids[0].Pos.X = 42
	assert.InDelta(t, 0.1, f.Boid(0).Pos.X, 1e-9, "snapshot must not alias the flock")
}
