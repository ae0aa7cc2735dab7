package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
)

// FlockActor owns the flock. All mutation happens inside Receive, one message
// at a time, so the flock never sees two ticks at once.
//
// Messages:
//   - *durationpb.Duration: advance the flock by that elapsed time, then publish a snapshot
//   - *emptypb.Empty: publish a snapshot without advancing
type FlockActor struct {
	sim        Simulation
	snapshotCh chan<- *Snapshot
	ticks      uint64

	// --- Rate Stats ---
	ticksSinceLog int
	lastLogTime   time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the actor around sim. Snapshots are offered to
// snapshotCh without blocking; a full channel drops the frame.
func NewFlockActor(sim Simulation, snapshotCh chan<- *Snapshot) *FlockActor {
	return &FlockActor{
		sim:         sim,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (a *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock of %d boids is ready", a.sim.Config().BoidCount)
	return nil
}

func (a *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("%s started", ctx.Self().Name())

	case *durationpb.Duration:
		a.sim.Tick(msg.AsDuration().Seconds())
		a.ticks++
		a.ticksSinceLog++
		a.logTickRate(ctx)
		a.pushSnapshot()

	case *emptypb.Empty:
		a.pushSnapshot()

	default:
		ctx.Unhandled()
	}
}

func (a *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock stopped after %d ticks", a.ticks)
	return nil
}

func (a *FlockActor) logTickRate(ctx *actor.ReceiveContext) {
	if time.Since(a.lastLogTime) >= time.Second {
		ctx.Logger().Debugf("TICK RATE: %d/sec | total: %d", a.ticksSinceLog, a.ticks)
		a.ticksSinceLog = 0
		a.lastLogTime = time.Now()
	}
}

func (a *FlockActor) pushSnapshot() {
	select {
	case a.snapshotCh <- buildSnapshot(a.ticks, a.sim):
	default:
		// renderer busy, skip frame
	}
}
