package flock

import "github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"

// flocking sums cohesion, separation and alignment over every neighbor the
// i-th boid can see. Brute force, every pair is tested.
func (f *Flock) flocking(i int) geometry.Vector2D {
	me := f.boids[i]
	flockRadiusSq := f.cfg.FlockRadius * f.cfg.FlockRadius

	var accel geometry.Vector2D
	for j, other := range f.boids {
		// coincident boids have no direction to steer along
		if j == i || other.Pos == me.Pos {
			continue
		}
		dist := other.Pos.Sub(me.Pos)
		if !f.sees(me, dist) || dist.LenSqr() > flockRadiusSq {
			continue
		}

		// Cohesion & separation: head for the neighbor but stop CrowdRadius short.
		accel = accel.Add(dist.Sub(dist.ScaleTo(f.cfg.CrowdRadius)).Mul(f.cfg.AccelFactor))
		// Alignment
		accel = accel.Add(other.Vel.Sub(me.Vel).Mul(f.cfg.AlignFactor))
	}
	return accel
}

// sees reports whether dist lies inside the vision cone around me's heading.
// A boid standing still has no heading and sees in every direction.
func (f *Flock) sees(me Boid, dist geometry.Vector2D) bool {
	return me.Vel.AngleBetween(dist) <= f.cfg.VisionAngle
}

// keepVelocity pulls the speed toward AloneVel without changing direction.
// A zero velocity has no direction, so no pull is applied.
func keepVelocity(me Boid, cfg Config) geometry.Vector2D {
	if me.Vel.IsZero() {
		return geometry.Vector2D{}
	}
	return me.Vel.ScaleTo(cfg.AloneVel).Sub(me.Vel).Mul(cfg.KeepVelFactor)
}

// steerToScreen nudges each axis back into [0, 1] with a constant unit push.
func steerToScreen(pos geometry.Vector2D) geometry.Vector2D {
	return geometry.Vector2D{X: towardsUnit(pos.X), Y: towardsUnit(pos.Y)}
}

func towardsUnit(x float64) float64 {
	switch {
	case x < 0:
		return 1
	case x > 1:
		return -1
	default:
		return 0
	}
}
