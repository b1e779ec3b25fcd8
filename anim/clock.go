package anim

import (
	"earthviewer/libutil"

	"github.com/chewxy/math32"
)

// TickInterval is the animation step in seconds at 1x speed.
const TickInterval = 1.0 / 60.0

type Clock struct {
	Interval float64
	elapsed  float64
}

func NewClock() *Clock {
	return &Clock{Interval: TickInterval}
}

// Update adds dt seconds and ticks the state once per Interval/Speed that has
// passed. At most ceil(Speed) ticks happen per call and the remainder is then
// dropped, so a long stall never replays a burst of ticks. It returns the
// number of ticks performed.
func (c *Clock) Update(dt float64, s *State) int {
	if dt > 0 {
		c.elapsed += dt
	}
	speed := libutil.Clamp(s.Speed, MinSpeed, MaxSpeed)
	step := c.Interval / float64(speed)
	limit := int(math32.Ceil(speed))

	ticks := 0
	for c.elapsed >= step && ticks < limit {
		c.elapsed -= step
		s.Tick()
		ticks++
	}
	if ticks == limit {
		c.elapsed = 0
	}
	return ticks
}
