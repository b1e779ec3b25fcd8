// Package traj reads and writes precomputed satellite trajectories.
//
// A trajectory file is a comma separated table with a header line followed by
// rows of `name,x,y,z,r,g,b`. Positions are in planet radii, colors in [0,1].
// Consecutive rows sharing a name form one trajectory.
package traj

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

const Header = "name,x,y,z,r,g,b"

// ErrNoData is returned when the trajectory file does not exist.
var ErrNoData = fmt.Errorf("no trajectory data: %w", os.ErrNotExist)

type Position struct {
	Pos   mgl32.Vec3
	Color mgl32.Vec3
}

type Trajectory struct {
	Name      string
	Positions []Position
	// Color of the first sample
	Color mgl32.Vec3
}

func (t *Trajectory) Len() int {
	return len(t.Positions)
}

// Index maps a global frame counter to a sample index in [0, Len()).
func (t *Trajectory) Index(frame int) int {
	n := len(t.Positions)
	if n == 0 {
		return 0
	}
	i := frame % n
	if i < 0 {
		i += n
	}
	return i
}

func (t *Trajectory) At(i int) Position {
	if i < 0 || i >= len(t.Positions) {
		log.Panicf("trajectory %q: sample %d out of range [0,%d)", t.Name, i, len(t.Positions))
	}
	return t.Positions[i]
}

// Period is the length of the longest trajectory, 0 if there are none.
func Period(trajs []Trajectory) int {
	period := 0
	for i := range trajs {
		if n := trajs[i].Len(); n > period {
			period = n
		}
	}
	return period
}

type Summary struct {
	Trajectories int
	Samples      int
	MinLength    int
	MaxLength    int
	Names        []string
}

func Summarize(trajs []Trajectory) Summary {
	s := Summary{Trajectories: len(trajs)}
	for i, t := range trajs {
		n := t.Len()
		s.Samples += n
		if i == 0 || n < s.MinLength {
			s.MinLength = n
		}
		if n > s.MaxLength {
			s.MaxLength = n
		}
		s.Names = append(s.Names, t.Name)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d trajectories, %d samples, length %d..%d", s.Trajectories, s.Samples, s.MinLength, s.MaxLength)
}
