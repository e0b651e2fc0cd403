package town

import (
	"sync"
	"sync/atomic"

	"github.com/grapevine-sim/grapevine/internal/domain"
)

// Clock keeps the simulation calendar and hands out the global monotonic
// event counter. Each day has two timesteps, day and night.
type Clock struct {
	mu      sync.RWMutex
	current domain.SimTime
	events  atomic.Uint64
}

func NewClock(startDate int) *Clock {
	return &Clock{current: domain.SimTime{OrdinalDate: startDate, Part: domain.Day}}
}

func (c *Clock) Now() domain.SimTime {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// NextEventNumber returns a strictly increasing counter. Two pieces of
// evidence never share a number, even within one timestep.
func (c *Clock) NextEventNumber() uint64 {
	return c.events.Add(1)
}

// Advance moves to the next timestep: day becomes night, night rolls over
// to the next day.
func (c *Clock) Advance() domain.SimTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.Part == domain.Day {
		c.current.Part = domain.Night
	} else {
		c.current.OrdinalDate++
		c.current.Part = domain.Day
	}
	return c.current
}
