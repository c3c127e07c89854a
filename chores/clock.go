package chores

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// Clock supplies "today". The engine never reads the wall clock itself.
type Clock interface {
	Today() recurrence.Date
}

// SystemClock reads the wall clock in Location (local time when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Today() recurrence.Date {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return recurrence.DateOf(now)
}

// FixedClock always returns the same day.
type FixedClock recurrence.Date

func (c FixedClock) Today() recurrence.Date { return recurrence.Date(c) }

// IDGenerator mints ids for new tasks.
type IDGenerator interface {
	NewID() recurrence.TaskID
}

// UUIDGenerator mints random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() recurrence.TaskID {
	return recurrence.TaskID(uuid.New().String())
}

// SequenceGenerator mints Prefix1, Prefix2, ... for deterministic tests.
type SequenceGenerator struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (g *SequenceGenerator) NewID() recurrence.TaskID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return recurrence.TaskID(g.Prefix + strconv.Itoa(g.n))
}
