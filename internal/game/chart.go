package game

import (
	"sort"
	"time"
)

// Chart holds one queue of not yet spawned notes per lane.
// After Sort each queue is ordered by start time, and the scheduler
// only ever pops the head.
type Chart struct {
	lanes [NumLanes][]*Note

	ShortCount int64
	LongCount  int64
}

func (c *Chart) Push(n *Note) {
	n.Index = int(c.ShortCount + c.LongCount)
	c.lanes[n.Lane] = append(c.lanes[n.Lane], n)
	if n.Kind == Long {
		c.LongCount++
	} else {
		c.ShortCount++
	}
}

// Sort orders every lane by start time, keeping file order on ties.
func (c *Chart) Sort() {
	for l := range c.lanes {
		q := c.lanes[l]
		sort.SliceStable(q, func(i, j int) bool {
			return q[i].Start < q[j].Start
		})
	}
}

func (c *Chart) Peek(l Lane) (*Note, bool) {
	if len(c.lanes[l]) == 0 {
		return nil, false
	}
	return c.lanes[l][0], true
}

// Pop removes the head of a lane. Popping an empty lane is a programming
// error and panics.
func (c *Chart) Pop(l Lane) *Note {
	q := c.lanes[l]
	if len(q) == 0 {
		panic("game: pop from empty lane " + l.String())
	}
	n := q[0]
	q[0] = nil
	c.lanes[l] = q[1:]
	return n
}

func (c *Chart) Len(l Lane) int {
	return len(c.lanes[l])
}

// Remaining is the number of notes not yet spawned across all lanes.
func (c *Chart) Remaining() int {
	total := 0
	for l := range c.lanes {
		total += len(c.lanes[l])
	}
	return total
}

// Notes returns a copy of a lane's queue.
func (c *Chart) Notes(l Lane) []*Note {
	out := make([]*Note, len(c.lanes[l]))
	copy(out, c.lanes[l])
	return out
}

// Last is the latest end time of any queued note.
func (c *Chart) Last() (last time.Duration) {
	for l := range c.lanes {
		for _, n := range c.lanes[l] {
			if n.End > last {
				last = n.End
			}
		}
	}
	return last
}

// Clone copies the chart so a session can drain it without touching the
// original. Notes are copied as well.
func (c *Chart) Clone() *Chart {
	out := &Chart{ShortCount: c.ShortCount, LongCount: c.LongCount}
	for l := range c.lanes {
		out.lanes[l] = make([]*Note, len(c.lanes[l]))
		for i, n := range c.lanes[l] {
			nn := *n
			out.lanes[l][i] = &nn
		}
	}
	return out
}
