package algo

import "github.com/elektrokombinacija/mapf-grid-planner/internal/core"

// ReservationTable maps a timed cell to the agent index that has claimed
// it (§3). It is scoped to a single planning call (fixed-priority CA*) or
// to a single window (windowed variants); it is freshly created each
// window and never shared across goroutines (§5).
type ReservationTable struct {
	byCell map[core.TimedCell]core.AgentID
}

// NewReservationTable returns an empty table.
func NewReservationTable() *ReservationTable {
	return &ReservationTable{byCell: make(map[core.TimedCell]core.AgentID)}
}

// Owner returns the agent holding tc, if any.
func (rt *ReservationTable) Owner(tc core.TimedCell) (core.AgentID, bool) {
	id, ok := rt.byCell[tc]
	return id, ok
}

// isReservedByOther reports whether tc is reserved by someone other than
// agent.
func (rt *ReservationTable) isReservedByOther(tc core.TimedCell, agent core.AgentID) bool {
	owner, ok := rt.byCell[tc]
	return ok && owner != agent
}

// Reserve claims tc for agent. A cell may be reserved by at most one agent
// at a time (§3 invariant 1); the caller is responsible for not reserving
// a cell twice for different agents. Reserve overwrites any existing owner.
// The planners write through CommitPath below, through windowed CA* v2's
// reserveFullPlan, and, in windowed CA* v1, through direct Reserve calls.
func (rt *ReservationTable) Reserve(tc core.TimedCell, agent core.AgentID) {
	rt.byCell[tc] = agent
}

// willSwap reports whether moving agent from 'from' at time t to 'to' at
// time t+1 would cross paths with another agent moving from 'to' to
// 'from' over the same edge — the swap collision forbidden by §3 and
// checked at neighbour-expansion time in §4.2.
func (rt *ReservationTable) willSwap(from, to core.Cell, t int) bool {
	forward, fOK := rt.byCell[core.TimedCell{Row: to.Row, Col: to.Col, T: t}]
	backward, bOK := rt.byCell[core.TimedCell{Row: from.Row, Col: from.Col, T: t + 1}]
	return fOK && bOK && forward == backward
}

// CommitPath records plan into the table for the given agent through
// horizon (inclusive), following the discipline of §4.3:
//
//  1. Insert every timed cell of the plan up through the window horizon
//     or the plan's end, whichever is earlier.
//  2. If the plan ends before the horizon at (r,c,tEnd), insert tail
//     entries (r,c,t) -> agent for t in (tEnd, horizon] — the tail
//     reservation that keeps later-scheduled agents out of a finished
//     agent's resting cell (§3, §4.6 item 4).
//
// It returns the window slice to append to the agent's accumulated
// output: the plan trimmed to the horizon, with its final entry dropped
// (since that cell becomes the start of the next window and must not be
// duplicated — §4.3). Reservations are always recorded before this trim.
func (rt *ReservationTable) CommitPath(agent core.AgentID, plan core.TimedPath, horizon int) core.TimedPath {
	if len(plan) == 0 {
		return nil
	}

	cut := len(plan)
	for i, tc := range plan {
		if tc.T > horizon {
			cut = i
			break
		}
		rt.Reserve(tc, agent)
	}
	windowed := plan[:cut]

	last := windowed[len(windowed)-1]
	if last.T < horizon {
		for t := last.T + 1; t <= horizon; t++ {
			rt.Reserve(core.TimedCell{Row: last.Row, Col: last.Col, T: t}, agent)
		}
	}

	if len(windowed) <= 1 {
		return core.TimedPath{}
	}
	return windowed[:len(windowed)-1]
}
