package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

// stState is a (cell, time) pair — the state space of space-time A*.
type stState struct {
	cell core.Cell
	t    int
}

type stNode struct {
	state  stState
	g      float64
	f      float64
	seq    int
	parent *stNode
	index  int
}

type stHeap []*stNode

func (h stHeap) Len() int { return len(h) }
func (h stHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h stHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *stHeap) Push(x any) {
	n := x.(*stNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *stHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// stTransitionCost implements the space-time cost model of §4.2: waiting
// costs 1, a turn-penalised straight continuation costs 2, any other
// 4-adjacent move costs 3, and the defensive diagonal branch costs 4.
func stTransitionCost(prev, current, next core.Cell, penaliseTurns, hasPrev, isWait bool) float64 {
	if isWait {
		return 1
	}
	if penaliseTurns && hasPrev && prev != current && continuesAxis(prev, current, next) {
		return 2
	}
	if current.Adjacent(next) {
		return 3
	}
	return 4
}

// SpaceTimeAStar finds a minimum-cost timed path from start to goal on
// grid, avoiding static obstacles and every reservation held by another
// agent, per §4.2. It first confirms a static path exists (§4.1) to avoid
// unbounded search against an impossible layout; if none exists it
// returns nil immediately.
//
// The returned path always starts at (start, 0); the goal test matches on
// (row, col) only, so the search ends the first time the goal cell is
// reached at any time stamp. maxTime bounds the search horizon — the
// search gives up (returns nil) if it would need to look beyond it.
func SpaceTimeAStar(
	grid *core.Grid,
	reservations *ReservationTable,
	agent core.AgentID,
	start, goal core.Cell,
	h Heuristic,
	penaliseTurns bool,
	maxTime int,
) core.TimedPath {
	if StaticAStar(grid, start, goal, h, penaliseTurns) == nil {
		return nil
	}

	open := &stHeap{}
	heap.Init(open)

	seq := 0
	startState := stState{cell: start, t: 0}
	best := map[stState]float64{startState: 0}
	heap.Push(open, &stNode{state: startState, g: 0, f: h(start, goal), seq: seq})
	seq++

	closed := make(map[stState]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*stNode)

		if current.state.cell == goal {
			return reconstructTimedPath(current)
		}
		if closed[current.state] {
			continue
		}
		closed[current.state] = true
		if current.state.t >= maxTime {
			continue
		}

		var prevCell core.Cell
		hasPrev := current.parent != nil
		if hasPrev {
			prevCell = current.parent.state.cell
		}

		nextT := current.state.t + 1
		neighbors := grid.OpenNeighbors4(current.state.cell)

		// Wait option: only meaningful when at least one spatial neighbour
		// is blocked by a reservation at nextT — unconditional waits would
		// explode the state space and let agents idle against static
		// obstacles (§4.2 item 2).
		blockedNeighborExists := false
		for _, n := range neighbors {
			if reservations.isReservedByOther(core.TimedCell{Row: n.Row, Col: n.Col, T: nextT}, agent) {
				blockedNeighborExists = true
				break
			}
		}
		if blockedNeighborExists {
			waitState := stState{cell: current.state.cell, t: nextT}
			waitTC := core.TimedCell{Row: current.state.cell.Row, Col: current.state.cell.Col, T: nextT}
			if !closed[waitState] && !reservations.isReservedByOther(waitTC, agent) {
				pushIfBetter(open, best, &seq, waitState, current, current.g+stTransitionCost(prevCell, current.state.cell, current.state.cell, penaliseTurns, hasPrev, true), h(current.state.cell, goal))
			}
		}

		for _, n := range neighbors {
			nTC := core.TimedCell{Row: n.Row, Col: n.Col, T: nextT}
			if reservations.isReservedByOther(nTC, agent) {
				continue
			}
			if reservations.willSwap(current.state.cell, n, current.state.t) {
				continue
			}
			nState := stState{cell: n, t: nextT}
			if closed[nState] {
				continue
			}
			cost := stTransitionCost(prevCell, current.state.cell, n, penaliseTurns, hasPrev, false)
			pushIfBetter(open, best, &seq, nState, current, current.g+cost, h(n, goal))
		}
	}

	return nil
}

func pushIfBetter(open *stHeap, best map[stState]float64, seq *int, state stState, parent *stNode, g, hv float64) {
	if prior, seen := best[state]; seen && g >= prior {
		return
	}
	best[state] = g
	heap.Push(open, &stNode{state: state, g: g, f: g + hv, parent: parent, seq: *seq})
	*seq++
}

func reconstructTimedPath(node *stNode) core.TimedPath {
	var path core.TimedPath
	for n := node; n != nil; n = n.parent {
		tc := core.TimedCell{Row: n.state.cell.Row, Col: n.state.cell.Col, T: n.state.t}
		path = append(core.TimedPath{tc}, path...)
	}
	return path
}
