package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

// astarNode is a single priority-queue entry for static A*. The heap is
// keyed by (f, seq) so that equal-f entries come out in insertion order —
// the tiebreaker avoids comparing the (irrelevant) payload and keeps
// results deterministic, per spec.md §9.
type astarNode struct {
	cell   core.Cell
	g      float64
	f      float64
	seq    int
	parent *astarNode
	index  int
}

type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// transitionCost implements the static-A* cost model of §4.1: a straight
// continuation costs 1 when turn penalties are active, any other
// 4-adjacent move costs 2, and the defensive (unreachable with 4-connected
// neighbours) diagonal branch costs 3.
func transitionCost(prev, current, next core.Cell, penaliseTurns bool, hasPrev bool) float64 {
	if penaliseTurns && hasPrev && prev != current && continuesAxis(prev, current, next) {
		return 1
	}
	if current.Adjacent(next) {
		return 2
	}
	return 3
}

// continuesAxis reports whether the edge (current -> next) continues the
// same axis as the edge (prev -> current).
func continuesAxis(prev, current, next core.Cell) bool {
	prevDR, prevDC := current.Row-prev.Row, current.Col-prev.Col
	nextDR, nextDC := next.Row-current.Row, next.Col-current.Col
	if prevDR != 0 {
		return nextDR != 0 && sameSign(prevDR, nextDR)
	}
	if prevDC != 0 {
		return nextDC != 0 && sameSign(prevDC, nextDC)
	}
	return false
}

func sameSign(a, b int) bool {
	return (a > 0) == (b > 0)
}

// StaticAStar finds a shortest path from start to goal on grid, avoiding
// obstacles, using best-first search ordered by f = g + h (§4.1). The
// goal test happens on dequeue, not on enqueue, so the queue ordering is
// respected. It returns nil if start or goal is not Free/in-bounds, or if
// no path exists; it returns []core.Cell{start} if start == goal.
func StaticAStar(grid *core.Grid, start, goal core.Cell, h Heuristic, penaliseTurns bool) core.Path {
	if !grid.IsOpen(start) || !grid.IsOpen(goal) {
		return nil
	}
	if start == goal {
		return core.Path{start}
	}

	open := &astarHeap{}
	heap.Init(open)

	seq := 0
	best := map[core.Cell]float64{start: 0}
	startNode := &astarNode{cell: start, g: 0, f: h(start, goal), seq: seq}
	seq++
	heap.Push(open, startNode)

	closed := make(map[core.Cell]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)

		if current.cell == goal {
			return reconstructStaticPath(current)
		}
		if closed[current.cell] {
			continue
		}
		closed[current.cell] = true

		var prevCell core.Cell
		hasPrev := current.parent != nil
		if hasPrev {
			prevCell = current.parent.cell
		}

		for _, n := range grid.OpenNeighbors4(current.cell) {
			if closed[n] {
				continue
			}
			cost := transitionCost(prevCell, current.cell, n, penaliseTurns, hasPrev)
			total := current.g + cost
			if prior, seen := best[n]; seen && total >= prior {
				continue
			}
			best[n] = total
			node := &astarNode{cell: n, g: total, f: total + h(n, goal), parent: current, seq: seq}
			seq++
			heap.Push(open, node)
		}
	}

	return nil
}

func reconstructStaticPath(node *astarNode) core.Path {
	var path core.Path
	for n := node; n != nil; n = n.parent {
		path = append(core.Path{n.cell}, path...)
	}
	return path
}
