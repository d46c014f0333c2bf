// Package algo implements grid-based cooperative path planning: static and
// space-time A*, and the fixed-priority and windowed CA* coordination
// strategies built on top of them.
package algo

import (
	"sort"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

// Planner is the common interface across the three coordination strategies
// (§4.4, §4.5, §4.6). Solve returns one timed path per agent, in the same
// order as the input slice.
type Planner interface {
	// Solve plans a timed path for every agent on grid. The returned slice
	// has exactly len(agents) entries; a nil entry (or empty TimedPath)
	// means that agent had no feasible path under this strategy's
	// reporting convention (§7).
	Solve(agents []*core.Agent, grid *core.Grid) ([]core.TimedPath, error)

	// Name identifies the strategy for logging and metrics labels.
	Name() string
}

// Conflict represents a collision between two agents' timed paths: either
// both occupying the same cell at the same time step, or swapping cells
// across one step.
type Conflict struct {
	AgentA, AgentB core.AgentID
	Cell           core.Cell
	T              int
	IsSwap         bool
	SwapFrom       core.Cell
	SwapTo         core.Cell
}

// positionAt returns the agent's cell at time t, holding at the path's last
// cell once t exceeds the path's length — mirroring the tail-reservation
// rule paths are planned under (§3).
func positionAt(path core.TimedPath, t int) (core.Cell, bool) {
	if len(path) == 0 {
		return core.Cell{}, false
	}
	if t <= path[0].T {
		return path[0].Cell(), true
	}
	last := path[len(path)-1]
	if t >= last.T {
		return last.Cell(), true
	}
	for _, tc := range path {
		if tc.T == t {
			return tc.Cell(), true
		}
	}
	return core.Cell{}, false
}

func sortedAgentIndices(paths []core.TimedPath) []int {
	idx := make([]int, len(paths))
	for i := range paths {
		idx[i] = i
	}
	sort.Ints(idx)
	return idx
}

func maxHorizon(paths []core.TimedPath) int {
	horizon := 0
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		if last := p[len(p)-1].T; last > horizon {
			horizon = last
		}
	}
	return horizon
}

// FindFirstConflict scans paths (indexed by agent ID, as returned by a
// Planner) for a collision. Vertex collisions are checked first, over the
// whole horizon: it returns the earliest vertex collision if there is one,
// and otherwise the earliest swap collision. It is a verification
// tool for tests and diagnostics — the planners themselves are expected to
// produce conflict-free output by construction.
func FindFirstConflict(paths []core.TimedPath) *Conflict {
	agents := sortedAgentIndices(paths)
	horizon := maxHorizon(paths)

	for t := 0; t <= horizon; t++ {
		for i := 0; i < len(agents); i++ {
			for j := i + 1; j < len(agents); j++ {
				a, b := agents[i], agents[j]
				posA, okA := positionAt(paths[a], t)
				posB, okB := positionAt(paths[b], t)
				if okA && okB && posA == posB {
					return &Conflict{AgentA: core.AgentID(a), AgentB: core.AgentID(b), Cell: posA, T: t}
				}
			}
		}
	}

	for t := 0; t < horizon; t++ {
		for i := 0; i < len(agents); i++ {
			for j := i + 1; j < len(agents); j++ {
				a, b := agents[i], agents[j]
				aStart, okAS := positionAt(paths[a], t)
				aEnd, okAE := positionAt(paths[a], t+1)
				bStart, okBS := positionAt(paths[b], t)
				bEnd, okBE := positionAt(paths[b], t+1)
				if okAS && okAE && okBS && okBE && aStart == bEnd && aEnd == bStart && aStart != aEnd {
					return &Conflict{
						AgentA: core.AgentID(a), AgentB: core.AgentID(b),
						T: t, IsSwap: true, SwapFrom: aStart, SwapTo: aEnd,
					}
				}
			}
		}
	}

	return nil
}

// FindAllConflicts is FindFirstConflict's exhaustive counterpart, used by
// tests that want to assert a solution has zero collisions of any kind.
func FindAllConflicts(paths []core.TimedPath) []*Conflict {
	var conflicts []*Conflict
	agents := sortedAgentIndices(paths)
	horizon := maxHorizon(paths)

	for t := 0; t <= horizon; t++ {
		for i := 0; i < len(agents); i++ {
			for j := i + 1; j < len(agents); j++ {
				a, b := agents[i], agents[j]
				posA, okA := positionAt(paths[a], t)
				posB, okB := positionAt(paths[b], t)
				if okA && okB && posA == posB {
					conflicts = append(conflicts, &Conflict{AgentA: core.AgentID(a), AgentB: core.AgentID(b), Cell: posA, T: t})
				}
			}
		}
	}

	for t := 0; t < horizon; t++ {
		for i := 0; i < len(agents); i++ {
			for j := i + 1; j < len(agents); j++ {
				a, b := agents[i], agents[j]
				aStart, okAS := positionAt(paths[a], t)
				aEnd, okAE := positionAt(paths[a], t+1)
				bStart, okBS := positionAt(paths[b], t)
				bEnd, okBE := positionAt(paths[b], t+1)
				if okAS && okAE && okBS && okBE && aStart == bEnd && aEnd == bStart && aStart != aEnd {
					conflicts = append(conflicts, &Conflict{
						AgentA: core.AgentID(a), AgentB: core.AgentID(b),
						T: t, IsSwap: true, SwapFrom: aStart, SwapTo: aEnd,
					})
				}
			}
		}
	}

	return conflicts
}
