package algo

import (
	"math/rand"
	"sort"
	"time"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

// WindowedV1 implements §4.5: agents are replanned in rolling windows of
// WindowSize steps, reprioritised at the start of every window, until every
// agent has terminated (reached its goal, or made no forward progress and
// was dropped per §7's deadlock policy).
type WindowedV1 struct {
	Heuristic        HeuristicKind
	PenaliseTurns    bool
	WindowSize       int
	Reprioritisation Reprioritisation
	MaxTime          int

	// Seed drives the PRNG used by the Randomised reprioritisation
	// strategy. The zero value is a valid seed; set it explicitly for
	// reproducible output (§8 item 7).
	Seed int64

	// maxRounds bounds the number of windows attempted before giving up
	// on any still-active agent, guarding against the degenerate
	// WindowSize == 1 case where an agent's next-window start can equal
	// its current position (§8 boundary behaviours) and therefore never
	// change round over round.
	maxRounds int
}

// NewWindowedV1 returns a windowed CA* v1 planner. windowSize must be
// positive; maxTime bounds each window's space-time A* search horizon.
func NewWindowedV1(h HeuristicKind, penaliseTurns bool, windowSize int, reprioritisation Reprioritisation, maxTime int) *WindowedV1 {
	return &WindowedV1{
		Heuristic:        h,
		PenaliseTurns:    penaliseTurns,
		WindowSize:       windowSize,
		Reprioritisation: reprioritisation,
		MaxTime:          maxTime,
		maxRounds:         maxTime + 1,
	}
}

// Name identifies the strategy for logging and metrics labels.
func (p *WindowedV1) Name() string { return "windowed-ca-star-v1" }

// Solve implements the windowed-CA*-v1 loop of §4.5.
func (p *WindowedV1) Solve(agents []*core.Agent, grid *core.Grid) ([]core.TimedPath, error) {
	if len(agents) == 0 {
		return nil, newConfigError("windowed CA* v1 requires at least one agent")
	}
	if p.WindowSize <= 0 {
		return nil, newConfigError("windowed CA* v1 requires a positive window size, got %d", p.WindowSize)
	}

	h := p.Heuristic.Resolve()
	start := time.Now()

	n := len(agents)
	accumulated := make([]core.TimedPath, n)
	terminated := make([]bool, n)
	timeOffset := make([]int, n)
	for _, agent := range agents {
		agent.CurrentStart = agent.Start
	}

	rng := rand.New(rand.NewSource(p.Seed))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	maxRounds := p.maxRounds
	if maxRounds <= 0 {
		maxRounds = p.MaxTime + 1
	}

	for round := 0; round < maxRounds; round++ {
		active := activeIndices(order, terminated)
		if len(active) == 0 {
			break
		}

		active = p.reorder(active, agents, grid, h, rng)
		order = active

		reservations := NewReservationTable()

		for _, idx := range active {
			agent := agents[idx]
			plan := SpaceTimeAStar(grid, reservations, agent.ID, agent.CurrentStart, agent.Goal, h, p.PenaliseTurns, p.MaxTime)

			if len(plan) == 0 {
				terminated[idx] = true
				continue
			}

			if len(plan) >= p.WindowSize {
				horizon := p.WindowSize - 1
				windowSlice := reservations.CommitPath(agent.ID, plan, horizon)
				appendShifted(&accumulated[idx], windowSlice, timeOffset[idx])
				timeOffset[idx] += horizon
				agent.CurrentStart = plan[horizon].Cell()
				continue
			}

			// Plan finishes within this window: reserve it in full,
			// including a tail reservation through the window horizon, and
			// commit the whole (untrimmed) plan to the agent's output —
			// there is no next window for this agent.
			horizon := p.WindowSize - 1
			for _, tcell := range plan {
				reservations.Reserve(tcell, agent.ID)
			}
			last := plan[len(plan)-1]
			for t := last.T + 1; t <= horizon; t++ {
				reservations.Reserve(core.TimedCell{Row: last.Row, Col: last.Col, T: t}, agent.ID)
			}
			appendShifted(&accumulated[idx], plan, timeOffset[idx])
			terminated[idx] = true
		}
	}

	recordPlanMetrics(p.Name(), time.Since(start), n)
	return accumulated, nil
}

// reorder applies the configured reprioritisation strategy to the active
// index set, returning a fresh slice in planning order.
func (p *WindowedV1) reorder(active []int, agents []*core.Agent, grid *core.Grid, h Heuristic, rng *rand.Rand) []int {
	switch p.Reprioritisation {
	case RoundRobin:
		if len(active) <= 1 {
			return active
		}
		rotated := make([]int, len(active))
		copy(rotated, active[1:])
		rotated[len(rotated)-1] = active[0]
		return rotated
	case ShortestAbstractPathFirst:
		ordered := make([]int, len(active))
		copy(ordered, active)
		sort.SliceStable(ordered, func(i, j int) bool {
			return abstractDistance(agents[ordered[i]], grid, h, p.PenaliseTurns) < abstractDistance(agents[ordered[j]], grid, h, p.PenaliseTurns)
		})
		return ordered
	default: // Randomised
		shuffled := make([]int, len(active))
		copy(shuffled, active)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		return shuffled
	}
}

// abstractDistance is the length of the single-agent shortest path from the
// agent's current window start to its goal, ignoring every other agent —
// the reprioritisation key for ShortestAbstractPathFirst. Unreachable
// agents sort last.
func abstractDistance(agent *core.Agent, grid *core.Grid, h Heuristic, penaliseTurns bool) int {
	path := StaticAStar(grid, agent.CurrentStart, agent.Goal, h, penaliseTurns)
	if path == nil {
		return int(^uint(0) >> 1)
	}
	return len(path)
}

// activeIndices returns the subset of order whose agents have not yet
// terminated, preserving relative order.
func activeIndices(order []int, terminated []bool) []int {
	active := make([]int, 0, len(order))
	for _, idx := range order {
		if !terminated[idx] {
			active = append(active, idx)
		}
	}
	return active
}

// appendShifted appends slice to *dst with every timed cell's T shifted by
// offset, preserving global time continuity across windows.
func appendShifted(dst *core.TimedPath, slice core.TimedPath, offset int) {
	for _, tcell := range slice {
		*dst = append(*dst, core.TimedCell{Row: tcell.Row, Col: tcell.Col, T: tcell.T + offset})
	}
}
