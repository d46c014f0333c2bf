package algo

import (
	"sort"
	"time"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

// WindowedV2 implements §4.6: the same rolling-window skeleton as
// WindowedV1, but agents within a window are planned shortest-plan-first
// (front-loading near-completion agents), and the window shrinks adaptively
// when an agent finishes mid-window — with higher-priority agents already
// planned in that same window retroactively trimmed to the smaller
// horizon, so no committed path walks through the finishing agent's
// resting cell past its true horizon.
type WindowedV2 struct {
	Heuristic     HeuristicKind
	PenaliseTurns bool
	WindowSize    int
	MaxTime       int
}

// NewWindowedV2 returns a windowed CA* v2 planner with the given starting
// window size (shrunk adaptively per round) and space-time A* search
// horizon.
func NewWindowedV2(h HeuristicKind, penaliseTurns bool, windowSize, maxTime int) *WindowedV2 {
	return &WindowedV2{Heuristic: h, PenaliseTurns: penaliseTurns, WindowSize: windowSize, MaxTime: maxTime}
}

// Name identifies the strategy for logging and metrics labels.
func (p *WindowedV2) Name() string { return "windowed-ca-star-v2" }

type v2PlannedAgent struct {
	idx  int
	plan core.TimedPath
}

// Solve implements the windowed-CA*-v2 loop of §4.6. Unlike WindowedV1, an
// unreachable agent is a hard failure (§7), not an empty per-agent path.
func (p *WindowedV2) Solve(agents []*core.Agent, grid *core.Grid) ([]core.TimedPath, error) {
	if len(agents) == 0 {
		return nil, newConfigError("windowed CA* v2 requires at least one agent")
	}
	if p.WindowSize <= 0 {
		return nil, newConfigError("windowed CA* v2 requires a positive window size, got %d", p.WindowSize)
	}

	h := p.Heuristic.Resolve()
	start := time.Now()

	n := len(agents)
	accumulated := make([]core.TimedPath, n)
	terminated := make([]bool, n)
	timeOffset := make([]int, n)
	lastPlanLength := make([]int, n)
	for i, agent := range agents {
		agent.CurrentStart = agent.Start
		lastPlanLength[i] = p.WindowSize // first round: no prior length data, so priority falls back to input order
	}

	maxRounds := p.MaxTime + 1

	for round := 0; round < maxRounds; round++ {
		active := make([]int, 0, n)
		for i := range agents {
			if !terminated[i] {
				active = append(active, i)
			}
		}
		if len(active) == 0 {
			break
		}

		sort.SliceStable(active, func(i, j int) bool {
			return lastPlanLength[active[i]] < lastPlanLength[active[j]]
		})

		reservations := NewReservationTable()
		windowSize := p.WindowSize
		plannedThisRound := make([]v2PlannedAgent, 0, len(active))

		for _, idx := range active {
			agent := agents[idx]
			plan := SpaceTimeAStar(grid, reservations, agent.ID, agent.CurrentStart, agent.Goal, h, p.PenaliseTurns, p.MaxTime)
			if len(plan) == 0 {
				return nil, newPlanningError(int(agent.ID), "no feasible space-time path within the current window")
			}

			lastPlanLength[idx] = len(plan)
			if len(plan) < windowSize && len(plan) > 1 {
				windowSize = len(plan)
				recordWindowShrink()
			}

			horizon := windowSize - 1
			reserveFullPlan(reservations, agent.ID, plan, horizon)
			plannedThisRound = append(plannedThisRound, v2PlannedAgent{idx: idx, plan: plan})
		}

		// Finalise every agent planned this round against the smallest
		// window size observed (§4.6 item 3's retroactive trim), now that
		// the round's shrink events are all known.
		horizon := windowSize - 1
		for _, entry := range plannedThisRound {
			agent := agents[entry.idx]
			if len(entry.plan) > windowSize {
				windowSlice := entry.plan[:horizon]
				appendShifted(&accumulated[entry.idx], windowSlice, timeOffset[entry.idx])
				timeOffset[entry.idx] += horizon
				agent.CurrentStart = entry.plan[horizon].Cell()
				continue
			}
			appendShifted(&accumulated[entry.idx], entry.plan, timeOffset[entry.idx])
			terminated[entry.idx] = true
		}
	}

	for i := range agents {
		if !terminated[i] {
			return nil, newPlanningError(int(agents[i].ID), "did not converge within the round budget")
		}
	}

	recordPlanMetrics(p.Name(), time.Since(start), n)
	return accumulated, nil
}

// reserveFullPlan reserves plan's timed cells up through horizon or the
// plan's end, whichever is earlier, then tail-reserves the agent's final
// cell through horizon if the plan ends earlier (§4.3). plan routinely
// extends past horizon — SpaceTimeAStar searches out to p.MaxTime, not the
// window horizon — so cells beyond horizon must never be reserved: the
// agent restarts from a different cell next round and never actually holds
// them, and this table is shared by every agent planned later in the same
// round (§3, §4.6). The horizon used here reflects the window size known
// at the moment this agent was planned; it may be larger than the round's
// eventual final window size, which only affects output trimming, not
// these reservations (a round's reservation table is discarded once the
// round ends).
func reserveFullPlan(rt *ReservationTable, agent core.AgentID, plan core.TimedPath, horizon int) {
	cut := len(plan)
	for i, tcell := range plan {
		if tcell.T > horizon {
			cut = i
			break
		}
		rt.Reserve(tcell, agent)
	}
	windowed := plan[:cut]
	if len(windowed) == 0 {
		return
	}
	last := windowed[len(windowed)-1]
	for t := last.T + 1; t <= horizon; t++ {
		rt.Reserve(core.TimedCell{Row: last.Row, Col: last.Col, T: t}, agent)
	}
}
