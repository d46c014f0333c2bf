package algo

import (
	"time"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

// FixedPriority implements §4.4: agents are planned in the order given
// (lower index = higher priority); each subsequent agent plans a
// space-time path around every higher-priority agent's entire reserved
// path, including a tail reservation of each finished agent's resting
// cell through MaxTime. There are no windows — the effective horizon is
// MaxTime, a generous bound on the longest path any single agent could
// need.
type FixedPriority struct {
	Heuristic     HeuristicKind
	PenaliseTurns bool
	MaxTime       int
}

// NewFixedPriority returns a FixedPriority planner with the given
// heuristic/turn-penalty settings and a search horizon of maxTime steps.
func NewFixedPriority(h HeuristicKind, penaliseTurns bool, maxTime int) *FixedPriority {
	return &FixedPriority{Heuristic: h, PenaliseTurns: penaliseTurns, MaxTime: maxTime}
}

// Name identifies the strategy for logging and metrics labels.
func (p *FixedPriority) Name() string { return "fixed-priority-ca-star" }

// Solve plans one timed path per agent, in input order, against an
// accumulating reservation table. An agent with no feasible timed path
// contributes an empty path to the result (§7: unreachability is reported
// per-agent, not raised) — fixed-priority CA* never hard-fails.
func (p *FixedPriority) Solve(agents []*core.Agent, grid *core.Grid) ([]core.TimedPath, error) {
	if len(agents) == 0 {
		return nil, newConfigError("fixed-priority CA* requires at least one agent")
	}

	h := p.Heuristic.Resolve()
	reservations := NewReservationTable()
	paths := make([]core.TimedPath, len(agents))

	start := time.Now()
	for i, agent := range agents {
		plan := SpaceTimeAStar(grid, reservations, agent.ID, agent.Start, agent.Goal, h, p.PenaliseTurns, p.MaxTime)
		paths[i] = plan
		if len(plan) == 0 {
			continue
		}
		// Reserve the full path, then tail-reserve the resting cell
		// through MaxTime so every lower-priority agent planned after
		// this one treats it as occupying its final cell for the rest of
		// the shared horizon (§3's tail-reservation rule, generalised
		// here to the fixed-priority strategy's single shared horizon).
		reservations.CommitPath(agent.ID, plan, p.MaxTime)
	}
	recordPlanMetrics(p.Name(), time.Since(start), len(agents))

	return paths, nil
}
