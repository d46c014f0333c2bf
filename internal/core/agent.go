package core

// AgentID is a stable index into the agent list. Agent indices also define
// the initial fixed-priority ordering: lower index = higher priority.
type AgentID int

// Agent is a single navigating entity. Start and Goal are immutable for the
// lifetime of a planning call; CurrentStart is mutable scratch state used
// by the windowed cooperative planners, advancing window by window (§3,
// §4.5, §4.6). HorizontalLimit/VerticalLimit are carried for display
// purposes only (grounded in the original prototype's Agent class) and are
// never consulted by the planning core.
type Agent struct {
	ID   AgentID
	Start Cell
	Goal  Cell

	// CurrentStart is the agent's start cell for the next planning window.
	// It begins equal to Start and is advanced by the windowed planners as
	// each window's slice is committed.
	CurrentStart Cell

	// HorizontalLimit is consulted by the Move helper below; VerticalLimit
	// is carried but not consulted. Neither is used by any search
	// algorithm.
	HorizontalLimit, VerticalLimit int
}

// NewAgent creates an agent with CurrentStart initialised to start.
func NewAgent(id AgentID, start, goal Cell, horizontalLimit, verticalLimit int) *Agent {
	return &Agent{
		ID:              id,
		Start:           start,
		Goal:            goal,
		CurrentStart:    start,
		HorizontalLimit: horizontalLimit,
		VerticalLimit:   verticalLimit,
	}
}

// direction vectors for Move, named after the original prototype's WASD
// scheme: 'w' = up (+row), 'a' = left (-col), 's' = down (-row), 'd' =
// right (+col).
var directionVectors = map[byte][2]int{
	'w': {1, 0},
	'a': {0, -1},
	's': {-1, 0},
	'd': {0, 1},
}

// Move steps CurrentStart by steps times the direction symbol's unit
// vector. The move is ignored (CurrentStart unchanged) when the resulting
// row is negative or the resulting column is at or past HorizontalLimit;
// a negative column or a row past VerticalLimit is not checked, and no
// clamping is done. It is a display/debugging helper
// carried over from the original single-agent prototype; the planning
// algorithms in internal/algo never call it — they advance CurrentStart
// directly from computed paths.
func (a *Agent) Move(direction byte, steps int) {
	focus, ok := directionVectors[direction]
	if !ok {
		return
	}
	row := a.CurrentStart.Row + focus[0]*steps
	col := a.CurrentStart.Col + focus[1]*steps
	if row < 0 || col >= a.HorizontalLimit {
		return
	}
	a.CurrentStart = Cell{Row: row, Col: col}
}
