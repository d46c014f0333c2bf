// Package scenario is the on-disk JSON boundary between the planning core
// and its peripheral collaborators: instance generation, benchmarking, and
// the demo CLI all exchange Scenario values, never core.Grid/core.Agent
// directly.
package scenario

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

// CellCoord is a JSON-friendly (row, col) pair.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c CellCoord) toCore() core.Cell { return core.Cell{Row: c.Row, Col: c.Col} }

func fromCoreCell(c core.Cell) CellCoord { return CellCoord{Row: c.Row, Col: c.Col} }

// GridSpec is the JSON encoding of a Grid: row-major symbols, one of
// '.' (free), '#' (permanent obstacle), '+' (temporary obstacle), matching
// the alphabet of the original grid environment.
type GridSpec struct {
	Height    int      `json:"height"`
	Width     int      `json:"width"`
	CellSideM float64  `json:"cell_side_m"`
	Rows      []string `json:"rows"`
}

// AgentSpec is the JSON encoding of a single agent.
type AgentSpec struct {
	ID              int       `json:"id"`
	Start           CellCoord `json:"start"`
	Goal            CellCoord `json:"goal"`
	HorizontalLimit int       `json:"horizontal_limit,omitempty"`
	VerticalLimit   int       `json:"vertical_limit,omitempty"`
}

// Scenario bundles a grid and its agents into a single loadable instance.
type Scenario struct {
	Name      string      `json:"name"`
	Generated string      `json:"generated,omitempty"`
	Seed      int64       `json:"seed"`
	Grid      GridSpec    `json:"grid"`
	Agents    []AgentSpec `json:"agents"`
}

var symbolToStatus = map[byte]core.CellStatus{
	'.': core.Free,
	'#': core.PermanentObstacle,
	'+': core.TemporaryObstacle,
}

// ErrBadSymbol indicates a grid row contains a character outside the
// recognised {'.', '#', '+'} alphabet.
var ErrBadSymbol = errors.New("scenario: grid row contains an unrecognised cell symbol")

// ToCore converts the scenario into the core.Grid and []*core.Agent values
// the planners consume.
func (s *Scenario) ToCore() (*core.Grid, []*core.Agent, error) {
	if len(s.Grid.Rows) != s.Grid.Height {
		return nil, nil, errors.Errorf("scenario: declared height %d but %d rows given", s.Grid.Height, len(s.Grid.Rows))
	}

	statuses := make([][]core.CellStatus, s.Grid.Height)
	for r, row := range s.Grid.Rows {
		if len(row) != s.Grid.Width {
			return nil, nil, errors.Errorf("scenario: row %d has length %d, want %d", r, len(row), s.Grid.Width)
		}
		statuses[r] = make([]core.CellStatus, s.Grid.Width)
		for c := 0; c < s.Grid.Width; c++ {
			status, ok := symbolToStatus[row[c]]
			if !ok {
				return nil, nil, errors.Wrapf(ErrBadSymbol, "row %d col %d: %q", r, c, row[c])
			}
			statuses[r][c] = status
		}
	}

	grid, err := core.NewGridFromRows(statuses, s.Grid.CellSideM)
	if err != nil {
		return nil, nil, err
	}

	agents := make([]*core.Agent, len(s.Agents))
	for i, spec := range s.Agents {
		agents[i] = core.NewAgent(
			core.AgentID(spec.ID),
			spec.Start.toCore(),
			spec.Goal.toCore(),
			spec.HorizontalLimit,
			spec.VerticalLimit,
		)
	}
	return grid, agents, nil
}

// FromCore builds a Scenario from a grid and agent set, for tools that
// generate instances programmatically before writing them to disk.
func FromCore(name string, seed int64, grid *core.Grid, agents []*core.Agent) *Scenario {
	rows := make([]string, grid.Height())
	for r := 0; r < grid.Height(); r++ {
		buf := make([]byte, grid.Width())
		for c := 0; c < grid.Width(); c++ {
			status := grid.StatusAt(core.Cell{Row: r, Col: c})
			buf[c] = status.String()[0]
		}
		rows[r] = string(buf)
	}

	agentSpecs := make([]AgentSpec, len(agents))
	for i, a := range agents {
		agentSpecs[i] = AgentSpec{
			ID:              int(a.ID),
			Start:           fromCoreCell(a.Start),
			Goal:            fromCoreCell(a.Goal),
			HorizontalLimit: a.HorizontalLimit,
			VerticalLimit:   a.VerticalLimit,
		}
	}

	return &Scenario{
		Name:      name,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Seed:      seed,
		Grid: GridSpec{
			Height:    grid.Height(),
			Width:     grid.Width(),
			CellSideM: grid.CellSideM(),
			Rows:      rows,
		},
		Agents: agentSpecs,
	}
}

// Load reads and parses a Scenario from a JSON file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario: reading %s", path)
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "scenario: parsing %s", path)
	}
	return &s, nil
}

// Save writes the scenario to path as indented JSON.
func (s *Scenario) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "scenario: marshaling")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "scenario: writing %s", path)
	}
	return nil
}
