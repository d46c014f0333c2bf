// Command gen_instances generates deterministic planning scenarios for the
// benchmark runner, following the same seeded, boxy-obstacle approach as
// the original single-agent grid-environment prototype.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/scenario"
)

var cli struct {
	Seed          int64   `name:"seed" default:"42" help:"PRNG seed for deterministic generation."`
	Width         int     `name:"width" default:"20" help:"Grid width in cells."`
	Height        int     `name:"height" default:"20" help:"Grid height in cells."`
	Agents        int     `name:"agents" default:"8" help:"Number of agents to place."`
	ObstacleProb  float64 `name:"obstacle-prob" default:"0.05" help:"Per-cell probability of seeding a boxy obstacle."`
	CellSideM     float64 `name:"cell-side-m" default:"0.5" help:"Physical side length of a cell, in meters."`
	OutputDir     string  `name:"output" default:"testdata" help:"Directory to write the scenario JSON file into."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("gen_instances"),
		kong.Description("Generate a deterministic grid-planning scenario."),
		kong.UsageOnError(),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	if err := os.MkdirAll(cli.OutputDir, 0o755); err != nil {
		logger.Fatal("creating output directory", "error", err)
	}

	rng := rand.New(rand.NewSource(cli.Seed))

	grid, err := generateGrid(rng, cli.Height, cli.Width, cli.ObstacleProb, cli.CellSideM)
	if err != nil {
		logger.Fatal("generating grid", "error", err)
	}

	agents, err := placeAgents(rng, grid, cli.Agents)
	if err != nil {
		logger.Fatal("placing agents", "error", err)
	}

	name := fmt.Sprintf("scenario_%dx%d_%da_%d", cli.Height, cli.Width, cli.Agents, cli.Seed)
	sc := scenario.FromCore(name, cli.Seed, grid, agents)

	path := filepath.Join(cli.OutputDir, name+".json")
	if err := sc.Save(path); err != nil {
		logger.Fatal("writing scenario", "error", err)
	}

	logger.Info("generated scenario", "path", path, "agents", len(agents), "grid", fmt.Sprintf("%dx%d", cli.Height, cli.Width))
}

// generateGrid seeds boxy rectangular obstacles at random, mirroring the
// original BasicGridEnvironment.generate_random_grid: at each still-free
// cell, with probability p, grow a rectangular obstacle of random extent
// down and to the right.
func generateGrid(rng *rand.Rand, height, width int, p float64, cellSideM float64) (*core.Grid, error) {
	rows := make([][]core.CellStatus, height)
	for r := range rows {
		rows[r] = make([]core.CellStatus, width)
	}

	minSpan := maxInt(1, height/10)
	maxSpanBound := maxInt(minSpan+1, height/5)

	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			if rows[i][j] == core.PermanentObstacle {
				continue
			}
			if rng.Float64() >= p {
				continue
			}
			rowSpan := minSpan + rng.Intn(maxSpanBound-minSpan)
			colSpan := minSpan + rng.Intn(maxSpanBound-minSpan)
			for k := i; k < i+rowSpan && k < height; k++ {
				for l := j; l < j+colSpan && l < width; l++ {
					rows[k][l] = core.PermanentObstacle
				}
			}
		}
	}

	return core.NewGridFromRows(rows, cellSideM)
}

// placeAgents scatters n agents on distinct free cells, each with an
// independently chosen, distinct free goal cell.
func placeAgents(rng *rand.Rand, grid *core.Grid, n int) ([]*core.Agent, error) {
	free := freeCells(grid)
	if len(free) < n*2 {
		return nil, fmt.Errorf("gen_instances: grid has only %d free cells, need %d for %d agents' starts and goals", len(free), n*2, n)
	}

	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	agents := make([]*core.Agent, n)
	for i := 0; i < n; i++ {
		start := free[2*i]
		goal := free[2*i+1]
		agents[i] = core.NewAgent(core.AgentID(i), start, goal, grid.Width(), grid.Height())
	}
	return agents, nil
}

func freeCells(grid *core.Grid) []core.Cell {
	var free []core.Cell
	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			cell := core.Cell{Row: r, Col: c}
			if grid.IsOpen(cell) {
				free = append(free, cell)
			}
		}
	}
	return free
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
