// Command mapfplan is the demo/benchmark CLI for the cooperative grid
// planner: "solve" runs a single scenario through one coordination
// strategy, "bench" sweeps all three strategies over a directory of
// scenarios while exposing a pull-style Prometheus /metrics endpoint.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/algo"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/config"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/logging"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/scenario"
)

var cli struct {
	Solve SolveCmd `cmd:"" help:"Plan one scenario with a single coordination strategy."`
	Bench BenchCmd `cmd:"" help:"Benchmark all three coordination strategies over a directory of scenarios."`
}

func main() {
	ktx := kong.Parse(&cli,
		kong.Name("mapfplan"),
		kong.Description("Plan and benchmark collision-free multi-agent routes over a grid."),
		kong.UsageOnError(),
	)
	if err := ktx.Run(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// SolveCmd plans a single scenario through one configured strategy,
// generalised from the teacher's cmd/mapfhet demo runner (a fixed,
// hardcoded instance) to a configurable one driven by scenario/config
// files.
type SolveCmd struct {
	Scenario string `arg:"" help:"Path to a scenario JSON file." type:"path"`
	Config   string `name:"config" help:"Path to a YAML planner config file (optional)." type:"path"`
	Strategy string `name:"strategy" default:"" help:"Override the configured strategy: fixed_priority, windowed_v1, windowed_v2."`
	Verbose  bool   `name:"verbose" help:"Enable debug logging."`
}

func (s *SolveCmd) Run() error {
	level := log.InfoLevel
	if s.Verbose {
		level = log.DebugLevel
	}
	logger := logging.New(level)
	runID := logging.NewRunID()

	cfg, err := config.Load(s.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if s.Strategy != "" {
		cfg.Strategy = s.Strategy
	}

	sc, err := scenario.Load(s.Scenario)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	grid, agents, err := sc.ToCore()
	if err != nil {
		return fmt.Errorf("converting scenario: %w", err)
	}

	planner, err := buildPlanner(cfg)
	if err != nil {
		return fmt.Errorf("building planner: %w", err)
	}

	logger.Info("planning", "run_id", runID, "scenario", sc.Name, "strategy", planner.Name(), "agents", len(agents))

	paths, err := planner.Solve(agents, grid)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	for i, path := range paths {
		if len(path) == 0 {
			fmt.Printf("agent %d: unreachable\n", agents[i].ID)
			continue
		}
		fmt.Printf("agent %d: %d steps, ends at %s\n", agents[i].ID, len(path)-1, path[len(path)-1].Cell())
	}

	if conflict := algo.FindFirstConflict(paths); conflict != nil {
		logger.Warn("solution has a collision", "run_id", runID, "agent_a", conflict.AgentA, "agent_b", conflict.AgentB, "t", conflict.T)
		return fmt.Errorf("mapfplan: %s produced a collision between agents %d and %d at t=%d", planner.Name(), conflict.AgentA, conflict.AgentB, conflict.T)
	}
	return nil
}

func buildPlanner(cfg config.PlannerConfig) (algo.Planner, error) {
	heuristic, err := algo.ParseHeuristicKind(cfg.Heuristic)
	if err != nil {
		return nil, err
	}

	switch cfg.Strategy {
	case "", "fixed_priority":
		return algo.NewFixedPriority(heuristic, cfg.PenaliseTurns, cfg.MaxTime), nil
	case "windowed_v1":
		reprioritisation, err := algo.ParseReprioritisation(cfg.Reprioritisation)
		if err != nil {
			return nil, err
		}
		p := algo.NewWindowedV1(heuristic, cfg.PenaliseTurns, cfg.WindowSize, reprioritisation, cfg.MaxTime)
		p.Seed = cfg.Seed
		return p, nil
	case "windowed_v2":
		return algo.NewWindowedV2(heuristic, cfg.PenaliseTurns, cfg.WindowSize, cfg.MaxTime), nil
	default:
		return nil, fmt.Errorf("mapfplan: unknown strategy %q", cfg.Strategy)
	}
}

// BenchCmd sweeps every coordination strategy over a directory of
// scenarios, reporting per-strategy timing statistics and serving a
// Prometheus /metrics endpoint for the duration of the sweep — a
// pull-style alternative to the teacher-adjacent o11y example's
// push-gateway pattern, appropriate for a CLI rather than a long-lived
// service.
type BenchCmd struct {
	InputDir    string `name:"input" default:"testdata" help:"Directory containing scenario JSON files."`
	OutputCSV   string `name:"output" default:"evidence/benchmark_results.csv" help:"Output CSV file."`
	WindowSize  int    `name:"window-size" default:"10" help:"Window size for the windowed strategies."`
	MaxTime     int    `name:"max-time" default:"500" help:"Space-time A* search horizon per planning call."`
	MetricsAddr string `name:"metrics-addr" default:":9090" help:"Address to serve Prometheus /metrics on for the duration of the sweep."`
	Verbose     bool   `name:"verbose" help:"Print per-run results as they complete."`
}

type benchResult struct {
	Scenario  string
	Strategy  string
	NumAgents int
	RuntimeMs float64
	Success   bool
	Makespan  int
}

func (b *BenchCmd) Run() error {
	logger := logging.New(log.InfoLevel)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: b.MetricsAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server", "error", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()
	logger.Info("serving metrics", "addr", b.MetricsAddr, "path", "/metrics")

	pattern := filepath.Join(b.InputDir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing scenario files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no scenario files found in %s", b.InputDir)
	}

	if err := os.MkdirAll(filepath.Dir(b.OutputCSV), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var results []benchResult
	for _, file := range files {
		sc, err := scenario.Load(file)
		if err != nil {
			logger.Error("loading scenario", "file", file, "error", err)
			continue
		}
		grid, agents, err := sc.ToCore()
		if err != nil {
			logger.Error("converting scenario", "file", file, "error", err)
			continue
		}

		for _, planner := range strategies(b.WindowSize, b.MaxTime) {
			result := runOne(sc.Name, planner, grid, cloneAgents(agents))
			results = append(results, result)
			if b.Verbose {
				logger.Info("run complete",
					"scenario", result.Scenario, "strategy", result.Strategy,
					"success", result.Success, "runtime_ms", result.RuntimeMs, "makespan", result.Makespan)
			}
		}
	}

	if err := writeCSV(results, b.OutputCSV); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	logger.Info("results written", "path", b.OutputCSV)

	printSummary(results)
	return nil
}

func strategies(windowSize, maxTime int) []algo.Planner {
	return []algo.Planner{
		algo.NewFixedPriority(algo.Manhattan, true, maxTime),
		algo.NewWindowedV1(algo.Manhattan, true, windowSize, algo.RoundRobin, maxTime),
		algo.NewWindowedV2(algo.Manhattan, true, windowSize, maxTime),
	}
}

// cloneAgents returns a fresh copy of agents so that each strategy in the
// same scenario plans against agents with CurrentStart reset to Start,
// independent of what a previous strategy's run left behind.
func cloneAgents(agents []*core.Agent) []*core.Agent {
	cloned := make([]*core.Agent, len(agents))
	for i, a := range agents {
		cloned[i] = core.NewAgent(a.ID, a.Start, a.Goal, a.HorizontalLimit, a.VerticalLimit)
	}
	return cloned
}

func runOne(scenarioName string, planner algo.Planner, grid *core.Grid, agents []*core.Agent) benchResult {
	result := benchResult{Scenario: scenarioName, Strategy: planner.Name(), NumAgents: len(agents)}

	started := time.Now()
	paths, err := planner.Solve(agents, grid)
	result.RuntimeMs = float64(time.Since(started).Microseconds()) / 1000.0

	if err != nil {
		return result
	}

	success := true
	makespan := 0
	for _, p := range paths {
		if len(p) == 0 {
			success = false
			continue
		}
		if last := p[len(p)-1].T; last > makespan {
			makespan = last
		}
	}
	result.Success = success
	result.Makespan = makespan
	return result
}

func writeCSV(results []benchResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"scenario", "strategy", "num_agents", "runtime_ms", "success", "makespan"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Scenario, r.Strategy, fmt.Sprintf("%d", r.NumAgents),
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%t", r.Success), fmt.Sprintf("%d", r.Makespan),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// printSummary aggregates runtime statistics per strategy using
// montanaflynn/stats, rather than hand-rolled mean/stddev arithmetic.
func printSummary(results []benchResult) {
	byStrategy := make(map[string][]float64)
	successes := make(map[string]int)
	total := make(map[string]int)

	for _, r := range results {
		byStrategy[r.Strategy] = append(byStrategy[r.Strategy], r.RuntimeMs)
		total[r.Strategy]++
		if r.Success {
			successes[r.Strategy]++
		}
	}

	var names []string
	for name := range byStrategy {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-28s %6s %8s %10s %10s %10s\n", "Strategy", "Runs", "Success", "MeanMs", "P90Ms", "StdDevMs")
	fmt.Println(strings.Repeat("-", 78))

	for _, name := range names {
		samples := byStrategy[name]
		mean, _ := stats.Mean(samples)
		p90, _ := stats.Percentile(samples, 90)
		stddev, _ := stats.StandardDeviation(samples)
		fmt.Printf("%-28s %6d %7d%% %10.3f %10.3f %10.3f\n",
			name, total[name], successes[name]*100/total[name], mean, p90, stddev)
	}
}
