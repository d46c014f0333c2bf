package algo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/algo"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

func TestManhattanHeuristic(t *testing.T) {
	require.Equal(t, 0.0, algo.ManhattanHeuristic(core.Cell{Row: 1, Col: 1}, core.Cell{Row: 1, Col: 1}))
	require.Equal(t, 7.0, algo.ManhattanHeuristic(core.Cell{Row: 0, Col: 0}, core.Cell{Row: 3, Col: 4}))
	require.Equal(t, 7.0, algo.ManhattanHeuristic(core.Cell{Row: 3, Col: 4}, core.Cell{Row: 0, Col: 0}))
}

func TestEuclideanHeuristic(t *testing.T) {
	require.Equal(t, 5.0, algo.EuclideanHeuristic(core.Cell{Row: 0, Col: 0}, core.Cell{Row: 3, Col: 4}))
}

func TestHeuristicKind_StringAndResolve(t *testing.T) {
	require.Equal(t, "manhattan", algo.Manhattan.String())
	require.Equal(t, "euclidean", algo.Euclidean.String())

	require.Equal(t, algo.ManhattanHeuristic(core.Cell{Row: 0, Col: 0}, core.Cell{Row: 1, Col: 1}),
		algo.Manhattan.Resolve()(core.Cell{Row: 0, Col: 0}, core.Cell{Row: 1, Col: 1}))
	require.Equal(t, algo.EuclideanHeuristic(core.Cell{Row: 0, Col: 0}, core.Cell{Row: 1, Col: 1}),
		algo.Euclidean.Resolve()(core.Cell{Row: 0, Col: 0}, core.Cell{Row: 1, Col: 1}))
}

func TestParseHeuristicKind(t *testing.T) {
	k, err := algo.ParseHeuristicKind("manhattan")
	require.NoError(t, err)
	require.Equal(t, algo.Manhattan, k)

	k, err = algo.ParseHeuristicKind("")
	require.NoError(t, err)
	require.Equal(t, algo.Manhattan, k)

	k, err = algo.ParseHeuristicKind("euclidean")
	require.NoError(t, err)
	require.Equal(t, algo.Euclidean, k)

	_, err = algo.ParseHeuristicKind("bogus")
	require.Error(t, err)
}
