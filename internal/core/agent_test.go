package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

func TestNewAgent_InitialisesCurrentStart(t *testing.T) {
	agent := core.NewAgent(0, core.Cell{Row: 1, Col: 1}, core.Cell{Row: 4, Col: 4}, 5, 5)
	require.Equal(t, agent.Start, agent.CurrentStart)
}

func TestAgent_Move(t *testing.T) {
	agent := core.NewAgent(0, core.Cell{Row: 2, Col: 2}, core.Cell{Row: 4, Col: 4}, 5, 5)

	agent.Move('w', 1)
	require.Equal(t, core.Cell{Row: 3, Col: 2}, agent.CurrentStart)

	agent.Move('d', 2)
	require.Equal(t, core.Cell{Row: 3, Col: 4}, agent.CurrentStart)

	agent.Move('x', 1) // unrecognised direction: no-op
	require.Equal(t, core.Cell{Row: 3, Col: 4}, agent.CurrentStart)
}
