package algo

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error taxonomy per spec.md §7:
//
//   - ConfigError: InvalidConfiguration — unknown reprioritisation tag,
//     negative window size, empty agent list where one is required.
//     Raised to the caller immediately, before any search runs.
//   - PlanningError: Unreachable / Deadlock-no-progress, but only where
//     the spec requires a hard failure (windowed CA* v2, §4.6 item 5).
//     Fixed-priority CA* and windowed CA* v1 report unreachability as an
//     empty per-agent path instead (§7).
//
// Both wrap github.com/pkg/errors so the failure carries a stack trace,
// matching viamrobotics-rdk's direct dependency on pkg/errors for
// diagnosable internal failures.
type ConfigError struct {
	err error
}

func (e *ConfigError) Error() string { return e.err.Error() }
func (e *ConfigError) Unwrap() error { return e.err }

func newConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{err: errors.New(fmt.Sprintf(format, args...))}
}

// PlanningError signals a hard planning failure (§4.6 item 5): windowed
// CA* v2 does not silently accept an unreachable agent.
type PlanningError struct {
	AgentID int
	err     error
}

func (e *PlanningError) Error() string { return e.err.Error() }
func (e *PlanningError) Unwrap() error { return e.err }

func newPlanningError(agentID int, format string, args ...any) *PlanningError {
	msg := fmt.Sprintf(format, args...)
	return &PlanningError{
		AgentID: agentID,
		err:     errors.Wrapf(ErrUnreachable, "agent %d: %s", agentID, msg),
	}
}

// ErrUnreachable is the sentinel wrapped by PlanningError; callers can
// test for it with errors.Is.
var ErrUnreachable = errors.New("algo: agent has no timed path to its goal")
