package algo

// Reprioritisation selects how windowed CA* v1 reorders the active agent
// set at the start of each window (§4.5).
type Reprioritisation int

const (
	// Randomised shuffles the active agents uniformly at random each
	// window, using the planner's seeded PRNG (§8 item 7: reproducible
	// given a fixed seed).
	Randomised Reprioritisation = iota
	// RoundRobin rotates the active-agent index sequence left by one
	// position each window. This is the corrected semantics for the
	// source's off-by-one round-robin behaviour (§9 open question): a
	// plain left rotation, not an indexing scheme that runs past the end
	// of the slice for len > 2.
	RoundRobin
	// ShortestAbstractPathFirst orders agents ascending by the static A*
	// distance from their current window start to their goal, ignoring
	// other agents (the "abstract distance" of the glossary).
	ShortestAbstractPathFirst
)

func (r Reprioritisation) String() string {
	switch r {
	case Randomised:
		return "randomised"
	case RoundRobin:
		return "round_robin"
	case ShortestAbstractPathFirst:
		return "shortest_abstract_path_first"
	default:
		return "unknown"
	}
}

// ParseReprioritisation recognises the three reprioritisation tags of §6.
// Unknown tags fail with a ConfigError, per §7's InvalidConfiguration
// category.
func ParseReprioritisation(tag string) (Reprioritisation, error) {
	switch tag {
	case "randomised", "":
		return Randomised, nil
	case "round_robin":
		return RoundRobin, nil
	case "shortest_abstract_path_first":
		return ShortestAbstractPathFirst, nil
	default:
		return Randomised, newConfigError("unknown reprioritisation tag %q", tag)
	}
}
