package plan

import "github.com/alvinquach/fgo-planner-go/internal/domain"

// ComputeOptions controls which enhancement axes a computation includes.
// The zero value disables everything; use DefaultComputeOptions for the
// everything-on default.
type ComputeOptions struct {
	IncludeAscensions   bool `json:"include_ascensions"`
	IncludeSkills       bool `json:"include_skills"`
	IncludeAppendSkills bool `json:"include_append_skills"`
	IncludeCostumes     bool `json:"include_costumes"`

	// ExcludeLores skips the final (max-level) step of every skill table.
	ExcludeLores bool `json:"exclude_lores"`
}

// DefaultComputeOptions returns options with every axis included and lores
// counted.
func DefaultComputeOptions() ComputeOptions {
	return ComputeOptions{
		IncludeAscensions:   true,
		IncludeSkills:       true,
		IncludeAppendSkills: true,
		IncludeCostumes:     true,
	}
}

// mergeOptions resolves the effective options for one servant in one plan.
// Axis flags combine by logical AND across the three sources: an axis is
// computed only when the base options, the plan, and the plan servant all
// enable it. ExcludeLores comes from the base options alone.
func mergeOptions(base ComputeOptions, planFlags, servantFlags domain.PlanEnabledFlags) ComputeOptions {
	return ComputeOptions{
		IncludeAscensions:   base.IncludeAscensions && planFlags.Ascensions && servantFlags.Ascensions,
		IncludeSkills:       base.IncludeSkills && planFlags.Skills && servantFlags.Skills,
		IncludeAppendSkills: base.IncludeAppendSkills && planFlags.AppendSkills && servantFlags.AppendSkills,
		IncludeCostumes:     base.IncludeCostumes && planFlags.Costumes && servantFlags.Costumes,
		ExcludeLores:        base.ExcludeLores,
	}
}
