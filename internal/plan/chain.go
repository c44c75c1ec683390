package plan

import (
	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
)

// PlanRequirementsResult is the full output of a plan chain computation.
type PlanRequirementsResult struct {
	// TargetPlanID echoes which plan the computation was run for.
	TargetPlanID int64 `json:"target_plan_id"`

	// Servants holds per-servant requirement detail for the target plan,
	// keyed by instance ID.
	Servants map[int64]*Requirements `json:"servants"`

	// TargetPlan is the total requirement for the target plan alone.
	TargetPlan *Requirements `json:"target_plan"`

	// PrecedingPlans holds the incremental requirement of each preceding
	// plan in the chain, keyed by plan ID.
	PrecedingPlans map[int64]*Requirements `json:"preceding_plans"`

	// Group is the grand total across every walked plan.
	Group *Requirements `json:"group"`

	// ItemDebt is, per material, how much of the group requirement the
	// account's inventory cannot cover: max(required - owned, 0).
	ItemDebt map[int]int `json:"item_debt"`

	// QPDebt is the uncovered portion of the group's QP requirement.
	QPDebt int64 `json:"qp_debt"`
}

// ComputePlanRequirements walks precedingPlans in the given order (oldest
// first), then targetPlan, and computes the incremental cost of each step.
//
// A servant's baseline for its first appearance in the walk is its live
// state in the snapshot; every later appearance starts from the previous
// plan's target. Callers must therefore supply preceding plans in true
// chronological order - the walk performs no validation and an out-of-order
// chain silently produces wrong numbers.
//
// Servants missing from the snapshot or from the catalog are skipped.
func ComputePlanRequirements(catalog *gamedata.Catalog, snapshot AccountSnapshot, targetPlan *domain.Plan, precedingPlans []*domain.Plan, options ComputeOptions) *PlanRequirementsResult {
	result := &PlanRequirementsResult{
		Servants:       make(map[int64]*Requirements),
		TargetPlan:     NewRequirements(),
		PrecedingPlans: make(map[int64]*Requirements),
		Group:          NewRequirements(),
		ItemDebt:       make(map[int]int),
	}
	if targetPlan == nil {
		return result
	}
	result.TargetPlanID = targetPlan.ID

	states := make(map[int64]enhancementState)

	for _, preceding := range precedingPlans {
		if preceding == nil {
			continue
		}
		bucket := NewRequirements()
		walkPlan(catalog, snapshot, preceding, options, states, func(_ int64, req *Requirements) {
			bucket.Add(req)
			result.Group.Add(req)
		})
		result.PrecedingPlans[preceding.ID] = bucket
	}

	walkPlan(catalog, snapshot, targetPlan, options, states, func(instanceID int64, req *Requirements) {
		servantTotal, ok := result.Servants[instanceID]
		if !ok {
			servantTotal = NewRequirements()
			result.Servants[instanceID] = servantTotal
		}
		servantTotal.Add(req)
		result.TargetPlan.Add(req)
		result.Group.Add(req)
	})

	result.ItemDebt, result.QPDebt = computeDebt(result.Group, snapshot)
	return result
}

// walkPlan processes every enabled servant directive of one plan, invoking
// record for each computed per-servant requirement and threading the state
// accumulator forward.
func walkPlan(catalog *gamedata.Catalog, snapshot AccountSnapshot, p *domain.Plan, options ComputeOptions, states map[int64]enhancementState, record func(instanceID int64, req *Requirements)) {
	targetCostumes := costumeSet(p.Costumes)

	for _, planServant := range p.Servants {
		if !planServant.Enabled {
			continue
		}
		servant, ok := snapshot.Servant(planServant.InstanceID)
		if !ok {
			continue
		}
		gameServant, ok := catalog.Servant(servant.GameID)
		if !ok {
			continue
		}

		state, seen := states[planServant.InstanceID]
		if !seen {
			state = newEnhancementState(servant.Enhancements, snapshot.Costumes)
		}

		opts := mergeOptions(options, p.Enabled, planServant.Axes)
		req := computeServantRequirements(gameServant, state, planServant.Target, targetCostumes, opts)
		record(planServant.InstanceID, req)

		states[planServant.InstanceID] = applyTarget(state, planServant.Target, gameServant, targetCostumes)
	}
}

// costumeSet converts a plan's target costume list into set form.
// A nil list means "all costumes targeted" and stays nil.
func costumeSet(costumeIDs []int) map[int]struct{} {
	if costumeIDs == nil {
		return nil
	}
	set := make(map[int]struct{}, len(costumeIDs))
	for _, id := range costumeIDs {
		set[id] = struct{}{}
	}
	return set
}
