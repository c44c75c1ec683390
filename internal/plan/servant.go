package plan

import (
	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
)

// axis identifies which enhancement category a cost belongs to.
type axis int

const (
	axisAscension axis = iota
	axisSkill
	axisAppendSkill
	axisCostume
)

// enhancementState is the engine's working view of one servant's upgrade
// state while walking a plan chain. It owns its costume set; transitions
// produce a new state rather than mutating in place.
type enhancementState struct {
	ascension    int
	skills       [domain.SkillSlotCount]int
	appendSkills [domain.SkillSlotCount]int
	costumes     map[int]struct{}
}

// newEnhancementState captures a servant's live account state. The unlocked
// costume set is copied, never aliased.
func newEnhancementState(enhancements domain.ServantEnhancements, unlockedCostumes map[int]struct{}) enhancementState {
	state := enhancementState{
		ascension: enhancements.AscensionLevel(),
		costumes:  make(map[int]struct{}, len(unlockedCostumes)),
	}
	for slot := 1; slot <= domain.SkillSlotCount; slot++ {
		state.skills[slot-1] = enhancements.Skills.Level(slot)
		state.appendSkills[slot-1] = enhancements.AppendSkills.Level(slot)
	}
	for costumeID := range unlockedCostumes {
		state.costumes[costumeID] = struct{}{}
	}
	return state
}

// applyTarget returns the state a servant reaches once the given target is
// met: set target fields override the current values, targeted catalog
// costumes become unlocked. A skill level of 0 means "no target" and leaves
// the slot untouched. The input state is not modified.
func applyTarget(state enhancementState, target domain.ServantEnhancements, gameServant *gamedata.Servant, targetCostumes map[int]struct{}) enhancementState {
	next := enhancementState{
		ascension:    state.ascension,
		skills:       state.skills,
		appendSkills: state.appendSkills,
		costumes:     make(map[int]struct{}, len(state.costumes)),
	}
	for costumeID := range state.costumes {
		next.costumes[costumeID] = struct{}{}
	}

	if target.Ascension != nil {
		next.ascension = *target.Ascension
	}
	for slot := 1; slot <= domain.SkillSlotCount; slot++ {
		if level := target.Skills.Level(slot); level > 0 {
			next.skills[slot-1] = level
		}
		if level := target.AppendSkills.Level(slot); level > 0 {
			next.appendSkills[slot-1] = level
		}
	}
	for costumeID := range gameServant.Costumes {
		if costumeTargeted(targetCostumes, costumeID) {
			next.costumes[costumeID] = struct{}{}
		}
	}
	return next
}

// costumeTargeted reports whether a costume is in the target set.
// A nil set means every costume is targeted.
func costumeTargeted(targetCostumes map[int]struct{}, costumeID int) bool {
	if targetCostumes == nil {
		return true
	}
	_, ok := targetCostumes[costumeID]
	return ok
}

// computeServantRequirements calculates the incremental cost of moving one
// servant from its current state to the given target. Missing catalog table
// entries contribute zero; the result is always a fresh record.
func computeServantRequirements(gameServant *gamedata.Servant, current enhancementState, target domain.ServantEnhancements, targetCostumes map[int]struct{}, opts ComputeOptions) *Requirements {
	req := NewRequirements()

	if opts.IncludeSkills {
		var targets [domain.SkillSlotCount]int
		for slot := 1; slot <= domain.SkillSlotCount; slot++ {
			targets[slot-1] = target.Skills.Level(slot)
		}
		addSkillCosts(req, gameServant.SkillMaterials, current.skills, targets, axisSkill, opts.ExcludeLores)
	}

	if opts.IncludeAppendSkills {
		var targets [domain.SkillSlotCount]int
		for slot := 1; slot <= domain.SkillSlotCount; slot++ {
			targets[slot-1] = target.AppendSkills.Level(slot)
		}
		addSkillCosts(req, gameServant.AppendSkillMaterials, current.appendSkills, targets, axisAppendSkill, opts.ExcludeLores)
	}

	if opts.IncludeAscensions && target.Ascension != nil {
		for level, cost := range gameServant.AscensionMaterials {
			if level > current.ascension && level <= *target.Ascension {
				addCost(req, cost, 1, axisAscension)
			}
		}
	}

	if opts.IncludeCostumes {
		for costumeID, costume := range gameServant.Costumes {
			if _, unlocked := current.costumes[costumeID]; unlocked {
				continue
			}
			if !costumeTargeted(targetCostumes, costumeID) {
				continue
			}
			addCost(req, costume.Cost, 1, axisCostume)
		}
	}

	return req
}

// addSkillCosts walks a skill cost table. Key L holds the cost of raising a
// skill from level L to L+1; the cost at L is multiplied by the number of
// slots whose current level is at or below L and whose target is beyond it.
// When excludeLores is set the table's maximum key (the lore step) is
// skipped entirely.
func addSkillCosts(req *Requirements, table map[int]gamedata.EnhancementCost, current, target [domain.SkillSlotCount]int, category axis, excludeLores bool) {
	loreStep := 0
	if excludeLores {
		for level := range table {
			if level > loreStep {
				loreStep = level
			}
		}
	}

	for level, cost := range table {
		if excludeLores && level == loreStep {
			continue
		}
		count := 0
		for slot := 0; slot < domain.SkillSlotCount; slot++ {
			if current[slot] <= level && level < target[slot] {
				count++
			}
		}
		if count > 0 {
			addCost(req, cost, count, category)
		}
	}
}

// addCost accumulates one upgrade-step cost, multiplied, into the record:
// the per-category subtotal, the material grand total, and the QP aggregate.
func addCost(req *Requirements, cost gamedata.EnhancementCost, multiplier int, category axis) {
	req.QP += cost.QP * int64(multiplier)
	for _, material := range cost.Materials {
		amount := material.Quantity * multiplier
		entry := req.item(material.ItemID)
		switch category {
		case axisAscension:
			entry.Ascensions += amount
		case axisSkill:
			entry.Skills += amount
		case axisAppendSkill:
			entry.AppendSkills += amount
		case axisCostume:
			entry.Costumes += amount
		}
		entry.Total += amount
	}
}
