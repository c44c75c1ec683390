package plan

import (
	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
)

// ComputeServantEnhancementRequirements computes what one servant still
// needs to reach the maximum of everything: final ascension, all skills and
// append skills at max level, and every costume unlocked. A servant whose
// catalog definition is missing yields the zero record.
func ComputeServantEnhancementRequirements(catalog *gamedata.Catalog, servant domain.MasterServant, unlockedCostumes []int, options ComputeOptions) *Requirements {
	gameServant, ok := catalog.Servant(servant.GameID)
	if !ok {
		return NewRequirements()
	}

	costumes := make(map[int]struct{}, len(unlockedCostumes))
	for _, costumeID := range unlockedCostumes {
		costumes[costumeID] = struct{}{}
	}
	current := newEnhancementState(servant.Enhancements, costumes)

	maxAscension := gameServant.MaxAscension()
	target := domain.ServantEnhancements{Ascension: &maxAscension}
	for slot := 1; slot <= domain.SkillSlotCount; slot++ {
		target.Skills = target.Skills.WithLevel(slot, domain.MaxSkillLevel)
		target.AppendSkills = target.AppendSkills.WithLevel(slot, domain.MaxSkillLevel)
	}

	// nil target costume set: every costume is in scope.
	return computeServantRequirements(gameServant, current, target, nil, options)
}
