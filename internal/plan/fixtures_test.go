package plan

import (
	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
)

// Fixture item IDs. The gem doubles as the skill material, the bone as the
// append material, the piece as the ascension material.
const (
	fixtureGemID     = 6011
	fixtureBoneID    = 6502
	fixtureLoreID    = 6999
	fixturePieceID   = 6001
	fixtureLanternID = 6510

	fixtureServantID = 100100
	fixtureCostumeID = 100130
)

func intPtr(v int) *int { return &v }

// fixtureServant builds a catalog servant with fully populated cost tables:
//   - skill step L (1..9) costs L gems and L*1000 QP; step 9 adds one lore
//   - append step L costs L bones and L*1000 QP; step 9 adds one lore
//   - ascension level L (1..4) costs L pieces and L*100 QP
//   - one costume costing 5 lanterns and 3,000,000 QP
func fixtureServant() *gamedata.Servant {
	skills := make(map[int]gamedata.EnhancementCost, 9)
	appends := make(map[int]gamedata.EnhancementCost, 9)
	for level := 1; level <= 9; level++ {
		skillCost := gamedata.EnhancementCost{
			Materials: []gamedata.ItemQuantity{{ItemID: fixtureGemID, Quantity: level}},
			QP:        int64(level) * 1000,
		}
		appendCost := gamedata.EnhancementCost{
			Materials: []gamedata.ItemQuantity{{ItemID: fixtureBoneID, Quantity: level}},
			QP:        int64(level) * 1000,
		}
		if level == 9 {
			skillCost.Materials = append(skillCost.Materials, gamedata.ItemQuantity{ItemID: fixtureLoreID, Quantity: 1})
			appendCost.Materials = append(appendCost.Materials, gamedata.ItemQuantity{ItemID: fixtureLoreID, Quantity: 1})
		}
		skills[level] = skillCost
		appends[level] = appendCost
	}

	ascensions := make(map[int]gamedata.EnhancementCost, 4)
	for level := 1; level <= 4; level++ {
		ascensions[level] = gamedata.EnhancementCost{
			Materials: []gamedata.ItemQuantity{{ItemID: fixturePieceID, Quantity: level}},
			QP:        int64(level) * 100,
		}
	}

	return &gamedata.Servant{
		ID:                   fixtureServantID,
		CollectionNo:         2,
		Name:                 "Altria Pendragon",
		Class:                "saber",
		Rarity:               5,
		SkillMaterials:       skills,
		AppendSkillMaterials: appends,
		AscensionMaterials:   ascensions,
		Costumes: map[int]gamedata.Costume{
			fixtureCostumeID: {
				ID:   fixtureCostumeID,
				Name: "Heroic Spirit Formal Dress",
				Cost: gamedata.EnhancementCost{
					Materials: []gamedata.ItemQuantity{{ItemID: fixtureLanternID, Quantity: 5}},
					QP:        3_000_000,
				},
			},
		},
	}
}

func fixtureCatalog() *gamedata.Catalog {
	return gamedata.NewCatalog([]*gamedata.Servant{fixtureServant()}, nil)
}

// fixtureOwnedServant is an owned copy of the fixture servant at ascension 0
// with skills (1,1,1) and no append skills recorded.
func fixtureOwnedServant(instanceID int64) domain.MasterServant {
	return domain.MasterServant{
		InstanceID: instanceID,
		GameID:     fixtureServantID,
		Enhancements: domain.ServantEnhancements{
			Ascension: intPtr(0),
			Skills: domain.SkillLevels{
				Skill1: intPtr(1),
				Skill2: intPtr(1),
				Skill3: intPtr(1),
			},
		},
	}
}

func fixtureAccount(servants ...domain.MasterServant) *domain.MasterAccount {
	return &domain.MasterAccount{
		ID:       "acct-1",
		UserID:   "user-1",
		Name:     "JP Main",
		Servants: servants,
		Items:    map[int]int{},
	}
}

// skillTargets returns an enhancement target with all three skill slots set
// to the same level.
func skillTargets(level int) domain.ServantEnhancements {
	return domain.ServantEnhancements{
		Skills: domain.SkillLevels{
			Skill1: intPtr(level),
			Skill2: intPtr(level),
			Skill3: intPtr(level),
		},
	}
}

// planWith wraps servant directives into an all-axes-enabled plan.
func planWith(id int64, servants ...domain.PlanServant) *domain.Plan {
	return &domain.Plan{
		ID:       id,
		GroupID:  1,
		Name:     "plan",
		Enabled:  domain.AllPlanAxesEnabled(),
		Servants: servants,
	}
}

// directive builds an enabled, all-axes plan servant entry.
func directive(instanceID int64, target domain.ServantEnhancements) domain.PlanServant {
	return domain.PlanServant{
		InstanceID: instanceID,
		Enabled:    true,
		Axes:       domain.AllPlanAxesEnabled(),
		Target:     target,
	}
}
