package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
)

func ascensionTarget(level int) domain.ServantEnhancements {
	return domain.ServantEnhancements{Ascension: intPtr(level)}
}

func TestComputePlanRequirements_NilTargetPlan(t *testing.T) {
	snapshot := BuildAccountSnapshot(fixtureAccount())

	result := ComputePlanRequirements(fixtureCatalog(), snapshot, nil, nil, DefaultComputeOptions())

	require.NotNil(t, result)
	assert.Zero(t, result.TargetPlanID)
	assert.Empty(t, result.Group.Items)
}

func TestComputePlanRequirements_SinglePlan(t *testing.T) {
	account := fixtureAccount(fixtureOwnedServant(1))
	snapshot := BuildAccountSnapshot(account)

	target := planWith(10, directive(1, ascensionTarget(4)))
	opts := ComputeOptions{IncludeAscensions: true}

	result := ComputePlanRequirements(fixtureCatalog(), snapshot, target, nil, opts)

	assert.Equal(t, int64(10), result.TargetPlanID)
	require.Contains(t, result.Servants, int64(1))
	assert.Equal(t, 10, result.Servants[1].Items[fixturePieceID].Ascensions)
	assert.Equal(t, 10, result.TargetPlan.Items[fixturePieceID].Ascensions)
	assert.Equal(t, 10, result.Group.Items[fixturePieceID].Ascensions)
	assert.Equal(t, int64(1000), result.Group.QP)
}

func TestComputePlanRequirements_ChainPromotesBaseline(t *testing.T) {
	account := fixtureAccount(fixtureOwnedServant(1))
	snapshot := BuildAccountSnapshot(account)
	opts := ComputeOptions{IncludeAscensions: true}

	planA := planWith(10, directive(1, ascensionTarget(2)))
	planB := planWith(11, directive(1, ascensionTarget(4)))

	result := ComputePlanRequirements(fixtureCatalog(), snapshot, planB, []*domain.Plan{planA}, opts)

	// planA covers levels 1-2, planB only the remaining 3-4
	require.Contains(t, result.PrecedingPlans, int64(10))
	assert.Equal(t, 3, result.PrecedingPlans[10].Items[fixturePieceID].Ascensions)
	assert.Equal(t, 7, result.TargetPlan.Items[fixturePieceID].Ascensions)
	assert.Equal(t, 10, result.Group.Items[fixturePieceID].Ascensions)
}

func TestComputePlanRequirements_ChainPromotesSkills(t *testing.T) {
	account := fixtureAccount(fixtureOwnedServant(1))
	snapshot := BuildAccountSnapshot(account)
	opts := ComputeOptions{IncludeSkills: true}

	planA := planWith(10, directive(1, skillTargets(4)))
	planB := planWith(11, directive(1, skillTargets(6)))

	result := ComputePlanRequirements(fixtureCatalog(), snapshot, planB, []*domain.Plan{planA}, opts)

	// planA: steps 1-3 for three slots = 3*(1+2+3) = 18 gems
	assert.Equal(t, 18, result.PrecedingPlans[10].Items[fixtureGemID].Skills)
	// planB starts from level 4: steps 4-5 for three slots = 3*(4+5) = 27 gems
	assert.Equal(t, 27, result.TargetPlan.Items[fixtureGemID].Skills)
	assert.Equal(t, 45, result.Group.Items[fixtureGemID].Skills)
}

func TestComputePlanRequirements_CostumeChargedOnce(t *testing.T) {
	account := fixtureAccount(fixtureOwnedServant(1))
	snapshot := BuildAccountSnapshot(account)
	opts := ComputeOptions{IncludeCostumes: true}

	planA := planWith(10, directive(1, domain.ServantEnhancements{}))
	planB := planWith(11, directive(1, domain.ServantEnhancements{}))

	result := ComputePlanRequirements(fixtureCatalog(), snapshot, planB, []*domain.Plan{planA}, opts)

	assert.Equal(t, 5, result.PrecedingPlans[10].Items[fixtureLanternID].Costumes)
	assert.Empty(t, result.TargetPlan.Items, "costume unlocked by the preceding plan is not charged again")
	assert.Equal(t, 5, result.Group.Items[fixtureLanternID].Costumes)
}

func TestComputePlanRequirements_SkipsDisabledAndMissing(t *testing.T) {
	account := fixtureAccount(fixtureOwnedServant(1))
	account.Servants = append(account.Servants, domain.MasterServant{InstanceID: 2, GameID: 999999})
	snapshot := BuildAccountSnapshot(account)
	opts := ComputeOptions{IncludeAscensions: true}

	disabled := directive(1, ascensionTarget(4))
	disabled.Enabled = false

	target := planWith(10,
		disabled,
		directive(2, ascensionTarget(4)), // game ID missing from catalog
		directive(3, ascensionTarget(4)), // instance missing from account
	)

	result := ComputePlanRequirements(fixtureCatalog(), snapshot, target, nil, opts)

	assert.Empty(t, result.Servants)
	assert.Empty(t, result.Group.Items)
	assert.Zero(t, result.Group.QP)
}

func TestComputePlanRequirements_PlanLevelAxisDisabled(t *testing.T) {
	account := fixtureAccount(fixtureOwnedServant(1))
	snapshot := BuildAccountSnapshot(account)

	target := planWith(10, directive(1, ascensionTarget(4)))
	target.Enabled.Ascensions = false

	result := ComputePlanRequirements(fixtureCatalog(), snapshot, target, nil, DefaultComputeOptions())

	assert.NotContains(t, result.Group.Items, fixturePieceID)
}

func TestComputePlanRequirements_Debt(t *testing.T) {
	account := fixtureAccount(fixtureOwnedServant(1))
	account.Items = map[int]int{fixturePieceID: 4}
	account.QP = 300
	snapshot := BuildAccountSnapshot(account)
	opts := ComputeOptions{IncludeAscensions: true}

	target := planWith(10, directive(1, ascensionTarget(4)))
	result := ComputePlanRequirements(fixtureCatalog(), snapshot, target, nil, opts)

	// requires 10 pieces and 1000 QP against 4 owned and 300 QP
	assert.Equal(t, 6, result.ItemDebt[fixturePieceID])
	assert.Equal(t, int64(700), result.QPDebt)
}

func TestComputeDebt_CoveredItemsOmitted(t *testing.T) {
	required := NewRequirements()
	required.Items[fixtureGemID] = &RequirementsItem{Skills: 3, Total: 3}
	required.QP = 500

	snapshot := AccountSnapshot{Items: map[int]int{fixtureGemID: 10}, QP: 1000}

	debt, qpDebt := computeDebt(required, snapshot)
	assert.Empty(t, debt)
	assert.Zero(t, qpDebt)
}

func BenchmarkComputePlanRequirements(b *testing.B) {
	servants := make([]domain.MasterServant, 0, 50)
	directives := make([]domain.PlanServant, 0, 50)
	for i := int64(1); i <= 50; i++ {
		servants = append(servants, fixtureOwnedServant(i))
		target := skillTargets(10)
		target.Ascension = intPtr(4)
		directives = append(directives, directive(i, target))
	}
	snapshot := BuildAccountSnapshot(fixtureAccount(servants...))
	target := planWith(10, directives...)
	catalog := fixtureCatalog()
	opts := DefaultComputeOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputePlanRequirements(catalog, snapshot, target, nil, opts)
	}
}
