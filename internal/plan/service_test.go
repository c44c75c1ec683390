package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	accounts map[string]*domain.MasterAccount
	plans    map[int64]*domain.Plan
	groups   map[int64]*domain.PlanGroup

	nextPlanID  int64
	nextGroupID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts:    make(map[string]*domain.MasterAccount),
		plans:       make(map[int64]*domain.Plan),
		groups:      make(map[int64]*domain.PlanGroup),
		nextPlanID:  100,
		nextGroupID: 100,
	}
}

func (f *fakeRepo) GetAccountByID(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	return f.accounts[accountID], nil
}

func (f *fakeRepo) CreatePlan(ctx context.Context, p *domain.Plan) (int64, error) {
	f.nextPlanID++
	stored := *p
	stored.ID = f.nextPlanID
	f.plans[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRepo) GetPlanByID(ctx context.Context, planID int64) (*domain.Plan, error) {
	return f.plans[planID], nil
}

func (f *fakeRepo) ListPlansByGroupID(ctx context.Context, groupID int64) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range f.plans {
		if p.GroupID == groupID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdatePlan(ctx context.Context, p *domain.Plan) error {
	stored := *p
	f.plans[p.ID] = &stored
	return nil
}

func (f *fakeRepo) DeletePlan(ctx context.Context, planID int64) error {
	delete(f.plans, planID)
	return nil
}

func (f *fakeRepo) CreatePlanGroup(ctx context.Context, group *domain.PlanGroup) (int64, error) {
	f.nextGroupID++
	stored := *group
	stored.ID = f.nextGroupID
	f.groups[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRepo) GetPlanGroupByID(ctx context.Context, groupID int64) (*domain.PlanGroup, error) {
	return f.groups[groupID], nil
}

func (f *fakeRepo) ListPlanGroupsByAccountID(ctx context.Context, accountID string) ([]domain.PlanGroup, error) {
	var out []domain.PlanGroup
	for _, g := range f.groups {
		if g.AccountID == accountID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdatePlanGroup(ctx context.Context, group *domain.PlanGroup) error {
	stored := *group
	f.groups[group.ID] = &stored
	return nil
}

func (f *fakeRepo) DeletePlanGroup(ctx context.Context, groupID int64) error {
	delete(f.groups, groupID)
	return nil
}

// fakeGameData serves catalog servants from a map and counts lookups.
type fakeGameData struct {
	servants map[int]*gamedata.Servant
	lookups  int
	err      error
}

func (f *fakeGameData) GetServantByID(ctx context.Context, servantID int) (*gamedata.Servant, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	servant, ok := f.servants[servantID]
	if !ok {
		return nil, domain.ErrGameServantNotFound
	}
	return servant, nil
}

func newTestService(repo *fakeRepo, gameData *fakeGameData) Service {
	cache := gamedata.NewServantCache(16, time.Minute)
	return NewService(repo, gameData, cache, nil)
}

// seedChain stores an account owning the fixture servant plus a group with
// two plans in order, and returns their IDs.
func seedChain(repo *fakeRepo) (accountID string, groupID, planAID, planBID int64) {
	account := fixtureAccount(fixtureOwnedServant(1))
	repo.accounts[account.ID] = account

	planA := planWith(0, directive(1, ascensionTarget(2)))
	planA.ID = 201
	planB := planWith(0, directive(1, ascensionTarget(4)))
	planB.ID = 202
	planA.GroupID = 301
	planB.GroupID = 301
	repo.plans[planA.ID] = planA
	repo.plans[planB.ID] = planB

	repo.groups[301] = &domain.PlanGroup{
		ID:        301,
		AccountID: account.ID,
		Name:      "JP progression",
		PlanIDs:   []int64{planA.ID, planB.ID},
	}
	return account.ID, 301, planA.ID, planB.ID
}

func TestService_ComputeRequirements(t *testing.T) {
	repo := newFakeRepo()
	accountID, _, planAID, planBID := seedChain(repo)
	gameData := &fakeGameData{servants: map[int]*gamedata.Servant{fixtureServantID: fixtureServant()}}
	svc := newTestService(repo, gameData)

	opts := ComputeOptions{IncludeAscensions: true}
	result, err := svc.ComputeRequirements(context.Background(), accountID, planBID, &opts)
	require.NoError(t, err)

	assert.Equal(t, planBID, result.TargetPlanID)
	assert.Equal(t, 3, result.PrecedingPlans[planAID].Items[fixturePieceID].Ascensions)
	assert.Equal(t, 7, result.TargetPlan.Items[fixturePieceID].Ascensions)
	assert.Equal(t, 10, result.Group.Items[fixturePieceID].Ascensions)
}

func TestService_ComputeRequirements_CachesCatalogLookups(t *testing.T) {
	repo := newFakeRepo()
	accountID, _, _, planBID := seedChain(repo)
	gameData := &fakeGameData{servants: map[int]*gamedata.Servant{fixtureServantID: fixtureServant()}}
	svc := newTestService(repo, gameData)

	_, err := svc.ComputeRequirements(context.Background(), accountID, planBID, nil)
	require.NoError(t, err)
	_, err = svc.ComputeRequirements(context.Background(), accountID, planBID, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, gameData.lookups, "second computation should hit the servant cache")
}

func TestService_ComputeRequirements_Errors(t *testing.T) {
	repo := newFakeRepo()
	accountID, _, planAID, planBID := seedChain(repo)
	gameData := &fakeGameData{servants: map[int]*gamedata.Servant{fixtureServantID: fixtureServant()}}
	svc := newTestService(repo, gameData)
	ctx := context.Background()

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.ComputeRequirements(ctx, "nope", planBID, nil)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := svc.ComputeRequirements(ctx, accountID, 999, nil)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})

	t.Run("plan belongs to another account", func(t *testing.T) {
		other := fixtureAccount()
		other.ID = "acct-2"
		repo.accounts[other.ID] = other

		_, err := svc.ComputeRequirements(ctx, other.ID, planBID, nil)
		assert.ErrorIs(t, err, domain.ErrPlanNotInGroup)
	})

	t.Run("plan missing from group order", func(t *testing.T) {
		stray := planWith(0, directive(1, ascensionTarget(1)))
		stray.ID = 500
		stray.GroupID = 301
		repo.plans[stray.ID] = stray

		_, err := svc.ComputeRequirements(ctx, accountID, stray.ID, nil)
		assert.ErrorIs(t, err, domain.ErrPlanNotInGroup)
	})

	t.Run("group order references a missing plan row", func(t *testing.T) {
		delete(repo.plans, planAID)

		_, err := svc.ComputeRequirements(ctx, accountID, planBID, nil)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})
}

func TestService_ComputeServantRequirements(t *testing.T) {
	repo := newFakeRepo()
	account := fixtureAccount(fixtureOwnedServant(1))
	repo.accounts[account.ID] = account
	gameData := &fakeGameData{servants: map[int]*gamedata.Servant{fixtureServantID: fixtureServant()}}
	svc := newTestService(repo, gameData)
	ctx := context.Background()

	req, err := svc.ComputeServantRequirements(ctx, account.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 135, req.Items[fixtureGemID].Skills)
	assert.Equal(t, 10, req.Items[fixturePieceID].Ascensions)

	t.Run("unknown instance", func(t *testing.T) {
		_, err := svc.ComputeServantRequirements(ctx, account.ID, 42, nil)
		assert.ErrorIs(t, err, domain.ErrServantNotFound)
	})

	t.Run("servant missing from catalog yields zero record", func(t *testing.T) {
		account.Servants = append(account.Servants, domain.MasterServant{InstanceID: 2, GameID: 424242})

		req, err := svc.ComputeServantRequirements(ctx, account.ID, 2, nil)
		require.NoError(t, err)
		assert.Empty(t, req.Items)
	})

	t.Run("catalog lookup failure propagates", func(t *testing.T) {
		broken := &fakeGameData{err: errors.New("db down")}
		brokenSvc := newTestService(repo, broken)

		account.Servants = append(account.Servants, domain.MasterServant{InstanceID: 3, GameID: 555})
		_, err := brokenSvc.ComputeServantRequirements(ctx, account.ID, 3, nil)
		assert.Error(t, err)
	})
}

func TestService_PlanCRUD(t *testing.T) {
	repo := newFakeRepo()
	gameData := &fakeGameData{}
	svc := newTestService(repo, gameData)
	ctx := context.Background()

	group, err := svc.CreatePlanGroup(ctx, &domain.PlanGroup{AccountID: "acct-1", Name: "NA progression"})
	require.NoError(t, err)
	require.NotZero(t, group.ID)

	t.Run("create appends to group order", func(t *testing.T) {
		p, err := svc.CreatePlan(ctx, &domain.Plan{GroupID: group.ID, Name: "Anniversary", Enabled: domain.AllPlanAxesEnabled()})
		require.NoError(t, err)

		stored, err := svc.GetPlanGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{p.ID}, stored.PlanIDs)
	})

	t.Run("create rejects unknown group", func(t *testing.T) {
		_, err := svc.CreatePlan(ctx, &domain.Plan{GroupID: 9999, Name: "orphan"})
		assert.ErrorIs(t, err, domain.ErrPlanGroupNotFound)
	})

	t.Run("update keeps group membership", func(t *testing.T) {
		p, err := svc.CreatePlan(ctx, &domain.Plan{GroupID: group.ID, Name: "Summer"})
		require.NoError(t, err)

		p.GroupID = 9999
		_, err = svc.UpdatePlan(ctx, p)
		assert.ErrorIs(t, err, domain.ErrPlanNotInGroup)

		p.GroupID = group.ID
		p.Description = "banner prep"
		updated, err := svc.UpdatePlan(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "banner prep", updated.Description)
	})

	t.Run("delete drops plan from group order", func(t *testing.T) {
		p, err := svc.CreatePlan(ctx, &domain.Plan{GroupID: group.ID, Name: "Doomed"})
		require.NoError(t, err)

		require.NoError(t, svc.DeletePlan(ctx, p.ID))

		stored, err := svc.GetPlanGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.NotContains(t, stored.PlanIDs, p.ID)

		_, err = svc.GetPlan(ctx, p.ID)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})

	t.Run("delete group removes the whole chain", func(t *testing.T) {
		doomed, err := svc.CreatePlanGroup(ctx, &domain.PlanGroup{AccountID: "acct-1", Name: "Doomed group"})
		require.NoError(t, err)

		require.NoError(t, svc.DeletePlanGroup(ctx, doomed.ID))

		_, err = svc.GetPlanGroup(ctx, doomed.ID)
		assert.ErrorIs(t, err, domain.ErrPlanGroupNotFound)

		err = svc.DeletePlanGroup(ctx, doomed.ID)
		assert.ErrorIs(t, err, domain.ErrPlanGroupNotFound)
	})

	t.Run("nil inputs rejected", func(t *testing.T) {
		_, err := svc.CreatePlan(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = svc.CreatePlanGroup(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("list groups by account", func(t *testing.T) {
		groups, err := svc.ListPlanGroups(ctx, "acct-1")
		require.NoError(t, err)
		assert.Len(t, groups, 1)
	})
}
