package handler

import (
	"context"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/plan"
)

// fakeAccountService implements account.Service with canned responses.
type fakeAccountService struct {
	account *domain.MasterAccount
	err     error

	updatedItems  map[int]int
	updatedQP     int64
	updatedRoster []domain.MasterServant
}

func (f *fakeAccountService) CreateAccount(ctx context.Context, account *domain.MasterAccount) (*domain.MasterAccount, error) {
	if f.err != nil {
		return nil, f.err
	}
	account.ID = "acct-created"
	return account, nil
}

func (f *fakeAccountService) GetAccount(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.account, nil
}

func (f *fakeAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.MasterAccount, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.account == nil {
		return nil, nil
	}
	return []domain.MasterAccount{*f.account}, nil
}

func (f *fakeAccountService) UpdateAccount(ctx context.Context, account *domain.MasterAccount) (*domain.MasterAccount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return account, nil
}

func (f *fakeAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	return f.err
}

func (f *fakeAccountService) UpdateServants(ctx context.Context, accountID string, servants []domain.MasterServant) error {
	if f.err != nil {
		return f.err
	}
	f.updatedRoster = servants
	return nil
}

func (f *fakeAccountService) UpdateItems(ctx context.Context, accountID string, items map[int]int, qp int64) error {
	if f.err != nil {
		return f.err
	}
	f.updatedItems = items
	f.updatedQP = qp
	return nil
}

// fakePlanService implements plan.Service with canned responses.
type fakePlanService struct {
	plan   *domain.Plan
	group  *domain.PlanGroup
	result *plan.PlanRequirementsResult
	req    *plan.Requirements
	err    error

	// lastOptions captures what the handler passed through
	lastOptions    *plan.ComputeOptions
	deletedGroupID int64
}

func (f *fakePlanService) CreatePlan(ctx context.Context, p *domain.Plan) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	p.ID = 101
	return p, nil
}

func (f *fakePlanService) GetPlan(ctx context.Context, planID int64) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

func (f *fakePlanService) UpdatePlan(ctx context.Context, p *domain.Plan) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return p, nil
}

func (f *fakePlanService) DeletePlan(ctx context.Context, planID int64) error {
	return f.err
}

func (f *fakePlanService) CreatePlanGroup(ctx context.Context, group *domain.PlanGroup) (*domain.PlanGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	group.ID = 301
	return group, nil
}

func (f *fakePlanService) GetPlanGroup(ctx context.Context, groupID int64) (*domain.PlanGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.group, nil
}

func (f *fakePlanService) DeletePlanGroup(ctx context.Context, groupID int64) error {
	f.deletedGroupID = groupID
	return f.err
}

func (f *fakePlanService) ListPlanGroups(ctx context.Context, accountID string) ([]domain.PlanGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.group == nil {
		return nil, nil
	}
	return []domain.PlanGroup{*f.group}, nil
}

func (f *fakePlanService) ComputeRequirements(ctx context.Context, accountID string, planID int64, options *plan.ComputeOptions) (*plan.PlanRequirementsResult, error) {
	f.lastOptions = options
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePlanService) ComputeServantRequirements(ctx context.Context, accountID string, instanceID int64, options *plan.ComputeOptions) (*plan.Requirements, error) {
	f.lastOptions = options
	if f.err != nil {
		return nil, f.err
	}
	return f.req, nil
}
