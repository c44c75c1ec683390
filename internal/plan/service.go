package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/event"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
	"github.com/alvinquach/fgo-planner-go/internal/logger"
	"github.com/alvinquach/fgo-planner-go/internal/metrics"
)

// Repository defines the interface for data access required by the plan service
type Repository interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.MasterAccount, error)

	CreatePlan(ctx context.Context, p *domain.Plan) (int64, error)
	GetPlanByID(ctx context.Context, planID int64) (*domain.Plan, error)
	ListPlansByGroupID(ctx context.Context, groupID int64) ([]domain.Plan, error)
	UpdatePlan(ctx context.Context, p *domain.Plan) error
	DeletePlan(ctx context.Context, planID int64) error

	CreatePlanGroup(ctx context.Context, group *domain.PlanGroup) (int64, error)
	GetPlanGroupByID(ctx context.Context, groupID int64) (*domain.PlanGroup, error)
	ListPlanGroupsByAccountID(ctx context.Context, accountID string) ([]domain.PlanGroup, error)
	UpdatePlanGroup(ctx context.Context, group *domain.PlanGroup) error
	DeletePlanGroup(ctx context.Context, groupID int64) error
}

// GameData defines the game catalog access required by the plan service
type GameData interface {
	GetServantByID(ctx context.Context, servantID int) (*gamedata.Servant, error)
}

// Service defines the interface for plan operations
type Service interface {
	CreatePlan(ctx context.Context, p *domain.Plan) (*domain.Plan, error)
	GetPlan(ctx context.Context, planID int64) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, p *domain.Plan) (*domain.Plan, error)
	DeletePlan(ctx context.Context, planID int64) error

	CreatePlanGroup(ctx context.Context, group *domain.PlanGroup) (*domain.PlanGroup, error)
	GetPlanGroup(ctx context.Context, groupID int64) (*domain.PlanGroup, error)
	ListPlanGroups(ctx context.Context, accountID string) ([]domain.PlanGroup, error)
	DeletePlanGroup(ctx context.Context, groupID int64) error

	ComputeRequirements(ctx context.Context, accountID string, planID int64, options *ComputeOptions) (*PlanRequirementsResult, error)
	ComputeServantRequirements(ctx context.Context, accountID string, instanceID int64, options *ComputeOptions) (*Requirements, error)
}

type service struct {
	repo         Repository
	gameData     GameData
	servantCache *gamedata.ServantCache
	eventBus     event.Bus
}

// NewService creates a new plan service
func NewService(repo Repository, gameData GameData, servantCache *gamedata.ServantCache, eventBus event.Bus) Service {
	return &service{
		repo:         repo,
		gameData:     gameData,
		servantCache: servantCache,
		eventBus:     eventBus,
	}
}

// ComputeRequirements loads the target plan, every plan before it in its
// group, and the owning account, then runs the requirement computation over
// the chain.
func (s *service) ComputeRequirements(ctx context.Context, accountID string, planID int64, options *ComputeOptions) (*PlanRequirementsResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	targetPlan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	group, err := s.repo.GetPlanGroupByID(ctx, targetPlan.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %d: %w", targetPlan.GroupID, domain.ErrPlanGroupNotFound)
	}
	if group.AccountID != accountID {
		return nil, fmt.Errorf("plan %d: %w", planID, domain.ErrPlanNotInGroup)
	}

	precedingPlans, err := s.loadPrecedingPlans(ctx, group, planID)
	if err != nil {
		return nil, err
	}

	snapshot := BuildAccountSnapshot(account)
	catalog, err := s.buildCatalog(ctx, snapshot, append(precedingPlans, targetPlan))
	if err != nil {
		return nil, err
	}

	opts := DefaultComputeOptions()
	if options != nil {
		opts = *options
	}

	result := ComputePlanRequirements(catalog, snapshot, targetPlan, precedingPlans, opts)

	metrics.PlanComputations.Inc()
	metrics.PlanComputationDuration.Observe(time.Since(start).Seconds())

	s.publish(ctx, event.NewPlanRequirementsComputedEvent(accountID, planID, group.ID,
		len(precedingPlans), len(result.Servants), len(result.Group.Items)))

	log.Info("Plan requirements computed",
		"account_id", accountID,
		"plan_id", planID,
		"preceding", len(precedingPlans),
		"servants", len(result.Servants),
		"duration", time.Since(start))
	return result, nil
}

// ComputeServantRequirements computes a single owned servant's remaining
// cost to max everything, used by the servant detail view.
func (s *service) ComputeServantRequirements(ctx context.Context, accountID string, instanceID int64, options *ComputeOptions) (*Requirements, error) {
	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	servant := account.ServantByInstanceID(instanceID)
	if servant == nil {
		return nil, fmt.Errorf("instance %d: %w", instanceID, domain.ErrServantNotFound)
	}

	gameServant, err := s.lookupServant(ctx, servant.GameID)
	if err != nil {
		return nil, err
	}

	var servants []*gamedata.Servant
	if gameServant != nil {
		servants = append(servants, gameServant)
	}
	catalog := gamedata.NewCatalog(servants, nil)

	opts := DefaultComputeOptions()
	if options != nil {
		opts = *options
	}

	metrics.ServantComputations.Inc()
	return ComputeServantEnhancementRequirements(catalog, *servant, account.Costumes, opts), nil
}

func (s *service) getAccount(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%s: %w", accountID, domain.ErrAccountNotFound)
	}
	return account, nil
}

func (s *service) getPlan(ctx context.Context, planID int64) (*domain.Plan, error) {
	p, err := s.repo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("plan %d: %w", planID, domain.ErrPlanNotFound)
	}
	return p, nil
}

// loadPrecedingPlans resolves the group's plans that come before planID in
// the group's recorded order, oldest first. The target plan must itself be a
// member of the group. The group's plans are fetched in one query and
// reassembled in recorded order.
func (s *service) loadPrecedingPlans(ctx context.Context, group *domain.PlanGroup, planID int64) ([]*domain.Plan, error) {
	found := false
	var precedingIDs []int64
	for _, id := range group.PlanIDs {
		if id == planID {
			found = true
			break
		}
		precedingIDs = append(precedingIDs, id)
	}
	if !found {
		return nil, fmt.Errorf("plan %d not in group %d order: %w", planID, group.ID, domain.ErrPlanNotInGroup)
	}
	if len(precedingIDs) == 0 {
		return nil, nil
	}

	groupPlans, err := s.repo.ListPlansByGroupID(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group plans: %w", err)
	}
	byID := make(map[int64]*domain.Plan, len(groupPlans))
	for i := range groupPlans {
		byID[groupPlans[i].ID] = &groupPlans[i]
	}

	preceding := make([]*domain.Plan, 0, len(precedingIDs))
	for _, id := range precedingIDs {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("plan %d: %w", id, domain.ErrPlanNotFound)
		}
		preceding = append(preceding, p)
	}
	return preceding, nil
}

// buildCatalog fetches the catalog definition of every servant the walk can
// touch, via the LRU cache. Servants missing from the catalog are simply
// left out; the engine treats them as zero-contribution.
func (s *service) buildCatalog(ctx context.Context, snapshot AccountSnapshot, plans []*domain.Plan) (*gamedata.Catalog, error) {
	needed := make(map[int]bool)
	for _, p := range plans {
		if p == nil {
			continue
		}
		for _, ps := range p.Servants {
			if servant, ok := snapshot.Servant(ps.InstanceID); ok {
				needed[servant.GameID] = true
			}
		}
	}

	servants := make([]*gamedata.Servant, 0, len(needed))
	for gameID := range needed {
		gameServant, err := s.lookupServant(ctx, gameID)
		if err != nil {
			return nil, err
		}
		if gameServant != nil {
			servants = append(servants, gameServant)
		}
	}
	return gamedata.NewCatalog(servants, nil), nil
}

// lookupServant resolves one catalog servant through the cache. A servant
// absent from the catalog returns (nil, nil): incomplete reference data is
// not an error here.
func (s *service) lookupServant(ctx context.Context, gameID int) (*gamedata.Servant, error) {
	if gameServant, ok := s.servantCache.Get(gameID); ok {
		metrics.CatalogCacheHits.Inc()
		return gameServant, nil
	}
	metrics.CatalogCacheMisses.Inc()

	gameServant, err := s.gameData.GetServantByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, domain.ErrGameServantNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game servant %d: %w", gameID, err)
	}
	if gameServant != nil {
		s.servantCache.Set(gameServant)
	}
	return gameServant, nil
}
