package plan

import (
	"context"
	"fmt"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/event"
	"github.com/alvinquach/fgo-planner-go/internal/logger"
)

// CreatePlan persists a new plan and appends it to its group's plan order.
func (s *service) CreatePlan(ctx context.Context, p *domain.Plan) (*domain.Plan, error) {
	log := logger.FromContext(ctx)

	if p == nil {
		return nil, fmt.Errorf("%w: nil plan", domain.ErrInvalidInput)
	}

	group, err := s.repo.GetPlanGroupByID(ctx, p.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %d: %w", p.GroupID, domain.ErrPlanGroupNotFound)
	}

	planID, err := s.repo.CreatePlan(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	p.ID = planID

	group.PlanIDs = append(group.PlanIDs, planID)
	if err := s.repo.UpdatePlanGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update plan group order: %w", err)
	}

	s.publish(ctx, event.NewPlanChangedEvent(event.PlanCreated, group.AccountID, planID, group.ID))
	log.Info("Plan created", "plan_id", planID, "group_id", group.ID)
	return p, nil
}

// GetPlan returns one plan by ID.
func (s *service) GetPlan(ctx context.Context, planID int64) (*domain.Plan, error) {
	return s.getPlan(ctx, planID)
}

// UpdatePlan replaces a plan's contents. The plan keeps its group.
func (s *service) UpdatePlan(ctx context.Context, p *domain.Plan) (*domain.Plan, error) {
	log := logger.FromContext(ctx)

	if p == nil {
		return nil, fmt.Errorf("%w: nil plan", domain.ErrInvalidInput)
	}

	existing, err := s.getPlan(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing.GroupID != p.GroupID {
		return nil, fmt.Errorf("plan %d: %w", p.ID, domain.ErrPlanNotInGroup)
	}

	if err := s.repo.UpdatePlan(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	group, err := s.repo.GetPlanGroupByID(ctx, p.GroupID)
	if err == nil && group != nil {
		s.publish(ctx, event.NewPlanChangedEvent(event.PlanUpdated, group.AccountID, p.ID, group.ID))
	}

	log.Info("Plan updated", "plan_id", p.ID)
	return p, nil
}

// DeletePlan removes a plan and drops it from its group's plan order.
func (s *service) DeletePlan(ctx context.Context, planID int64) error {
	log := logger.FromContext(ctx)

	p, err := s.getPlan(ctx, planID)
	if err != nil {
		return err
	}

	group, err := s.repo.GetPlanGroupByID(ctx, p.GroupID)
	if err != nil {
		return fmt.Errorf("failed to get plan group: %w", err)
	}

	if err := s.repo.DeletePlan(ctx, planID); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	if group != nil {
		kept := group.PlanIDs[:0]
		for _, id := range group.PlanIDs {
			if id != planID {
				kept = append(kept, id)
			}
		}
		group.PlanIDs = kept
		if err := s.repo.UpdatePlanGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to update plan group order: %w", err)
		}
		s.publish(ctx, event.NewPlanChangedEvent(event.PlanDeleted, group.AccountID, planID, group.ID))
	}

	log.Info("Plan deleted", "plan_id", planID)
	return nil
}

// CreatePlanGroup persists a new, initially empty plan group.
func (s *service) CreatePlanGroup(ctx context.Context, group *domain.PlanGroup) (*domain.PlanGroup, error) {
	log := logger.FromContext(ctx)

	if group == nil {
		return nil, fmt.Errorf("%w: nil plan group", domain.ErrInvalidInput)
	}
	if group.AccountID == "" {
		return nil, fmt.Errorf("%w: plan group requires an account id", domain.ErrInvalidInput)
	}

	groupID, err := s.repo.CreatePlanGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan group: %w", err)
	}
	group.ID = groupID

	s.publish(ctx, event.NewPlanChangedEvent(event.PlanGroupChanged, group.AccountID, 0, groupID))
	log.Info("Plan group created", "group_id", groupID, "account_id", group.AccountID)
	return group, nil
}

// GetPlanGroup returns one plan group by ID.
func (s *service) GetPlanGroup(ctx context.Context, groupID int64) (*domain.PlanGroup, error) {
	group, err := s.repo.GetPlanGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %d: %w", groupID, domain.ErrPlanGroupNotFound)
	}
	return group, nil
}

// ListPlanGroups returns every plan group belonging to an account.
func (s *service) ListPlanGroups(ctx context.Context, accountID string) ([]domain.PlanGroup, error) {
	groups, err := s.repo.ListPlanGroupsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan groups: %w", err)
	}
	return groups, nil
}

// DeletePlanGroup removes a group and every plan in its chain.
func (s *service) DeletePlanGroup(ctx context.Context, groupID int64) error {
	log := logger.FromContext(ctx)

	group, err := s.GetPlanGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePlanGroup(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete plan group: %w", err)
	}

	s.publish(ctx, event.NewPlanChangedEvent(event.PlanGroupChanged, group.AccountID, 0, groupID))
	log.Info("Plan group deleted", "group_id", groupID, "plans", len(group.PlanIDs))
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", evt.Type, "error", err)
	}
}
