package repository

import (
	"context"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
)

// Plan defines the interface for plan and plan group persistence
type Plan interface {
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
