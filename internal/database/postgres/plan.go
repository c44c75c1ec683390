package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/repository"
)

// PlanRepository implements repository.Plan for PostgreSQL
type PlanRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(pool *pgxpool.Pool) repository.Plan {
	return &PlanRepository{pool: pool}
}

const planColumns = `plan_id, group_id, name, description, target_date, enabled, servants, costumes, created_at, updated_at`

// CreatePlan inserts a new plan and returns its ID.
func (r *PlanRepository) CreatePlan(ctx context.Context, p *domain.Plan) (int64, error) {
	enabled, err := marshalJSON("enabled", p.Enabled)
	if err != nil {
		return 0, err
	}
	servants, err := marshalJSON("servants", p.Servants)
	if err != nil {
		return 0, err
	}
	costumes, err := marshalJSON("costumes", p.Costumes)
	if err != nil {
		return 0, err
	}

	var planID int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO plans (group_id, name, description, target_date, enabled, servants, costumes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING plan_id`,
		p.GroupID, p.Name, p.Description, p.TargetDate, enabled, servants, costumes,
	).Scan(&planID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert plan: %w", err)
	}
	return planID, nil
}

// GetPlanByID retrieves one plan, or (nil, nil) when absent.
func (r *PlanRepository) GetPlanByID(ctx context.Context, planID int64) (*domain.Plan, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+planColumns+` FROM plans WHERE plan_id = $1`, planID)

	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return p, nil
}

// ListPlansByGroupID retrieves every plan in a group. Order is creation
// order; the group's recorded plan order is authoritative for chains.
func (r *PlanRepository) ListPlansByGroupID(ctx context.Context, groupID int64) ([]domain.Plan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+planColumns+` FROM plans WHERE group_id = $1 ORDER BY plan_id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan replaces a plan's contents.
func (r *PlanRepository) UpdatePlan(ctx context.Context, p *domain.Plan) error {
	enabled, err := marshalJSON("enabled", p.Enabled)
	if err != nil {
		return err
	}
	servants, err := marshalJSON("servants", p.Servants)
	if err != nil {
		return err
	}
	costumes, err := marshalJSON("costumes", p.Costumes)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE plans
		SET name = $2, description = $3, target_date = $4, enabled = $5, servants = $6, costumes = $7, updated_at = NOW()
		WHERE plan_id = $1`,
		p.ID, p.Name, p.Description, p.TargetDate, enabled, servants, costumes)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

// DeletePlan removes a plan.
func (r *PlanRepository) DeletePlan(ctx context.Context, planID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE plan_id = $1`, planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

// CreatePlanGroup inserts a new plan group and returns its ID.
func (r *PlanRepository) CreatePlanGroup(ctx context.Context, group *domain.PlanGroup) (int64, error) {
	planOrder, err := marshalJSON("plan_order", group.PlanIDs)
	if err != nil {
		return 0, err
	}

	var groupID int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO plan_groups (account_id, name, plan_order)
		VALUES ($1, $2, $3)
		RETURNING group_id`,
		group.AccountID, group.Name, planOrder,
	).Scan(&groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert plan group: %w", err)
	}
	return groupID, nil
}

// GetPlanGroupByID retrieves one plan group, or (nil, nil) when absent.
func (r *PlanRepository) GetPlanGroupByID(ctx context.Context, groupID int64) (*domain.PlanGroup, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT group_id, account_id, name, plan_order, created_at, updated_at
		FROM plan_groups WHERE group_id = $1`, groupID)

	group, err := scanPlanGroup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan group: %w", err)
	}
	return group, nil
}

// ListPlanGroupsByAccountID retrieves every plan group of an account.
func (r *PlanRepository) ListPlanGroupsByAccountID(ctx context.Context, accountID string) ([]domain.PlanGroup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT group_id, account_id, name, plan_order, created_at, updated_at
		FROM plan_groups WHERE account_id = $1 ORDER BY group_id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.PlanGroup
	for rows.Next() {
		group, err := scanPlanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan group: %w", err)
		}
		groups = append(groups, *group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan groups: %w", err)
	}
	return groups, nil
}

// UpdatePlanGroup replaces a group's name and plan order.
func (r *PlanRepository) UpdatePlanGroup(ctx context.Context, group *domain.PlanGroup) error {
	planOrder, err := marshalJSON("plan_order", group.PlanIDs)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE plan_groups SET name = $2, plan_order = $3, updated_at = NOW() WHERE group_id = $1`,
		group.ID, group.Name, planOrder)
	if err != nil {
		return fmt.Errorf("failed to update plan group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanGroupNotFound
	}
	return nil
}

// DeletePlanGroup removes a group; its plans cascade.
func (r *PlanRepository) DeletePlanGroup(ctx context.Context, groupID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM plan_groups WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete plan group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanGroupNotFound
	}
	return nil
}

func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var (
		p        domain.Plan
		enabled  []byte
		servants []byte
		costumes []byte
	)
	err := row.Scan(&p.ID, &p.GroupID, &p.Name, &p.Description, &p.TargetDate,
		&enabled, &servants, &costumes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON("enabled", enabled, &p.Enabled); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("servants", servants, &p.Servants); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("costumes", costumes, &p.Costumes); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlanGroup(row pgx.Row) (*domain.PlanGroup, error) {
	var (
		group     domain.PlanGroup
		planOrder []byte
	)
	err := row.Scan(&group.ID, &group.AccountID, &group.Name, &planOrder,
		&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON("plan_order", planOrder, &group.PlanIDs); err != nil {
		return nil, err
	}
	return &group, nil
}
