package domain

import "time"

// PlanEnabledFlags are the per-axis inclusion switches carried by a plan and
// by each plan servant. An axis contributes to a computation only when it is
// enabled at both levels.
type PlanEnabledFlags struct {
	Ascensions   bool `json:"ascensions"`
	Skills       bool `json:"skills"`
	AppendSkills bool `json:"append_skills"`
	Costumes     bool `json:"costumes"`
}

// AllPlanAxesEnabled returns flags with every axis switched on, the default
// for newly created plans.
func AllPlanAxesEnabled() PlanEnabledFlags {
	return PlanEnabledFlags{
		Ascensions:   true,
		Skills:       true,
		AppendSkills: true,
		Costumes:     true,
	}
}

// PlanServant is one per-servant directive inside a plan: which owned servant
// it applies to, the recorded current state, and the target state to reach.
type PlanServant struct {
	InstanceID int64               `json:"instance_id"`
	Enabled    bool                `json:"enabled"`
	Axes       PlanEnabledFlags    `json:"axes"`
	Current    ServantEnhancements `json:"current"`
	Target     ServantEnhancements `json:"target"`
}

// Plan is an ordered set of servant targets within a plan group. Costumes is
// the plan-level target costume set; nil means every costume is targeted.
type Plan struct {
	ID          int64            `json:"plan_id" db:"plan_id"`
	GroupID     int64            `json:"group_id" db:"group_id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description,omitempty" db:"description"`
	TargetDate  *time.Time       `json:"target_date,omitempty" db:"target_date"`
	Enabled     PlanEnabledFlags `json:"enabled"`
	Servants    []PlanServant    `json:"servants"`
	Costumes    []int            `json:"costumes,omitempty"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// PlanGroup is a chronologically ordered chain of plans for one account.
// PlanIDs is ordered oldest first; a later plan's baseline for a servant is
// the previous plan's target for that servant.
type PlanGroup struct {
	ID        int64     `json:"group_id" db:"group_id"`
	AccountID string    `json:"account_id" db:"account_id"`
	Name      string    `json:"name" db:"name"`
	PlanIDs   []int64   `json:"plan_ids"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
