package handler

import (
	"net/http"
	"time"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/logger"
	"github.com/alvinquach/fgo-planner-go/internal/plan"
)

type CreatePlanRequest struct {
	GroupID     int64                    `json:"group_id" validate:"required,gt=0"`
	Name        string                   `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Description string                   `json:"description" validate:"max=1000"`
	TargetDate  *time.Time               `json:"target_date"`
	Enabled     *domain.PlanEnabledFlags `json:"enabled"`
	Servants    []domain.PlanServant     `json:"servants"`
	Costumes    []int                    `json:"costumes"`
}

// HandleCreatePlan creates a plan at the end of a plan group's chain
// @Summary Create plan
// @Description Create a plan appended to the end of its group's chain
// @Tags plan
// @Accept json
// @Produce json
// @Param request body CreatePlanRequest true "Plan details"
// @Success 201 {object} domain.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan [post]
func HandleCreatePlan(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreatePlanRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create plan"); err != nil {
			return
		}

		enabled := domain.AllPlanAxesEnabled()
		if req.Enabled != nil {
			enabled = *req.Enabled
		}

		created, err := svc.CreatePlan(r.Context(), &domain.Plan{
			GroupID:     req.GroupID,
			Name:        req.Name,
			Description: req.Description,
			TargetDate:  req.TargetDate,
			Enabled:     enabled,
			Servants:    req.Servants,
			Costumes:    req.Costumes,
		})
		if err != nil {
			respondServiceError(w, r, "Create plan", err)
			return
		}

		log.Info("Plan created", "plan_id", created.ID, "group_id", created.GroupID)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGetPlan retrieves a plan by ID
// @Summary Get plan
// @Description Retrieve a plan with its servant targets
// @Tags plan
// @Produce json
// @Param planID path int true "Plan ID"
// @Success 200 {object} domain.Plan
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan/{planID} [get]
func HandleGetPlan(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planID, ok := GetPathParamInt64(r, w, "planID")
		if !ok {
			return
		}

		p, err := svc.GetPlan(r.Context(), planID)
		if err != nil {
			respondServiceError(w, r, "Get plan", err)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}

type UpdatePlanRequest struct {
	Name        string                   `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Description string                   `json:"description" validate:"max=1000"`
	TargetDate  *time.Time               `json:"target_date"`
	Enabled     *domain.PlanEnabledFlags `json:"enabled"`
	Servants    []domain.PlanServant     `json:"servants"`
	Costumes    []int                    `json:"costumes"`
}

// HandleUpdatePlan updates a plan's contents
// @Summary Update plan
// @Description Update a plan's name, targets, and axis switches
// @Tags plan
// @Accept json
// @Produce json
// @Param planID path int true "Plan ID"
// @Param request body UpdatePlanRequest true "Plan details"
// @Success 200 {object} domain.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan/{planID} [put]
func HandleUpdatePlan(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		planID, ok := GetPathParamInt64(r, w, "planID")
		if !ok {
			return
		}

		var req UpdatePlanRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update plan"); err != nil {
			return
		}

		current, err := svc.GetPlan(r.Context(), planID)
		if err != nil {
			respondServiceError(w, r, "Update plan", err)
			return
		}

		current.Name = req.Name
		current.Description = req.Description
		current.TargetDate = req.TargetDate
		current.Servants = req.Servants
		current.Costumes = req.Costumes
		if req.Enabled != nil {
			current.Enabled = *req.Enabled
		}

		updated, err := svc.UpdatePlan(r.Context(), current)
		if err != nil {
			respondServiceError(w, r, "Update plan", err)
			return
		}

		log.Info("Plan updated", "plan_id", updated.ID)
		respondJSON(w, http.StatusOK, updated)
	}
}

// HandleDeletePlan deletes a plan and removes it from its group's chain
// @Summary Delete plan
// @Description Delete a plan and remove it from the group ordering
// @Tags plan
// @Produce json
// @Param planID path int true "Plan ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan/{planID} [delete]
func HandleDeletePlan(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		planID, ok := GetPathParamInt64(r, w, "planID")
		if !ok {
			return
		}

		if err := svc.DeletePlan(r.Context(), planID); err != nil {
			respondServiceError(w, r, "Delete plan", err)
			return
		}

		log.Info("Plan deleted", "plan_id", planID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlanDeletedSuccess})
	}
}

type CreatePlanGroupRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64"`
	Name      string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleCreatePlanGroup creates a new plan group for an account
// @Summary Create plan group
// @Description Create an empty plan group attached to an account
// @Tags plan
// @Accept json
// @Produce json
// @Param request body CreatePlanGroupRequest true "Group details"
// @Success 201 {object} domain.PlanGroup
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan-group [post]
func HandleCreatePlanGroup(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreatePlanGroupRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create plan group"); err != nil {
			return
		}

		created, err := svc.CreatePlanGroup(r.Context(), &domain.PlanGroup{
			AccountID: req.AccountID,
			Name:      req.Name,
		})
		if err != nil {
			respondServiceError(w, r, "Create plan group", err)
			return
		}

		log.Info("Plan group created", "group_id", created.ID, "account_id", created.AccountID)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGetPlanGroup retrieves a plan group by ID
// @Summary Get plan group
// @Description Retrieve a plan group with its ordered plan chain
// @Tags plan
// @Produce json
// @Param groupID path int true "Group ID"
// @Success 200 {object} domain.PlanGroup
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan-group/{groupID} [get]
func HandleGetPlanGroup(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, ok := GetPathParamInt64(r, w, "groupID")
		if !ok {
			return
		}

		group, err := svc.GetPlanGroup(r.Context(), groupID)
		if err != nil {
			respondServiceError(w, r, "Get plan group", err)
			return
		}

		respondJSON(w, http.StatusOK, group)
	}
}

// HandleDeletePlanGroup deletes a plan group and its plans
// @Summary Delete plan group
// @Description Delete a plan group together with every plan in its chain
// @Tags plan
// @Produce json
// @Param groupID path int true "Group ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan-group/{groupID} [delete]
func HandleDeletePlanGroup(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		groupID, ok := GetPathParamInt64(r, w, "groupID")
		if !ok {
			return
		}

		if err := svc.DeletePlanGroup(r.Context(), groupID); err != nil {
			respondServiceError(w, r, "Delete plan group", err)
			return
		}

		log.Info("Plan group deleted", "group_id", groupID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlanGroupDeletedSuccess})
	}
}

type ListPlanGroupsResponse struct {
	Groups []domain.PlanGroup `json:"groups"`
}

// HandleListPlanGroups lists plan groups for an account
// @Summary List plan groups
// @Description List all plan groups belonging to an account
// @Tags plan
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} ListPlanGroupsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan-group [get]
func HandleListPlanGroups(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		groups, err := svc.ListPlanGroups(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "List plan groups", err)
			return
		}

		respondJSON(w, http.StatusOK, ListPlanGroupsResponse{Groups: groups})
	}
}
