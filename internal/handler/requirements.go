package handler

import (
	"net/http"

	"github.com/alvinquach/fgo-planner-go/internal/logger"
	"github.com/alvinquach/fgo-planner-go/internal/plan"
)

// computeOptionsFromQuery builds compute options from optional query
// parameters, starting from the defaults (every axis included).
func computeOptionsFromQuery(r *http.Request) *plan.ComputeOptions {
	opts := plan.DefaultComputeOptions()
	opts.IncludeAscensions = GetOptionalBoolParam(r, "include_ascensions", opts.IncludeAscensions)
	opts.IncludeSkills = GetOptionalBoolParam(r, "include_skills", opts.IncludeSkills)
	opts.IncludeAppendSkills = GetOptionalBoolParam(r, "include_append_skills", opts.IncludeAppendSkills)
	opts.IncludeCostumes = GetOptionalBoolParam(r, "include_costumes", opts.IncludeCostumes)
	opts.ExcludeLores = GetOptionalBoolParam(r, "exclude_lores", opts.ExcludeLores)
	return &opts
}

// HandleComputePlanRequirements computes material requirements for a plan
// @Summary Compute plan requirements
// @Description Compute material and QP requirements for a plan, with preceding plans in its group chain folded into each servant's baseline
// @Tags requirements
// @Produce json
// @Param planID path int true "Plan ID"
// @Param account_id query string true "Account ID"
// @Param include_ascensions query bool false "Include ascension costs (default true)"
// @Param include_skills query bool false "Include skill costs (default true)"
// @Param include_append_skills query bool false "Include append skill costs (default true)"
// @Param include_costumes query bool false "Include costume costs (default true)"
// @Param exclude_lores query bool false "Skip the final max-level skill step (default false)"
// @Success 200 {object} plan.PlanRequirementsResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plan/{planID}/requirements [get]
func HandleComputePlanRequirements(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		planID, ok := GetPathParamInt64(r, w, "planID")
		if !ok {
			return
		}
		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		result, err := svc.ComputeRequirements(r.Context(), accountID, planID, computeOptionsFromQuery(r))
		if err != nil {
			respondServiceError(w, r, "Compute plan requirements", err)
			return
		}

		log.Debug("Plan requirements computed",
			"plan_id", planID,
			"account_id", accountID,
			"servants", len(result.Servants))

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleComputeServantRequirements computes the cost to fully enhance one servant
// @Summary Compute servant max requirements
// @Description Compute the remaining cost to bring one owned servant to maximum ascension and skill levels
// @Tags requirements
// @Produce json
// @Param accountID path string true "Account ID"
// @Param instanceID path int true "Servant instance ID"
// @Param include_ascensions query bool false "Include ascension costs (default true)"
// @Param include_skills query bool false "Include skill costs (default true)"
// @Param include_append_skills query bool false "Include append skill costs (default true)"
// @Param include_costumes query bool false "Include costume costs (default true)"
// @Param exclude_lores query bool false "Skip the final max-level skill step (default false)"
// @Success 200 {object} plan.Requirements
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account/{accountID}/servants/{instanceID}/requirements [get]
func HandleComputeServantRequirements(svc plan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetPathParam(r, w, "accountID")
		if !ok {
			return
		}
		instanceID, ok := GetPathParamInt64(r, w, "instanceID")
		if !ok {
			return
		}

		result, err := svc.ComputeServantRequirements(r.Context(), accountID, instanceID, computeOptionsFromQuery(r))
		if err != nil {
			respondServiceError(w, r, "Compute servant requirements", err)
			return
		}

		log.Debug("Servant requirements computed",
			"account_id", accountID,
			"instance_id", instanceID,
			"items", len(result.Items))

		respondJSON(w, http.StatusOK, result)
	}
}
