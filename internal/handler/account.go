package handler

import (
	"net/http"

	"github.com/alvinquach/fgo-planner-go/internal/account"
	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/logger"
)

type CreateAccountRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	Name     string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	FriendID string `json:"friend_id" validate:"friendid"`
}

// HandleCreateAccount creates a new master account
// @Summary Create account
// @Description Create a new master account for a user
// @Tags account
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} domain.MasterAccount
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account [post]
func HandleCreateAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create account"); err != nil {
			return
		}

		created, err := svc.CreateAccount(r.Context(), &domain.MasterAccount{
			UserID:   req.UserID,
			Name:     req.Name,
			FriendID: req.FriendID,
		})
		if err != nil {
			respondServiceError(w, r, "Create account", err)
			return
		}

		log.Info("Account created", "account_id", created.ID, "user_id", created.UserID)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGetAccount retrieves a master account by ID
// @Summary Get account
// @Description Retrieve a master account with its roster and inventory
// @Tags account
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} domain.MasterAccount
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account/{accountID} [get]
func HandleGetAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetPathParam(r, w, "accountID")
		if !ok {
			return
		}

		acct, err := svc.GetAccount(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "Get account", err)
			return
		}

		respondJSON(w, http.StatusOK, acct)
	}
}

type ListAccountsResponse struct {
	Accounts []domain.MasterAccount `json:"accounts"`
}

// HandleListAccounts lists master accounts for a user
// @Summary List accounts
// @Description List all master accounts belonging to a user
// @Tags account
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} ListAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account [get]
func HandleListAccounts(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		accounts, err := svc.ListAccounts(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List accounts", err)
			return
		}

		respondJSON(w, http.StatusOK, ListAccountsResponse{Accounts: accounts})
	}
}

type UpdateAccountRequest struct {
	Name     string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	FriendID string `json:"friend_id" validate:"friendid"`
}

// HandleUpdateAccount updates account display fields
// @Summary Update account
// @Description Update an account's name and friend code
// @Tags account
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param request body UpdateAccountRequest true "Account details"
// @Success 200 {object} domain.MasterAccount
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account/{accountID} [put]
func HandleUpdateAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetPathParam(r, w, "accountID")
		if !ok {
			return
		}

		var req UpdateAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update account"); err != nil {
			return
		}

		current, err := svc.GetAccount(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "Update account", err)
			return
		}

		current.Name = req.Name
		current.FriendID = req.FriendID

		updated, err := svc.UpdateAccount(r.Context(), current)
		if err != nil {
			respondServiceError(w, r, "Update account", err)
			return
		}

		log.Info("Account updated", "account_id", updated.ID)
		respondJSON(w, http.StatusOK, updated)
	}
}

// HandleDeleteAccount deletes a master account
// @Summary Delete account
// @Description Delete a master account and all of its plan groups
// @Tags account
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account/{accountID} [delete]
func HandleDeleteAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetPathParam(r, w, "accountID")
		if !ok {
			return
		}

		if err := svc.DeleteAccount(r.Context(), accountID); err != nil {
			respondServiceError(w, r, "Delete account", err)
			return
		}

		log.Info("Account deleted", "account_id", accountID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAccountDeletedSuccess})
	}
}

type UpdateServantsRequest struct {
	Servants []domain.MasterServant `json:"servants" validate:"required"`
}

// HandleUpdateServants replaces the servant roster of an account
// @Summary Update servants
// @Description Replace the account's servant roster
// @Tags account
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param request body UpdateServantsRequest true "Servant roster"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account/{accountID}/servants [put]
func HandleUpdateServants(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetPathParam(r, w, "accountID")
		if !ok {
			return
		}

		var req UpdateServantsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update servants"); err != nil {
			return
		}

		if err := svc.UpdateServants(r.Context(), accountID, req.Servants); err != nil {
			respondServiceError(w, r, "Update servants", err)
			return
		}

		log.Info("Servants updated", "account_id", accountID, "count", len(req.Servants))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgServantsUpdatedSuccess})
	}
}

type UpdateItemsRequest struct {
	Items map[int]int `json:"items" validate:"required"`
	QP    int64       `json:"qp" validate:"gte=0"`
}

// HandleUpdateItems replaces the item inventory and QP balance of an account
// @Summary Update items
// @Description Replace the account's item inventory and QP balance
// @Tags account
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param request body UpdateItemsRequest true "Item inventory"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /account/{accountID}/items [put]
func HandleUpdateItems(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetPathParam(r, w, "accountID")
		if !ok {
			return
		}

		var req UpdateItemsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update items"); err != nil {
			return
		}

		if err := svc.UpdateItems(r.Context(), accountID, req.Items, req.QP); err != nil {
			respondServiceError(w, r, "Update items", err)
			return
		}

		log.Info("Items updated", "account_id", accountID, "count", len(req.Items))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemsUpdatedSuccess})
	}
}
