// Package account manages master accounts: the player's roster of owned
// servants, item inventory, QP balance, and unlocked costumes.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alvinquach/fgo-planner-go/internal/concurrency"
	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/event"
	"github.com/alvinquach/fgo-planner-go/internal/logger"
	"github.com/alvinquach/fgo-planner-go/internal/repository"
)

// Repository defines the interface for data access required by the account service
type Repository interface {
	CreateAccount(ctx context.Context, account *domain.MasterAccount) (string, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.MasterAccount, error)
	ListAccountsByUserID(ctx context.Context, userID string) ([]domain.MasterAccount, error)
	UpdateAccount(ctx context.Context, account *domain.MasterAccount) error
	DeleteAccount(ctx context.Context, accountID string) error

	BeginTx(ctx context.Context) (repository.AccountTx, error)
}

// Service defines the interface for master account operations
type Service interface {
	CreateAccount(ctx context.Context, account *domain.MasterAccount) (*domain.MasterAccount, error)
	GetAccount(ctx context.Context, accountID string) (*domain.MasterAccount, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.MasterAccount, error)
	UpdateAccount(ctx context.Context, account *domain.MasterAccount) (*domain.MasterAccount, error)
	DeleteAccount(ctx context.Context, accountID string) error

	UpdateServants(ctx context.Context, accountID string, servants []domain.MasterServant) error
	UpdateItems(ctx context.Context, accountID string, items map[int]int, qp int64) error
}

type service struct {
	repo     Repository
	eventBus event.Bus
	locks    *concurrency.AccountLocker
}

// NewService creates a new account service
func NewService(repo Repository, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		eventBus: eventBus,
		locks:    concurrency.NewAccountLocker(),
	}
}

// lockAccount serializes mutations per account so concurrent roster and
// inventory writes cannot interleave. Returns the unlock function.
func (s *service) lockAccount(accountID string) func() {
	return s.locks.Lock(accountID)
}

// CreateAccount persists a new master account. A missing ID is generated.
func (s *service) CreateAccount(ctx context.Context, account *domain.MasterAccount) (*domain.MasterAccount, error) {
	log := logger.FromContext(ctx)

	if account == nil {
		return nil, fmt.Errorf("%w: nil account", domain.ErrInvalidInput)
	}
	if account.UserID == "" {
		return nil, fmt.Errorf("%w: account requires a user id", domain.ErrInvalidInput)
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	accountID, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.ID = accountID

	s.publish(ctx, event.NewAccountChangedEvent(event.AccountCreated, accountID, account.UserID))
	log.Info("Account created", "account_id", accountID, "user_id", account.UserID)
	return account, nil
}

// GetAccount returns one master account by ID.
func (s *service) GetAccount(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%s: %w", accountID, domain.ErrAccountNotFound)
	}
	return account, nil
}

// ListAccounts returns every master account owned by a user.
func (s *service) ListAccounts(ctx context.Context, userID string) ([]domain.MasterAccount, error) {
	accounts, err := s.repo.ListAccountsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount replaces an account's top-level fields.
func (s *service) UpdateAccount(ctx context.Context, account *domain.MasterAccount) (*domain.MasterAccount, error) {
	log := logger.FromContext(ctx)

	if account == nil {
		return nil, fmt.Errorf("%w: nil account", domain.ErrInvalidInput)
	}
	defer s.lockAccount(account.ID)()

	existing, err := s.GetAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.publish(ctx, event.NewAccountChangedEvent(event.AccountUpdated, account.ID, existing.UserID))
	log.Info("Account updated", "account_id", account.ID)
	return account, nil
}

// DeleteAccount removes an account and everything hanging off it.
func (s *service) DeleteAccount(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)
	defer s.lockAccount(accountID)()

	existing, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.publish(ctx, event.NewAccountChangedEvent(event.AccountDeleted, accountID, existing.UserID))
	log.Info("Account deleted", "account_id", accountID)
	return nil
}

// UpdateServants replaces the account's roster snapshot. The write runs in a
// transaction holding the account row lock, so concurrent roster and
// inventory updates from other processes cannot interleave either.
func (s *service) UpdateServants(ctx context.Context, accountID string, servants []domain.MasterServant) error {
	log := logger.FromContext(ctx)
	defer s.lockAccount(accountID)()

	seen := make(map[int64]bool, len(servants))
	for _, servant := range servants {
		if seen[servant.InstanceID] {
			return fmt.Errorf("%w: duplicate instance id %d", domain.ErrInvalidInput, servant.InstanceID)
		}
		seen[servant.InstanceID] = true
	}

	existing, err := s.updateLocked(ctx, accountID, func(account *domain.MasterAccount) {
		account.Servants = servants
	})
	if err != nil {
		return fmt.Errorf("failed to update servants: %w", err)
	}

	s.publish(ctx, event.NewAccountChangedEvent(event.AccountUpdated, accountID, existing.UserID))
	log.Info("Servants updated", "account_id", accountID, "count", len(servants))
	return nil
}

// UpdateItems replaces the account's item inventory and QP balance.
func (s *service) UpdateItems(ctx context.Context, accountID string, items map[int]int, qp int64) error {
	log := logger.FromContext(ctx)
	defer s.lockAccount(accountID)()

	if qp < 0 {
		return fmt.Errorf("%w: negative qp", domain.ErrInvalidInput)
	}
	for itemID, quantity := range items {
		if quantity < 0 {
			return fmt.Errorf("%w: negative quantity for item %d", domain.ErrInvalidInput, itemID)
		}
	}

	existing, err := s.updateLocked(ctx, accountID, func(account *domain.MasterAccount) {
		account.Items = items
		account.QP = qp
	})
	if err != nil {
		return fmt.Errorf("failed to update items: %w", err)
	}

	s.publish(ctx, event.NewAccountChangedEvent(event.AccountUpdated, accountID, existing.UserID))
	log.Info("Items updated", "account_id", accountID, "items", len(items))
	return nil
}

// updateLocked loads the account under a row lock, applies mutate, and writes
// the result back in the same transaction. Returns the account as written.
func (s *service) updateLocked(ctx context.Context, accountID string, mutate func(*domain.MasterAccount)) (*domain.MasterAccount, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%s: %w", accountID, domain.ErrAccountNotFound)
	}

	mutate(account)

	if err := tx.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", evt.Type, "error", err)
	}
}
