package repository

import (
	"context"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
)

// Account defines the interface for master account persistence
type Account interface {
	CreateAccount(ctx context.Context, account *domain.MasterAccount) (string, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.MasterAccount, error)
	ListAccountsByUserID(ctx context.Context, userID string) ([]domain.MasterAccount, error)
	UpdateAccount(ctx context.Context, account *domain.MasterAccount) error
	DeleteAccount(ctx context.Context, accountID string) error

	BeginTx(ctx context.Context) (AccountTx, error)
}

// AccountTx defines the interface for account transactions
type AccountTx interface {
	Tx
	GetAccountForUpdate(ctx context.Context, accountID string) (*domain.MasterAccount, error)
	UpdateAccount(ctx context.Context, account *domain.MasterAccount) error
}
