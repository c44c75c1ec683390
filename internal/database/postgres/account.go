package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/repository"
)

// AccountRepository implements repository.Account for PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) repository.Account {
	return &AccountRepository{pool: pool}
}

const accountColumns = `account_id, user_id, name, friend_id, qp, items, servants, costumes, soundtracks, updated_at`

// CreateAccount inserts a new master account and returns its ID.
func (r *AccountRepository) CreateAccount(ctx context.Context, account *domain.MasterAccount) (string, error) {
	items, err := marshalJSON("items", account.Items)
	if err != nil {
		return "", err
	}
	servants, err := marshalJSON("servants", account.Servants)
	if err != nil {
		return "", err
	}
	costumes, err := marshalJSON("costumes", account.Costumes)
	if err != nil {
		return "", err
	}
	soundtracks, err := marshalJSON("soundtracks", account.Soundtracks)
	if err != nil {
		return "", err
	}

	var accountID string
	err = r.pool.QueryRow(ctx, `
		INSERT INTO master_accounts (account_id, user_id, name, friend_id, qp, items, servants, costumes, soundtracks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING account_id`,
		account.ID, account.UserID, account.Name, account.FriendID, account.QP,
		items, servants, costumes, soundtracks,
	).Scan(&accountID)
	if err != nil {
		return "", fmt.Errorf("failed to insert account: %w", err)
	}
	return accountID, nil
}

// GetAccountByID retrieves a master account, or (nil, nil) when absent.
func (r *AccountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM master_accounts WHERE account_id = $1`, accountID)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccountsByUserID retrieves every master account owned by a user.
func (r *AccountRepository) ListAccountsByUserID(ctx context.Context, userID string) ([]domain.MasterAccount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM master_accounts WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.MasterAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount replaces an account's top-level fields. Roster and inventory
// state is written through the account transaction instead.
func (r *AccountRepository) UpdateAccount(ctx context.Context, account *domain.MasterAccount) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE master_accounts
		SET name = $2, friend_id = $3, qp = $4, updated_at = NOW()
		WHERE account_id = $1`,
		account.ID, account.Name, account.FriendID, account.QP)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount removes an account; plan groups and plans cascade.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM master_accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// BeginTx starts an account transaction. Roster and inventory writes go
// through the transaction so the account row stays locked for the whole
// read-modify-write cycle.
func (r *AccountRepository) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &accountTx{tx: tx}, nil
}

type accountTx struct {
	tx pgx.Tx
}

func (t *accountTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *accountTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// GetAccountForUpdate locks and retrieves an account row inside the transaction.
func (t *accountTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM master_accounts WHERE account_id = $1 FOR UPDATE`, accountID)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account for update: %w", err)
	}
	return account, nil
}

// UpdateAccount writes the full account state inside the transaction.
func (t *accountTx) UpdateAccount(ctx context.Context, account *domain.MasterAccount) error {
	items, err := marshalJSON("items", account.Items)
	if err != nil {
		return err
	}
	servants, err := marshalJSON("servants", account.Servants)
	if err != nil {
		return err
	}
	costumes, err := marshalJSON("costumes", account.Costumes)
	if err != nil {
		return err
	}
	soundtracks, err := marshalJSON("soundtracks", account.Soundtracks)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE master_accounts
		SET name = $2, friend_id = $3, qp = $4, items = $5, servants = $6, costumes = $7, soundtracks = $8, updated_at = NOW()
		WHERE account_id = $1`,
		account.ID, account.Name, account.FriendID, account.QP, items, servants, costumes, soundtracks)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// scanAccount decodes one master account row.
func scanAccount(row pgx.Row) (*domain.MasterAccount, error) {
	var (
		account     domain.MasterAccount
		items       []byte
		servants    []byte
		costumes    []byte
		soundtracks []byte
		updatedAt   time.Time
	)
	err := row.Scan(&account.ID, &account.UserID, &account.Name, &account.FriendID,
		&account.QP, &items, &servants, &costumes, &soundtracks, &updatedAt)
	if err != nil {
		return nil, err
	}

	account.Items = make(map[int]int)
	if err := unmarshalJSON("items", items, &account.Items); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("servants", servants, &account.Servants); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("costumes", costumes, &account.Costumes); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("soundtracks", soundtracks, &account.Soundtracks); err != nil {
		return nil, err
	}
	account.UpdatedAt = updatedAt
	return &account, nil
}
