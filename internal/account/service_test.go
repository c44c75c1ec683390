package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/event"
	"github.com/alvinquach/fgo-planner-go/internal/repository"
)

type fakeRepo struct {
	accounts map[string]*domain.MasterAccount
	failWith error

	lastTx *fakeTx
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[string]*domain.MasterAccount)}
}

func (f *fakeRepo) CreateAccount(ctx context.Context, account *domain.MasterAccount) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	stored := *account
	f.accounts[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRepo) GetAccountByID(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.accounts[accountID], nil
}

func (f *fakeRepo) ListAccountsByUserID(ctx context.Context, userID string) ([]domain.MasterAccount, error) {
	var out []domain.MasterAccount
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateAccount(ctx context.Context, account *domain.MasterAccount) error {
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteAccount(ctx context.Context, accountID string) error {
	delete(f.accounts, accountID)
	return nil
}

func (f *fakeRepo) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.lastTx = &fakeTx{repo: f}
	return f.lastTx, nil
}

// fakeTx buffers the locked update and applies it on Commit, like the row
// lock in the real repository.
type fakeTx struct {
	repo       *fakeRepo
	pending    *domain.MasterAccount
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.pending != nil {
		stored := *t.pending
		t.repo.accounts[stored.ID] = &stored
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.MasterAccount, error) {
	stored, ok := t.repo.accounts[accountID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (t *fakeTx) UpdateAccount(ctx context.Context, account *domain.MasterAccount) error {
	t.pending = account
	return nil
}

func seedAccount(repo *fakeRepo) *domain.MasterAccount {
	account := &domain.MasterAccount{
		ID:     "acct-1",
		UserID: "user-1",
		Name:   "JP Main",
	}
	repo.accounts[account.ID] = account
	return account
}

func TestService_CreateAccount(t *testing.T) {
	repo := newFakeRepo()
	bus := event.NewMemoryBus()

	var published []event.Event
	bus.Subscribe(event.AccountCreated, func(ctx context.Context, e event.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewService(repo, bus)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, &domain.MasterAccount{UserID: "user-1", Name: "JP Main"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "missing account id is generated")
	assert.Len(t, published, 1)

	t.Run("nil account rejected", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing user id rejected", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, &domain.MasterAccount{Name: "No owner"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo.failWith = errors.New("db down")
		defer func() { repo.failWith = nil }()

		_, err := svc.CreateAccount(ctx, &domain.MasterAccount{UserID: "user-1"})
		assert.Error(t, err)
	})
}

func TestService_GetAccount(t *testing.T) {
	repo := newFakeRepo()
	seedAccount(repo)
	svc := NewService(repo, nil)
	ctx := context.Background()

	account, err := svc.GetAccount(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "JP Main", account.Name)

	_, err = svc.GetAccount(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestService_ListAccounts(t *testing.T) {
	repo := newFakeRepo()
	seedAccount(repo)
	svc := NewService(repo, nil)

	accounts, err := svc.ListAccounts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	accounts, err = svc.ListAccounts(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestService_UpdateAccount(t *testing.T) {
	repo := newFakeRepo()
	account := seedAccount(repo)
	svc := NewService(repo, nil)
	ctx := context.Background()

	account.Name = "JP Alt"
	updated, err := svc.UpdateAccount(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, "JP Alt", updated.Name)

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.UpdateAccount(ctx, &domain.MasterAccount{ID: "missing"})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestService_DeleteAccount(t *testing.T) {
	repo := newFakeRepo()
	seedAccount(repo)
	svc := NewService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.DeleteAccount(ctx, "acct-1"))

	err := svc.DeleteAccount(ctx, "acct-1")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestService_UpdateServants(t *testing.T) {
	repo := newFakeRepo()
	seedAccount(repo)
	svc := NewService(repo, nil)
	ctx := context.Background()

	servants := []domain.MasterServant{
		{InstanceID: 1, GameID: 100100},
		{InstanceID: 2, GameID: 200100},
	}
	require.NoError(t, svc.UpdateServants(ctx, "acct-1", servants))
	assert.Len(t, repo.accounts["acct-1"].Servants, 2)
	require.NotNil(t, repo.lastTx)
	assert.True(t, repo.lastTx.committed, "roster write commits the row-lock transaction")

	t.Run("duplicate instance ids rejected", func(t *testing.T) {
		repo.lastTx = nil
		dupes := []domain.MasterServant{
			{InstanceID: 1, GameID: 100100},
			{InstanceID: 1, GameID: 200100},
		}
		err := svc.UpdateServants(ctx, "acct-1", dupes)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, repo.lastTx, "validation failures never open a transaction")
	})

	t.Run("unknown account", func(t *testing.T) {
		err := svc.UpdateServants(ctx, "missing", servants)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
		require.NotNil(t, repo.lastTx)
		assert.True(t, repo.lastTx.rolledBack, "missing account rolls the transaction back")
	})
}

func TestService_UpdateItems(t *testing.T) {
	repo := newFakeRepo()
	account := seedAccount(repo)
	account.Servants = []domain.MasterServant{{InstanceID: 1, GameID: 100100}}
	svc := NewService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.UpdateItems(ctx, "acct-1", map[int]int{6501: 30}, 1_000_000))
	assert.Equal(t, 30, repo.accounts["acct-1"].Items[6501])
	assert.Equal(t, int64(1_000_000), repo.accounts["acct-1"].QP)
	require.NotNil(t, repo.lastTx)
	assert.True(t, repo.lastTx.committed, "inventory write commits the row-lock transaction")
	assert.Len(t, repo.accounts["acct-1"].Servants, 1, "inventory write keeps the roster intact")

	t.Run("negative qp rejected", func(t *testing.T) {
		err := svc.UpdateItems(ctx, "acct-1", nil, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		err := svc.UpdateItems(ctx, "acct-1", map[int]int{6501: -5}, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
