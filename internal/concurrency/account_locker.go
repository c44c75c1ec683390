package concurrency

import (
	"sync"
)

// AccountLocker serializes mutations to a single master account so
// concurrent roster and inventory updates cannot interleave their
// read-modify-write cycles. Locks are created per account ID on first use
// and retained for the life of the process.
type AccountLocker struct {
	locks sync.Map
}

// NewAccountLocker creates an empty AccountLocker.
func NewAccountLocker() *AccountLocker {
	return &AccountLocker{}
}

// Lock blocks until the account's mutex is free and returns the unlock
// function, so call sites can `defer locker.Lock(accountID)()`.
func (l *AccountLocker) Lock(accountID string) (unlock func()) {
	entry, _ := l.locks.LoadOrStore(accountID, &sync.Mutex{})
	mu := entry.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
