// Package storage defines what the application persists: scan job records,
// the credit ledger, account membership and the background job queue. The
// queue shares the database so that a job can be enqueued atomically with the
// record and the debit it belongs to.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is every capability available on a handle, inside or outside a
// transaction.
type AllStorage interface {
	ScanJobStorage
	CreditStorage
	AccountStorage
	JobStorage
}

// TxStorage is a handle bound to one transaction. It must not be used after
// Commit or Rollback.
type TxStorage interface {
	AllStorage

	Commit() error
	Rollback() error
}

// Storage is the root handle. Operations on it run in their own implicit
// transaction; WithTx groups several of them.
type Storage interface {
	AllStorage

	// Close releases the connection pool.
	Close() error

	// Begin starts a transaction. Transactions do not nest.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb in a transaction that commits when cb returns nil and
	// rolls back otherwise. A rejected debit or a failed enqueue inside cb
	// therefore leaves no job record behind.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
