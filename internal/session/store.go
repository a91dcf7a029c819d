package session

import "context"

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	// Get returns the stored session, or a fresh empty one when none exists.
	Get(ctx context.Context, userID, day string) (Session, error)
	Put(ctx context.Context, s Session) error
	Reset(ctx context.Context, userID, day string) error
	// Lock serialises clock workflows of one user. It fails with
	// ErrWorkflowInProgress when another workflow holds the lock.
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}
