package repository

import "context"

// Tx is the common contract for transactional repository handles.
// Implementations must make every write performed through the handle
// atomic at Commit.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
