package unitofwork

import "context"

// RepositoryFactory opens a unit of work per request.
// The chat path uses it for the config, profile and transcript reads and writes;
// the event consumer uses it to persist system logs.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
