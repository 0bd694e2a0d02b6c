package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dotbio/dotbio-api/internal/database/postgres"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Cases     repository.Cases
	Inventory repository.Inventory
	Feed      repository.Feed
	Sessions  repository.Sessions
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Cases:     postgres.NewCasesRepository(dbPool),
		Inventory: postgres.NewInventoryRepository(dbPool),
		Feed:      postgres.NewFeedRepository(dbPool),
		Sessions:  postgres.NewSessionsRepository(dbPool),
	}
}
