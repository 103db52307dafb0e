package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	Event       *EventRepository
	Request     *RequestRepository
	User        *UserRepository
	Category    *CategoryRepository
	Compilation *CompilationRepository
}

// NewRepositories creates all repositories over one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Event:       NewEventRepository(db),
		Request:     NewRequestRepository(db),
		User:        NewUserRepository(db),
		Category:    NewCategoryRepository(db),
		Compilation: NewCompilationRepository(db),
	}
}
