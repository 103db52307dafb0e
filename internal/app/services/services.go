package services

import (
	"github.com/eventum-app/eventum/internal/app/repositories"
	"github.com/eventum-app/eventum/internal/pkg/auth"
)

// Services holds all service instances
type Services struct {
	Event       *EventService
	Request     *RequestService
	User        *UserService
	Auth        *AuthService
	Category    *CategoryService
	Compilation *CompilationService
	Aggregator  *StatsAggregator
}

// NewServices wires all services over the repositories and the hit counter
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, hits HitCounter) *Services {
	aggregator := NewStatsAggregator(repos.Request, hits)

	return &Services{
		Event:       NewEventService(repos.Event, repos.Request, repos.User, repos.Category, aggregator, hits),
		Request:     NewRequestService(repos.Request, repos.Event, repos.User),
		User:        NewUserService(repos.User),
		Auth:        NewAuthService(repos.User, jwtService),
		Category:    NewCategoryService(repos.Category),
		Compilation: NewCompilationService(repos.Compilation, repos.Event, aggregator),
		Aggregator:  aggregator,
	}
}
