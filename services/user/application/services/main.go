package services

import (
	"fmt"

	"github.com/theEquinoxDev/LocalLoop/pkg/app"
	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/repositories"
	"github.com/theEquinoxDev/LocalLoop/services/user/infrastructure/persistence/memory"
	"github.com/theEquinoxDev/LocalLoop/services/user/infrastructure/persistence/mongodb"
	"github.com/theEquinoxDev/LocalLoop/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	User *UserService
}

// New wires all user application services with infrastructure from the Application container.
func New(a *app.Application) (*Services, error) {
	repo, err := newRepository(a)
	if err != nil {
		return nil, err
	}
	return &Services{
		User: NewUserService(repo, a.Tokens, a.Metrics, a.Logger.With("context", "user")),
	}, nil
}

func newRepository(a *app.Application) (repositories.UserRepository, error) {
	switch a.Config.StorageDriver {
	case config.StoragePostgres:
		if a.Db == nil {
			return nil, fmt.Errorf("user services: postgres driver selected without a database")
		}
		return postgres.NewUserRepository(a.Db), nil
	case config.StorageMongo:
		if a.Mongo == nil {
			return nil, fmt.Errorf("user services: mongo driver selected without a client")
		}
		return mongodb.NewUserRepository(a.Mongo.Users()), nil
	case config.StorageMemory:
		return memory.NewUserRepository(), nil
	default:
		return nil, fmt.Errorf("user services: unknown storage driver %q", a.Config.StorageDriver)
	}
}
