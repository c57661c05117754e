package services

import (
	"fmt"

	"github.com/theEquinoxDev/LocalLoop/pkg/app"
	"github.com/theEquinoxDev/LocalLoop/pkg/cache"
	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/repositories"
	"github.com/theEquinoxDev/LocalLoop/services/item/infrastructure/persistence/memory"
	"github.com/theEquinoxDev/LocalLoop/services/item/infrastructure/persistence/mongodb"
	"github.com/theEquinoxDev/LocalLoop/services/item/infrastructure/persistence/postgres"
	userservices "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the
// Application container. Rewards and owner projections go through users.
func New(a *app.Application, users *userservices.UserService) (*Services, error) {
	parties := userParties{users: users}
	repo, err := newRepository(a, parties)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithMetrics(a.Metrics),
		WithUploadTimeout(a.Config.ImageUploadTimeout),
	}
	if a.ObjectStore != nil {
		opts = append(opts, WithImageStore(a.ObjectStore))
	}
	if a.Redis != nil {
		opts = append(opts, WithCache(cache.NewItemCache(a.Redis)))
	}

	return &Services{
		Item: NewItemService(repo, userLedger{users: users}, a.Logger.With("context", "item"), opts...),
	}, nil
}

func newRepository(a *app.Application, parties repositories.PartyResolver) (repositories.ItemRepository, error) {
	switch a.Config.StorageDriver {
	case config.StoragePostgres:
		if a.Db == nil {
			return nil, fmt.Errorf("item services: postgres driver selected without a database")
		}
		return postgres.NewItemRepository(a.Db, a.EventBus), nil
	case config.StorageMongo:
		if a.Mongo == nil {
			return nil, fmt.Errorf("item services: mongo driver selected without a client")
		}
		return mongodb.NewItemRepository(a.Mongo.Items(), parties), nil
	case config.StorageMemory:
		return memory.NewItemRepository(parties), nil
	default:
		return nil, fmt.Errorf("item services: unknown storage driver %q", a.Config.StorageDriver)
	}
}
