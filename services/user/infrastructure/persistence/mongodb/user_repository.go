// Package mongodb implements the user store on a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	userdomain "github.com/theEquinoxDev/LocalLoop/services/user/domain"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
	domainsvcs "github.com/theEquinoxDev/LocalLoop/services/user/domain/services"
)

// userDocument is the stored shape. IDs are kept as canonical UUID strings.
type userDocument struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Email         string    `bson:"email"`
	Phone         string    `bson:"phone"`
	PasswordHash  string    `bson:"passwordHash"`
	Points        int       `bson:"points"`
	Level         int       `bson:"level"`
	ItemsPosted   int       `bson:"itemsPosted"`
	ItemsClaimed  int       `bson:"itemsClaimed"`
	ItemsReturned int       `bson:"itemsReturned"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// UserRepository implements repositories.UserRepository on a users collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a repository over coll. The unique email index
// is created by database.Mongo.CreateIndexes.
func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	doc := toDocument(u)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return userdomain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: models.NormalizeEmail(email)}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromDocument(doc)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strs := make(bson.A, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: strs}}}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*models.User, 0, len(docs))
	for _, d := range docs {
		u, err := fromDocument(d)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id.String()}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// Credit runs a single-document pipeline update so points, counter and level
// change together without a read-modify-write race.
func (r *UserRepository) Credit(ctx context.Context, id uuid.UUID, award models.Award) (*models.User, error) {
	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		creditPipeline(award, time.Now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("credit user: %w", err)
	}
	return fromDocument(doc)
}

func creditPipeline(award models.Award, at time.Time) mongo.Pipeline {
	set := bson.D{
		{Key: "points", Value: bson.D{{Key: "$max", Value: bson.A{
			0, bson.D{{Key: "$add", Value: bson.A{"$points", award.Points}}},
		}}}},
		{Key: "updatedAt", Value: at},
	}
	if field := counterField(award.Counter); field != "" {
		set = append(set, bson.E{Key: field, Value: bson.D{{Key: "$add", Value: bson.A{"$" + field, 1}}}})
	}
	level := bson.D{{Key: "$add", Value: bson.A{
		bson.D{{Key: "$floor", Value: bson.D{{Key: "$divide", Value: bson.A{"$points", domainsvcs.PointsPerLevel}}}}},
		1,
	}}}
	return mongo.Pipeline{
		{{Key: "$set", Value: set}},
		{{Key: "$set", Value: bson.D{{Key: "level", Value: level}}}},
	}
}

func counterField(c models.Counter) string {
	switch c {
	case models.CounterItemsPosted:
		return "itemsPosted"
	case models.CounterItemsClaimed:
		return "itemsClaimed"
	case models.CounterItemsReturned:
		return "itemsReturned"
	default:
		return ""
	}
}

func toDocument(u *models.User) userDocument {
	return userDocument{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         models.NormalizeEmail(u.Email),
		Phone:         u.Phone,
		PasswordHash:  u.PasswordHash,
		Points:        u.Points,
		Level:         u.Level,
		ItemsPosted:   u.ItemsPosted,
		ItemsClaimed:  u.ItemsClaimed,
		ItemsReturned: u.ItemsReturned,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func fromDocument(d userDocument) (*models.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("decode user id %q: %w", d.ID, err)
	}
	return &models.User{
		ID:            id,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		PasswordHash:  d.PasswordHash,
		Points:        d.Points,
		Level:         d.Level,
		ItemsPosted:   d.ItemsPosted,
		ItemsClaimed:  d.ItemsClaimed,
		ItemsReturned: d.ItemsReturned,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}, nil
}
