// Package mongodb implements the item store on a MongoDB collection with a
// 2dsphere index on location.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/repositories"
)

// geoPoint is a GeoJSON point; coordinates are [lng, lat].
type geoPoint struct {
	Type        string     `bson:"type"`
	Coordinates [2]float64 `bson:"coordinates"`
}

type itemDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description,omitempty"`
	Type        string     `bson:"type"`
	Category    string     `bson:"category"`
	ImageURL    string     `bson:"imageUrl,omitempty"`
	Location    geoPoint   `bson:"location"`
	Radius      float64    `bson:"radius"`
	Owner       string     `bson:"owner"`
	Claimer     *string    `bson:"claimer"`
	ClaimedAt   *time.Time `bson:"claimedAt"`
	IsResolved  bool       `bson:"isResolved"`
	ExpiresAt   time.Time  `bson:"expiresAt"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

// ItemRepository implements repositories.ItemRepository on an items
// collection. Owners and claimers are resolved through parties.
type ItemRepository struct {
	coll    *mongo.Collection
	parties repositories.PartyResolver
}

func NewItemRepository(coll *mongo.Collection, parties repositories.PartyResolver) *ItemRepository {
	return &ItemRepository{coll: coll, parties: parties}
}

func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) error {
	if _, err := r.coll.InsertOne(ctx, toDocument(item)); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ItemView, error) {
	var doc itemDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return r.populateOne(ctx, doc)
}

func (r *ItemRepository) ListOpen(ctx context.Context, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	find := pageOptions(opts).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.D{{Key: "isResolved", Value: false}}, find)
}

// FindNearby relies on $near returning documents nearest first.
func (r *ItemRepository) FindNearby(ctx context.Context, center orb.Point, maxMeters float64, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	filter := bson.D{
		{Key: "isResolved", Value: false},
		{Key: "location", Value: bson.D{{Key: "$near", Value: bson.D{
			{Key: "$geometry", Value: geoPoint{Type: "Point", Coordinates: [2]float64{center.X(), center.Y()}}},
			{Key: "$maxDistance", Value: maxMeters},
		}}}},
	}
	return r.find(ctx, filter, pageOptions(opts))
}

// Claim matches only documents that still satisfy every claim precondition,
// so two racing claimers cannot both win.
func (r *ItemRepository) Claim(ctx context.Context, id, claimerID uuid.UUID, at time.Time) (*models.ItemView, error) {
	filter := bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "claimer", Value: nil},
		{Key: "isResolved", Value: false},
		{Key: "owner", Value: bson.D{{Key: "$ne", Value: claimerID.String()}}},
		{Key: "type", Value: string(models.TypeFound)},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "claimer", Value: claimerID.String()},
		{Key: "claimedAt", Value: at},
		{Key: "updatedAt", Value: at},
	}}}
	return r.conditionalUpdate(ctx, filter, update)
}

func (r *ItemRepository) Resolve(ctx context.Context, id uuid.UUID, at time.Time) (*models.ItemView, error) {
	filter := bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "isResolved", Value: false},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isResolved", Value: true},
		{Key: "updatedAt", Value: at},
	}}}
	return r.conditionalUpdate(ctx, filter, update)
}

// DeleteExpired removes open expired items one document at a time so each
// deletion rechecks that the item is still unclaimed.
func (r *ItemRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) ([]*models.Item, error) {
	filter := expiredFilter(now)
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "expiresAt", Value: 1}})

	var expired []*models.Item
	for limit <= 0 || len(expired) < limit {
		var doc itemDocument
		err := r.coll.FindOneAndDelete(ctx, filter, opts).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			break
		}
		if err != nil {
			return expired, fmt.Errorf("delete expired item: %w", err)
		}
		item, err := fromDocument(doc)
		if err != nil {
			return expired, err
		}
		expired = append(expired, item)
	}
	return expired, nil
}

func expiredFilter(now time.Time) bson.D {
	return bson.D{
		{Key: "expiresAt", Value: bson.D{{Key: "$lt", Value: now}}},
		{Key: "claimer", Value: nil},
		{Key: "isResolved", Value: false},
	}
}

func (r *ItemRepository) conditionalUpdate(ctx context.Context, filter, update bson.D) (*models.ItemView, error) {
	var doc itemDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, itemdomain.ErrPreconditionFailed
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return r.populateOne(ctx, doc)
}

func (r *ItemRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]*models.ItemView, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	items := make([]*models.Item, len(docs))
	for i, d := range docs {
		if items[i], err = fromDocument(d); err != nil {
			return nil, err
		}
	}
	return r.populate(ctx, items)
}

func (r *ItemRepository) populateOne(ctx context.Context, doc itemDocument) (*models.ItemView, error) {
	item, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	views, err := r.populate(ctx, []*models.Item{item})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// populate batches all owner and claimer lookups into one resolver call.
func (r *ItemRepository) populate(ctx context.Context, items []*models.Item) ([]*models.ItemView, error) {
	seen := make(map[uuid.UUID]struct{}, len(items))
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, it := range items {
		add(it.OwnerID)
		if it.ClaimerID != nil {
			add(*it.ClaimerID)
		}
	}

	parties := map[uuid.UUID]models.Party{}
	if len(ids) > 0 {
		var err error
		if parties, err = r.parties.Parties(ctx, ids); err != nil {
			return nil, fmt.Errorf("resolve parties: %w", err)
		}
	}

	views := make([]*models.ItemView, len(items))
	for i, it := range items {
		owner, ok := parties[it.OwnerID]
		if !ok {
			owner = models.Party{ID: it.OwnerID}
		}
		v := &models.ItemView{Item: *it, Owner: owner}
		if it.ClaimerID != nil {
			c, ok := parties[*it.ClaimerID]
			if !ok {
				c = models.Party{ID: *it.ClaimerID}
			}
			v.Claimer = &c
		}
		views[i] = v
	}
	return views, nil
}

func pageOptions(opts repositories.QueryOpts) *options.FindOptionsBuilder {
	find := options.Find()
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		find.SetSkip(int64(opts.Offset))
	}
	return find
}

func toDocument(it *models.Item) itemDocument {
	doc := itemDocument{
		ID:          it.ID.String(),
		Title:       it.Title,
		Description: it.Description,
		Type:        string(it.Type),
		Category:    it.Category,
		ImageURL:    it.ImageURL,
		Location:    geoPoint{Type: "Point", Coordinates: [2]float64{it.Longitude(), it.Latitude()}},
		Radius:      it.Radius,
		Owner:       it.OwnerID.String(),
		ClaimedAt:   it.ClaimedAt,
		IsResolved:  it.IsResolved,
		ExpiresAt:   it.ExpiresAt,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if it.ClaimerID != nil {
		s := it.ClaimerID.String()
		doc.Claimer = &s
	}
	return doc
}

func fromDocument(d itemDocument) (*models.Item, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("decode item id %q: %w", d.ID, err)
	}
	owner, err := uuid.Parse(d.Owner)
	if err != nil {
		return nil, fmt.Errorf("decode owner id %q: %w", d.Owner, err)
	}
	it := &models.Item{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Type:        models.Type(d.Type),
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Location:    orb.Point{d.Location.Coordinates[0], d.Location.Coordinates[1]},
		Radius:      d.Radius,
		OwnerID:     owner,
		IsResolved:  d.IsResolved,
		ExpiresAt:   d.ExpiresAt.UTC(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.Claimer != nil {
		c, err := uuid.Parse(*d.Claimer)
		if err != nil {
			return nil, fmt.Errorf("decode claimer id %q: %w", *d.Claimer, err)
		}
		it.ClaimerID = &c
	}
	if d.ClaimedAt != nil {
		t := d.ClaimedAt.UTC()
		it.ClaimedAt = &t
	}
	return it, nil
}
