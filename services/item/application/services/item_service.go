package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/theEquinoxDev/LocalLoop/pkg/cache"
	"github.com/theEquinoxDev/LocalLoop/pkg/imaging"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	"github.com/theEquinoxDev/LocalLoop/pkg/telemetry"
	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/repositories"
	domainsvcs "github.com/theEquinoxDev/LocalLoop/services/item/domain/services"
)

// DefaultUploadTimeout bounds the object store call in Create when no
// timeout is configured.
const DefaultUploadTimeout = 15 * time.Second

// itemCache is the subset of *pkgcache.ItemCache the service uses.
type itemCache interface {
	Get(ctx context.Context, id uuid.UUID) (*pkgcache.CachedItem, error)
	Generation(ctx context.Context, id uuid.UUID) (int64, error)
	SetIfGeneration(ctx context.Context, item *pkgcache.CachedItem, gen int64) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateInput is a new report plus an optional image.
type CreateInput struct {
	models.NewItemParams
	Image io.Reader
}

// ItemResult is an item after a mutation together with the standing of the
// user who was credited. Reward is nil when crediting failed.
type ItemResult struct {
	Item   *models.ItemView
	Reward *models.Standing
}

// ResolveResult carries the standings of both credited parties.
type ResolveResult struct {
	Item    *models.ItemView
	Owner   *models.Standing
	Claimer *models.Standing
}

// ItemService runs the item lifecycle: create, claim, resolve and the
// maintenance sweep. Lifecycle preconditions always read the store; the
// cache only serves GetByID.
type ItemService struct {
	repo    repositories.ItemRepository
	ledger  repositories.Ledger
	images  repositories.ImageStore
	cache   itemCache
	metrics *telemetry.Metrics
	log     logger.Logger

	uploadTimeout time.Duration
	now           func() time.Time
}

// Option customizes an ItemService.
type Option func(*ItemService)

// WithImageStore enables image uploads.
func WithImageStore(images repositories.ImageStore) Option {
	return func(s *ItemService) { s.images = images }
}

// WithCache enables the GetByID read-through cache.
func WithCache(c itemCache) Option {
	return func(s *ItemService) { s.cache = c }
}

// WithUploadTimeout bounds the image upload in Create.
func WithUploadTimeout(d time.Duration) Option {
	return func(s *ItemService) {
		if d > 0 {
			s.uploadTimeout = d
		}
	}
}

// WithMetrics records lifecycle counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *ItemService) { s.metrics = m }
}

// NewItemService returns an ItemService over repo that credits rewards
// through ledger.
func NewItemService(repo repositories.ItemRepository, ledger repositories.Ledger, log logger.Logger, opts ...Option) *ItemService {
	s := &ItemService{
		repo:          repo,
		ledger:        ledger,
		log:           log,
		uploadTimeout: DefaultUploadTimeout,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create validates and stores a new item, uploading its image first when
// one is supplied. The owner is credited for posting.
func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*ItemResult, error) {
	item, err := models.NewItem(ownerID, in.NewItemParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	if in.Image != nil {
		url, err := s.uploadImage(ctx, item.ID, in.Image)
		if err != nil {
			return nil, err
		}
		item.ImageURL = url
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		if item.ImageURL != "" {
			s.removeImage(context.WithoutCancel(ctx), item.ImageURL)
		}
		return nil, fmt.Errorf("insert item: %w", err)
	}
	s.metrics.ItemPosted(ctx, string(item.Type))
	s.log.InfoContext(ctx, "item posted", "item_id", item.ID, "owner_id", ownerID, "type", item.Type)

	reward := s.credit(ctx, ownerID, models.RewardPostItem)

	view, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("reload item: %w", err)
	}
	return &ItemResult{Item: view, Reward: reward}, nil
}

func (s *ItemService) uploadImage(ctx context.Context, id uuid.UUID, r io.Reader) (string, error) {
	if s.images == nil {
		return "", itemdomain.ErrImagesDisabled
	}
	img, err := imaging.Normalize(r)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) || errors.Is(err, imaging.ErrTooLarge) {
			return "", fmt.Errorf("%w: %w", itemdomain.ErrInvalidImage, err)
		}
		return "", fmt.Errorf("normalize image: %w", err)
	}

	upCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()
	url, err := s.images.Put(upCtx, imageKey(id), img.Data, img.ContentType())
	if err != nil {
		return "", fmt.Errorf("%w: %w", itemdomain.ErrImageUpload, err)
	}
	return url, nil
}

func (s *ItemService) removeImage(ctx context.Context, url string) {
	if s.images == nil {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		s.log.WarnContext(ctx, "image cleanup failed", "url", url, "error", err)
	}
}

func imageKey(id uuid.UUID) string {
	return "items/" + id.String() + ".jpg"
}

// ListOpen returns unresolved items, newest first.
func (s *ItemService) ListOpen(ctx context.Context, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	items, err := s.repo.ListOpen(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// FindNearby returns unresolved items within radius meters of (lat, lng),
// nearest first. A nil radius uses the default.
func (s *ItemService) FindNearby(ctx context.Context, lat, lng float64, radius *float64, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	center, err := domainsvcs.NearbyCenter(lat, lng)
	if err != nil {
		return nil, err
	}
	meters, err := domainsvcs.NearbyRadius(radius)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.FindNearby(ctx, center, meters, opts)
	if err != nil {
		return nil, fmt.Errorf("find nearby items: %w", err)
	}
	return items, nil
}

// GetByID retrieves an item using a read-through cache:
//  1. Check Redis first.
//  2. On miss, snapshot the entry's generation, then query the store.
//  3. Fill the cache asynchronously with the store result. The fill is
//     dropped if a mutation evicted the entry after the snapshot.
func (s *ItemService) GetByID(ctx context.Context, rawID string) (*models.ItemView, error) {
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}

	var (
		gen  int64
		fill bool
	)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, pkgcache.ErrCacheMiss) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
		if gen, err = s.cache.Generation(ctx, id); err != nil {
			s.log.WarnContext(ctx, "item cache generation read failed", "item_id", id, "error", err)
		} else {
			fill = true
		}
	}

	view, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if fill {
		go s.fill(context.WithoutCancel(ctx), view, gen)
	}
	return view, nil
}

func (s *ItemService) fill(ctx context.Context, view *models.ItemView, gen int64) {
	stored, err := s.cache.SetIfGeneration(ctx, toCached(view), gen)
	if err != nil {
		s.log.WarnContext(ctx, "item cache warm failed", "item_id", view.ID, "error", err)
		return
	}
	if !stored {
		s.log.DebugContext(ctx, "item cache warm skipped, entry changed", "item_id", view.ID)
	}
}

// Claim records userID as the claimer. Preconditions are checked against the
// current record and enforced again by the store's conditional write; a lost
// race is reported as ErrAlreadyClaimed.
func (s *ItemService) Claim(ctx context.Context, rawID string, userID uuid.UUID) (*ItemResult, error) {
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := domainsvcs.CheckClaim(&current.Item, userID); err != nil {
		return nil, err
	}

	view, err := s.repo.Claim(ctx, id, userID, s.now())
	if errors.Is(err, itemdomain.ErrPreconditionFailed) {
		return nil, s.claimConflict(ctx, id, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("claim item: %w", err)
	}
	s.evict(ctx, id)
	s.metrics.ItemClaimed(ctx)
	s.log.InfoContext(ctx, "item claimed", "item_id", id, "claimer_id", userID)

	reward := s.credit(ctx, userID, models.RewardClaimItem)
	return &ItemResult{Item: view, Reward: reward}, nil
}

// claimConflict classifies a rejected conditional claim against the record
// as it is now.
func (s *ItemService) claimConflict(ctx context.Context, id, userID uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	err = domainsvcs.CheckClaim(&current.Item, userID)
	if err == nil || errors.Is(err, itemdomain.ErrAlreadyClaimed) {
		s.metrics.ClaimConflict(ctx)
		return itemdomain.ErrAlreadyClaimed
	}
	return err
}

// Resolve marks the item returned. Only the owner or the claimer may do so,
// and only once. The owner and any claimer are credited independently.
func (s *ItemService) Resolve(ctx context.Context, rawID string, userID uuid.UUID) (*ResolveResult, error) {
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := domainsvcs.CheckResolve(&current.Item, userID); err != nil {
		return nil, err
	}

	view, err := s.repo.Resolve(ctx, id, s.now())
	if errors.Is(err, itemdomain.ErrPreconditionFailed) {
		return nil, itemdomain.ErrAlreadyResolved
	}
	if err != nil {
		return nil, fmt.Errorf("resolve item: %w", err)
	}
	s.evict(ctx, id)
	s.metrics.ItemResolved(ctx)
	s.log.InfoContext(ctx, "item resolved", "item_id", id, "by", userID)

	res := &ResolveResult{Item: view}
	res.Owner = s.credit(ctx, view.OwnerID, models.RewardConfirmReturn)
	if view.ClaimerID != nil {
		res.Claimer = s.credit(ctx, *view.ClaimerID, models.RewardReturnCompleted)
	}
	return res, nil
}

// SweepExpired deletes up to limit open items past their expiry together
// with their images and returns how many were removed.
func (s *ItemService) SweepExpired(ctx context.Context, limit int) (int, error) {
	expired, err := s.repo.DeleteExpired(ctx, s.now(), limit)
	for _, it := range expired {
		if it.ImageURL != "" {
			s.removeImage(ctx, it.ImageURL)
		}
		s.evict(ctx, it.ID)
	}
	if n := len(expired); n > 0 {
		s.metrics.ItemsExpired(ctx, n)
		s.log.InfoContext(ctx, "expired items swept", "count", n)
	}
	if err != nil {
		return len(expired), fmt.Errorf("sweep expired items: %w", err)
	}
	return len(expired), nil
}

// WarmCache stores the current view of id in the cache. Like GetByID it
// skips the write when the entry was evicted while the store was read.
func (s *ItemService) WarmCache(ctx context.Context, id uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	gen, err := s.cache.Generation(ctx, id)
	if err != nil {
		return err
	}
	view, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, itemdomain.ErrItemNotFound) {
		return s.EvictCache(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	_, err = s.cache.SetIfGeneration(ctx, toCached(view), gen)
	return err
}

// EvictCache drops id from the cache.
func (s *ItemService) EvictCache(ctx context.Context, id uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, id)
}

func (s *ItemService) evict(ctx context.Context, id uuid.UUID) {
	if err := s.EvictCache(context.WithoutCancel(ctx), id); err != nil {
		s.log.WarnContext(ctx, "item cache evict failed", "item_id", id, "error", err)
	}
}

// credit awards reason to userID. The lifecycle change has already been
// committed, so a failure is logged and reported as a nil standing.
func (s *ItemService) credit(ctx context.Context, userID uuid.UUID, reason models.RewardReason) *models.Standing {
	st, err := s.ledger.Credit(ctx, userID, reason)
	if err != nil {
		s.log.ErrorContext(ctx, "reward credit failed", "user_id", userID, "reason", reason, "error", err)
		s.metrics.RewardFailed(ctx, string(reason))
		return nil
	}
	return st
}

// ParseItemID validates the textual id from a request path.
func ParseItemID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, itemdomain.ErrInvalidItemID
	}
	return id, nil
}
