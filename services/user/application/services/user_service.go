package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/apperr"
	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	"github.com/theEquinoxDev/LocalLoop/pkg/telemetry"
	userdomain "github.com/theEquinoxDev/LocalLoop/services/user/domain"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/repositories"
	domainsvcs "github.com/theEquinoxDev/LocalLoop/services/user/domain/services"
)

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

// Session is a user together with a freshly issued bearer token.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// RegisterInput carries the raw registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// UserService orchestrates registration, login and the points ledger.
type UserService struct {
	repo    repositories.UserRepository
	tokens  TokenIssuer
	metrics *telemetry.Metrics
	log     logger.Logger

	// dummyHash is compared against on unknown emails so that login takes
	// the same time whether or not the account exists.
	dummyHash string
}

// NewUserService returns a UserService wired with the given repository and token issuer.
func NewUserService(repo repositories.UserRepository, tokens TokenIssuer, metrics *telemetry.Metrics, log logger.Logger) *UserService {
	dummy, _ := auth.HashPassword(uuid.NewString())
	return &UserService{repo: repo, tokens: tokens, metrics: metrics, log: log, dummyHash: dummy}
}

// Register creates a user and signs them in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if len(in.Password) < models.MinPasswordLength {
		field := "Minimum length is 6"
		if in.Password == "" {
			field = "This field is required"
		}
		return nil, apperr.WithFields(userdomain.ErrInvalidUser, apperr.Fields{"password": field})
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := models.NewUser(in.Name, in.Email, in.Phone, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", userdomain.ErrInvalidUser, err)
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)

	return s.newSession(u)
}

// Login verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, userdomain.ErrInvalidUser
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, userdomain.ErrUserNotFound) {
		_ = auth.CheckPassword(s.dummyHash, password)
		return nil, userdomain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, userdomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("check password: %w", err)
	}

	return s.newSession(u)
}

// Me returns the current user.
func (s *UserService) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Exists reports whether the user is still registered. It backs auth.RequireAuth.
func (s *UserService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Credit awards the points for reason to the user and returns the new standing.
func (s *UserService) Credit(ctx context.Context, id uuid.UUID, reason models.Reason) (*models.User, error) {
	award, err := domainsvcs.AwardFor(reason)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Credit(ctx, id, award)
	if err != nil {
		return nil, fmt.Errorf("credit %s: %w", reason, err)
	}
	s.metrics.PointsAwarded(ctx, string(reason), award.Points)
	s.log.DebugContext(ctx, "points awarded",
		"user_id", id, "reason", reason, "points", award.Points, "total", u.Points, "level", u.Level)
	return u, nil
}

// Profiles resolves ids to users, keyed by id. Missing users are absent from the map.
func (s *UserService) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.User, error) {
	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	out := make(map[uuid.UUID]*models.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (s *UserService) newSession(u *models.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}
