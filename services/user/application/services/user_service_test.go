package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/apperr"
	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	userdomain "github.com/theEquinoxDev/LocalLoop/services/user/domain"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
	"github.com/theEquinoxDev/LocalLoop/services/user/infrastructure/persistence/memory"
)

func newTestService(t *testing.T) (*UserService, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret-that-is-long-enough-123", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return NewUserService(memory.NewUserRepository(), tokens, nil, logger.Nop()), tokens
}

func register(t *testing.T, svc *UserService, email string) *Session {
	t.Helper()
	s, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Email: email, Password: "secret123", Phone: "555-0100",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return s
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	svc, tokens := newTestService(t)
	s := register(t, svc, "Asha@Example.com")

	if s.User.Email != "asha@example.com" {
		t.Errorf("email not normalized: %q", s.User.Email)
	}
	if s.User.PasswordHash == "secret123" || s.User.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	id, err := tokens.Verify(s.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != s.User.ID {
		t.Errorf("token subject %v, want %v", id, s.User.ID)
	}
}

func TestRegister_Rejects(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "taken@example.com")

	tests := []struct {
		name    string
		in      RegisterInput
		wantErr error
		field   string
	}{
		{"duplicate email", RegisterInput{"Bo", "TAKEN@example.com", "secret123", "1"}, userdomain.ErrUserAlreadyExists, ""},
		{"short password", RegisterInput{"Bo", "bo@example.com", "12345", "1"}, userdomain.ErrInvalidUser, "password"},
		{"missing password", RegisterInput{"Bo", "bo@example.com", "", "1"}, userdomain.ErrInvalidUser, "password"},
		{"short name", RegisterInput{"B", "bo@example.com", "secret123", "1"}, userdomain.ErrInvalidUser, "name"},
		{"missing phone", RegisterInput{"Bo", "bo@example.com", "secret123", " "}, userdomain.ErrInvalidUser, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.field != "" {
				if _, ok := apperr.FieldsOf(err)[tt.field]; !ok {
					t.Errorf("expected field %q in %v", tt.field, apperr.FieldsOf(err))
				}
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	registered := register(t, svc, "login@example.com")

	s, err := svc.Login(context.Background(), " LOGIN@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.User.ID != registered.User.ID || s.Token == "" {
		t.Errorf("unexpected session %+v", s)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"wrong password", "login@example.com", "nope-nope", userdomain.ErrInvalidCredentials},
		{"unknown email", "ghost@example.com", "secret123", userdomain.ErrInvalidCredentials},
		{"missing email", "", "secret123", userdomain.ErrInvalidUser},
		{"missing password", "login@example.com", "", userdomain.ErrInvalidUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMeAndExists(t *testing.T) {
	svc, _ := newTestService(t)
	s := register(t, svc, "me@example.com")
	ctx := context.Background()

	u, err := svc.Me(ctx, s.User.ID)
	if err != nil || u.Email != "me@example.com" {
		t.Fatalf("Me = %v, %v", u, err)
	}
	if _, err := svc.Me(ctx, uuid.New()); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	ok, err := svc.Exists(ctx, s.User.ID)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}

func TestCredit_PointTotals(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := register(t, svc, "owner@example.com").User
	claimer := register(t, svc, "claimer@example.com").User

	steps := []struct {
		user   uuid.UUID
		reason models.Reason
	}{
		{owner.ID, models.ReasonPostItem},
		{claimer.ID, models.ReasonClaimItem},
		{owner.ID, models.ReasonConfirmReturn},
		{claimer.ID, models.ReasonReturnCompleted},
	}
	for _, st := range steps {
		if _, err := svc.Credit(ctx, st.user, st.reason); err != nil {
			t.Fatalf("Credit(%s): %v", st.reason, err)
		}
	}

	o, _ := svc.Me(ctx, owner.ID)
	c, _ := svc.Me(ctx, claimer.ID)
	if o.Points != 250 || o.ItemsPosted != 1 || o.ItemsReturned != 1 {
		t.Errorf("owner standing %+v", o)
	}
	if c.Points != 300 || c.ItemsClaimed != 1 || c.ItemsReturned != 0 {
		t.Errorf("claimer standing %+v", c)
	}

	if _, err := svc.Credit(ctx, owner.ID, "bogus"); !errors.Is(err, userdomain.ErrUnknownReward) {
		t.Fatalf("expected ErrUnknownReward, got %v", err)
	}
}

func TestCredit_ConcurrentAwardsSum(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "busy@example.com").User

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Credit(ctx, u.ID, models.ReasonPostItem); err != nil {
				t.Errorf("Credit: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := svc.Me(ctx, u.ID)
	if got.Points != 1000 || got.Level != 3 {
		t.Fatalf("expected 1000 points at level 3, got %d at %d", got.Points, got.Level)
	}
}

func TestProfiles(t *testing.T) {
	svc, _ := newTestService(t)
	a := register(t, svc, "a@example.com").User
	b := register(t, svc, "b@example.com").User

	got, err := svc.Profiles(context.Background(), []uuid.UUID{a.ID, b.ID, uuid.New()})
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	if len(got) != 2 || got[a.ID].Email != "a@example.com" || got[b.ID] == nil {
		t.Fatalf("unexpected profiles %v", got)
	}
}
