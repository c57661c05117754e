package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
)

type stubUsers struct {
	known map[uuid.UUID]bool
	err   error
}

func (s *stubUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return s.known[id], s.err
}

func serveAuth(t *testing.T, users UserChecker, header string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()
	var captured uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/users/me", http.NoBody)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	RequireAuth(newTestTokens(t), users, logger.Nop())(next).ServeHTTP(w, r)
	return w, captured
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body["message"]
}

func TestRequireAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, _, err := newTestTokens(t).Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w, captured := serveAuth(t, &stubUsers{known: map[uuid.UUID]bool{userID: true}}, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != userID {
		t.Fatalf("expected user %v in context, got %v", userID, captured)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	known := uuid.New()
	ghost := uuid.New()
	tokens := newTestTokens(t)
	knownToken, _, _ := tokens.Issue(known)
	ghostToken, _, _ := tokens.Issue(ghost)
	users := &stubUsers{known: map[uuid.UUID]bool{known: true}}

	tests := []struct {
		name    string
		header  string
		users   UserChecker
		status  int
		message string
	}{
		{"missing header", "", users, http.StatusUnauthorized, "Not authorized"},
		{"wrong scheme", "Basic " + knownToken, users, http.StatusUnauthorized, "Not authorized"},
		{"empty bearer", "Bearer ", users, http.StatusUnauthorized, "Not authorized"},
		{"invalid token", "Bearer nope", users, http.StatusUnauthorized, "Token invalid"},
		{"deleted user", "Bearer " + ghostToken, users, http.StatusUnauthorized, "User not found"},
		{"lookup failure", "Bearer " + knownToken, &stubUsers{err: errors.New("db down")}, http.StatusInternalServerError, "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, captured := serveAuth(t, tt.users, tt.header)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if got := messageOf(t, w); got != tt.message {
				t.Errorf("message: got %q, want %q", got, tt.message)
			}
			if captured != uuid.Nil {
				t.Error("next handler should not be reached")
			}
		})
	}
}

func TestUserIDFromCtx(t *testing.T) {
	if _, err := UserIDFromCtx(context.Background()); !errors.Is(err, ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound, got %v", err)
	}
	if _, err := UserIDFromCtx(WithUserID(context.Background(), uuid.Nil)); !errors.Is(err, ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound for uuid.Nil, got %v", err)
	}
	id := uuid.New()
	if got, err := UserIDFromCtx(WithUserID(context.Background(), id)); err != nil || got != id {
		t.Fatalf("expected %v, got %v (%v)", id, got, err)
	}
}
