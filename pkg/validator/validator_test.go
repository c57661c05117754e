package validator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/theEquinoxDev/LocalLoop/pkg/validator"
)

type sampleStruct struct {
	Title string   `json:"title" validate:"required,min=3,max=10"`
	Type  string   `json:"type"  validate:"required,oneof=lost found"`
	Lat   *float64 `json:"latitude" validate:"required,latitude"`
	Email string   `json:"email" validate:"omitempty,email"`
}

func ptr(f float64) *float64 { return &f }

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{Title: "wallet", Type: "lost", Lat: ptr(12.5)}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    sampleStruct
		field string
		want  string
	}{
		{"required", sampleStruct{Type: "lost", Lat: ptr(1)}, "title", "This field is required"},
		{"min", sampleStruct{Title: "ab", Type: "lost", Lat: ptr(1)}, "title", "Minimum length is 3"},
		{"max", sampleStruct{Title: "12345678901", Type: "lost", Lat: ptr(1)}, "title", "Maximum length is 10"},
		{"oneof", sampleStruct{Title: "wallet", Type: "stolen", Lat: ptr(1)}, "type", "Must be one of: lost found"},
		{"latitude", sampleStruct{Title: "wallet", Type: "found", Lat: ptr(91)}, "latitude", "Must be a latitude between -90 and 90"},
		{"email", sampleStruct{Title: "wallet", Type: "found", Lat: ptr(1), Email: "nope"}, "email", "Must be a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&tt.in))
			if m[tt.field] != tt.want {
				t.Errorf("%s: got %q, want %q (all: %v)", tt.field, m[tt.field], tt.want, m)
			}
		})
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"email":"a@b.co","password":"secret"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[loginReq](w, r, "All fields are required")
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Email != "a@b.co" {
		t.Errorf("unexpected Email: %q", req.Email)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[loginReq](w, r, "All fields are required")
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co"}`))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[loginReq](w, r, "All fields are required")
	if ok {
		t.Fatal("expected ok=false for missing password")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "All fields are required" {
		t.Errorf("message: got %q", body.Message)
	}
	if body.Fields["password"] != "This field is required" {
		t.Errorf("fields: got %v", body.Fields)
	}
}
