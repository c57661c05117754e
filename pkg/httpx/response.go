package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every error response. Fields is set only
// for validation failures and maps an input name to what is wrong with it.
type ErrorBody struct {
	Message string            `json:"message" example:"Item not found"`
	Fields  map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

// JSON writes v as JSON with the given status code. Item and user bodies
// carry phone numbers and emails, so every response is marked no-store.
// Encoding errors are discarded once the header is written.
func JSON(w http.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a {"message"} body.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}

// JSONFieldErrors writes a 400 {"message", "fields"} body.
func JSONFieldErrors(w http.ResponseWriter, message string, fields map[string]string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Message: message, Fields: fields})
}

// SafeError returns the client-facing message for err. Production masks
// 5xx details behind the status text.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
