package handlers

import (
	"net/http"

	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	pkgvalidator "github.com/theEquinoxDev/LocalLoop/pkg/validator"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
)

// LoginRequest is the request body for POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required" example:"asha@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
} // @name LoginRequest

// LoginHandler handles POST /api/users/login requests.
type LoginHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewLoginHandler returns a LoginHandler backed by the given services.
func NewLoginHandler(svc *appsvcs.Services, errs *errhttp.Responder) *LoginHandler {
	return &LoginHandler{svc: svc, errs: errs}
}

// Execute checks credentials and returns a bearer token.
//
//	@Summary	Log in
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	AuthResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Failure	429		{object}	errhttp.ErrorResponse
//	@Router		/users/login [post]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r, "All fields are required")
	if !ok {
		return
	}

	s, err := h.svc.User.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AuthResponse{UserResponse: newUserResponse(s.User), Token: s.Token})
}
