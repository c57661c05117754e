package handlers

import (
	"net/http"

	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	pkgvalidator "github.com/theEquinoxDev/LocalLoop/pkg/validator"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
)

// RegisterRequest is the request body for POST /api/users/register.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2" example:"Asha Rao"`
	Email    string `json:"email"    validate:"required,email" example:"asha@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
	Phone    string `json:"phone"    validate:"required"       example:"+91 98450 00000"`
} // @name RegisterRequest

// RegisterHandler handles POST /api/users/register requests.
type RegisterHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewRegisterHandler returns a RegisterHandler backed by the given services.
func NewRegisterHandler(svc *appsvcs.Services, errs *errhttp.Responder) *RegisterHandler {
	return &RegisterHandler{svc: svc, errs: errs}
}

// Execute registers a user and returns a bearer token.
//
//	@Summary		Register
//	@Description	Creates an account and signs it in
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration request"
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		429		{object}	errhttp.ErrorResponse
//	@Router			/users/register [post]
func (h *RegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterRequest](w, r, "All fields are required")
	if !ok {
		return
	}

	s, err := h.svc.User.Register(r.Context(), appsvcs.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AuthResponse{UserResponse: newUserResponse(s.User), Token: s.Token})
}
