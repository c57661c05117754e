package handlers

import (
	"net/http"

	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
	domainsvcs "github.com/theEquinoxDev/LocalLoop/services/user/domain/services"
)

// MeHandler handles GET /api/users/me requests.
type MeHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewMeHandler returns a MeHandler backed by the given services.
func NewMeHandler(svc *appsvcs.Services, errs *errhttp.Responder) *MeHandler {
	return &MeHandler{svc: svc, errs: errs}
}

// Execute returns the authenticated user with rank details.
//
//	@Summary	Current user
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	MeResponse
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/users/me [get]
func (h *MeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	u, err := h.svc.User.Me(r.Context(), userID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, MeResponse{
		UserResponse:      newUserResponse(u),
		RankTitle:         domainsvcs.RankTitle(u.Level),
		PointsToNextLevel: domainsvcs.PointsToNextLevel(u.Points),
	})
}
