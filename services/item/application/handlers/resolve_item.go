package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
)

// ResolveItemHandler handles PATCH /api/items/{id}/resolve requests.
type ResolveItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewResolveItemHandler returns a ResolveItemHandler backed by the given services.
func NewResolveItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ResolveItemHandler {
	return &ResolveItemHandler{svc: svc, errs: errs}
}

// Execute confirms that an item was returned.
//
//	@Summary		Resolve item
//	@Description	Marks an item returned. Only the owner or the claimer may resolve, once.
//	@Tags			items
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ResolveResponse
//	@Failure		400	{object}	errhttp.ErrorResponse
//	@Failure		401	{object}	errhttp.ErrorResponse
//	@Failure		403	{object}	errhttp.ErrorResponse
//	@Failure		404	{object}	errhttp.ErrorResponse
//	@Router			/items/{id}/resolve [patch]
func (h *ResolveItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	res, err := h.svc.Item.Resolve(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ResolveResponse{
		Message: "Item resolved",
		Rewards: ResolveRewards{
			Owner:   newRewardResponse(res.Owner),
			Claimer: newRewardResponse(res.Claimer),
		},
	})
}
