package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
)

// ClaimItemHandler handles PATCH /api/items/{id}/claim requests.
type ClaimItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewClaimItemHandler returns a ClaimItemHandler backed by the given services.
func NewClaimItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ClaimItemHandler {
	return &ClaimItemHandler{svc: svc, errs: errs}
}

// Execute claims a found item for the caller.
//
//	@Summary		Claim item
//	@Description	Claims an open found item. Owners cannot claim their own items.
//	@Tags			items
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ItemRewardResponse
//	@Failure		400	{object}	errhttp.ErrorResponse
//	@Failure		401	{object}	errhttp.ErrorResponse
//	@Failure		404	{object}	errhttp.ErrorResponse
//	@Router			/items/{id}/claim [patch]
func (h *ClaimItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	res, err := h.svc.Item.Claim(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ItemRewardResponse{
		ItemResponse: newItemResponse(res.Item),
		Reward:       newRewardResponse(res.Reward),
	})
}
