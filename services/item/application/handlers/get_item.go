package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
)

// GetItemHandler handles GET /api/items/{id} requests.
type GetItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetItemHandler {
	return &GetItemHandler{svc: svc, errs: errs}
}

// Execute returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Item.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item))
}
