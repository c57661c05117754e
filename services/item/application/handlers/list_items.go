package handlers

import (
	"net/http"
	"strconv"

	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/repositories"
)

// ListItemsHandler handles GET /api/items requests.
type ListItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, errs: errs}
}

// Execute lists unresolved items, newest first.
//
//	@Summary	List open items
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query		int	false	"Page size"
//	@Param		offset	query		int	false	"Items to skip"
//	@Success	200		{array}		ItemResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.ListOpen(r.Context(), queryOpts(r))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponses(items))
}

// queryOpts reads optional limit/offset parameters. Invalid values are ignored.
func queryOpts(r *http.Request) repositories.QueryOpts {
	var opts repositories.QueryOpts
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	return opts
}
