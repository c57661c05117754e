package handlers

import (
	"net/http"
	"strconv"

	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
)

// NearbyItemsHandler handles GET /api/items/nearby requests.
type NearbyItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewNearbyItemsHandler returns a NearbyItemsHandler backed by the given services.
func NewNearbyItemsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *NearbyItemsHandler {
	return &NearbyItemsHandler{svc: svc, errs: errs}
}

// Execute returns unresolved items around a point, nearest first.
//
//	@Summary	Nearby items
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		lat		query		number	true	"Latitude"
//	@Param		lng		query		number	true	"Longitude"
//	@Param		radius	query		number	false	"Radius in meters (default 2000, max 100000)"
//	@Success	200		{array}		ItemResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Router		/items/nearby [get]
func (h *NearbyItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		h.errs.Write(w, r, itemdomain.ErrInvalidLocation)
		return
	}

	var radius *float64
	if raw := q.Get("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errs.Write(w, r, itemdomain.ErrInvalidRadius)
			return
		}
		radius = &v
	}

	items, err := h.svc.Item.FindNearby(r.Context(), lat, lng, radius, queryOpts(r))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponses(items))
}
