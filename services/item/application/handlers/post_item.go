package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/theEquinoxDev/LocalLoop/pkg/apperr"
	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	"github.com/theEquinoxDev/LocalLoop/pkg/imaging"
	appsvcs "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = imaging.MaxInputBytes + 1<<20

var (
	errInvalidJSON = apperr.New(apperr.Validation, "Invalid JSON")
	errInvalidForm = apperr.New(apperr.Validation, "Invalid multipart form")
)

// PostItemRequest is the JSON body for POST /api/items. The multipart form
// uses the same field names plus an optional "image" file.
type PostItemRequest struct {
	Title       string   `json:"title"       example:"Blue umbrella"`
	Type        string   `json:"type"        example:"found" enums:"lost,found"`
	Description string   `json:"description" example:"Left at the bus stop"`
	Category    string   `json:"category"    example:"accessories"`
	Latitude    *float64 `json:"latitude"    example:"12.9716"`
	Longitude   *float64 `json:"longitude"   example:"77.5946"`
	Radius      *float64 `json:"radius"      example:"200"`
	ExpiresAt   string   `json:"expiresAt"   example:"2024-02-15"`
} // @name PostItemRequest

func (req PostItemRequest) params() models.NewItemParams {
	return models.NewItemParams{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Radius:      req.Radius,
		ExpiresAt:   req.ExpiresAt,
	}
}

// PostItemHandler handles POST /api/items requests.
type PostItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostItemHandler {
	return &PostItemHandler{svc: svc, errs: errs}
}

// Execute reports a lost or found item.
//
//	@Summary		Post item
//	@Description	Reports a lost or found item. Accepts multipart/form-data with an optional image, or JSON.
//	@Tags			items
//	@Accept			mpfd,json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			title		formData	string	true	"Title"
//	@Param			type		formData	string	true	"lost or found"
//	@Param			description	formData	string	false	"Description"
//	@Param			category	formData	string	true	"Category"
//	@Param			latitude	formData	number	true	"Latitude"
//	@Param			longitude	formData	number	true	"Longitude"
//	@Param			radius		formData	number	false	"Radius in meters (default 200)"
//	@Param			expiresAt	formData	string	true	"RFC 3339 timestamp or YYYY-MM-DD"
//	@Param			image		formData	file	false	"JPEG or PNG up to 5MB"
//	@Success		201			{object}	ItemRewardResponse
//	@Failure		400			{object}	errhttp.ErrorResponse
//	@Failure		401			{object}	errhttp.ErrorResponse
//	@Failure		502			{object}	errhttp.ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	in, cleanup, err := decodePostItem(r)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	res, err := h.svc.Item.Create(r.Context(), userID, in)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, ItemRewardResponse{
		ItemResponse: newItemResponse(res.Item),
		Reward:       newRewardResponse(res.Reward),
	})
}

func decodePostItem(r *http.Request) (appsvcs.CreateInput, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req PostItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return appsvcs.CreateInput{}, nil, errInvalidJSON
		}
		return appsvcs.CreateInput{NewItemParams: req.params()}, nil, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return appsvcs.CreateInput{}, nil, errInvalidForm
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	fields := apperr.Fields{}
	req := PostItemRequest{
		Title:       r.FormValue("title"),
		Type:        r.FormValue("type"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		ExpiresAt:   r.FormValue("expiresAt"),
		Latitude:    formFloat(r, "latitude", fields),
		Longitude:   formFloat(r, "longitude", fields),
		Radius:      formFloat(r, "radius", fields),
	}
	if len(fields) > 0 {
		return appsvcs.CreateInput{}, cleanup, apperr.WithFields(itemdomain.ErrInvalidItem, fields)
	}

	in := appsvcs.CreateInput{NewItemParams: req.params()}
	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		in.Image = file
		return in, func() { _ = file.Close(); cleanup() }, nil
	case errors.Is(err, http.ErrMissingFile):
		return in, cleanup, nil
	default:
		return appsvcs.CreateInput{}, cleanup, itemdomain.ErrInvalidImage
	}
}

// formFloat parses an optional numeric form field, recording a field error
// when it is present but not a number.
func formFloat(r *http.Request, key string, fields apperr.Fields) *float64 {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fields[key] = "Must be a number"
		return nil
	}
	return &v
}
