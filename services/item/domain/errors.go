package domain

import (
	"errors"

	"github.com/theEquinoxDev/LocalLoop/pkg/apperr"
)

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = apperr.New(apperr.NotFound, "Item not found")

	// ErrInvalidItemID indicates a path id that is not a UUID.
	ErrInvalidItemID = apperr.New(apperr.Validation, "Invalid item ID format")

	// ErrInvalidItem indicates missing or malformed item fields.
	ErrInvalidItem = apperr.New(apperr.Validation, "Invalid or missing fields")

	// ErrInvalidLocation indicates a proximity query without usable coordinates.
	ErrInvalidLocation = apperr.New(apperr.Validation, "Latitude and longitude required")

	// ErrInvalidRadius indicates a search radius outside (0, MaxNearbyRadius].
	ErrInvalidRadius = apperr.New(apperr.Validation, "Radius must be between 1 and 100000 meters")

	// ErrInvalidImage indicates an upload that is not a JPEG or PNG within the size limit.
	ErrInvalidImage = apperr.New(apperr.Validation, "Image must be a JPEG or PNG up to 5MB")

	// ErrImagesDisabled indicates an upload while no object store is configured.
	ErrImagesDisabled = apperr.New(apperr.Validation, "Image uploads are not enabled")

	// ErrImageUpload indicates the object store rejected or timed out the upload.
	ErrImageUpload = apperr.New(apperr.Upstream, "Image upload failed")

	// Claim preconditions, checked in this order.
	ErrAlreadyResolved = apperr.New(apperr.Conflict, "Item already resolved")
	ErrAlreadyClaimed  = apperr.New(apperr.Conflict, "Item already claimed by someone else")
	ErrOwnItem         = apperr.New(apperr.Conflict, "Cannot claim your own item")
	ErrNotClaimable    = apperr.New(apperr.Conflict, "Only found items can be claimed")

	// ErrNotParticipant indicates a resolve by someone other than the owner or claimer.
	ErrNotParticipant = apperr.New(apperr.Forbidden, "Not authorized. Only the finder or claimer can resolve this item.")

	// ErrPreconditionFailed is returned by repositories when a conditional
	// write matched no row. Services reclassify it against a fresh read.
	ErrPreconditionFailed = errors.New("item: conditional write matched no row")
)
