package services

import (
	"github.com/paulmach/orb"

	pkgcache "github.com/theEquinoxDev/LocalLoop/pkg/cache"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
)

func toCached(v *models.ItemView) *pkgcache.CachedItem {
	c := &pkgcache.CachedItem{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Type:        string(v.Type),
		Category:    v.Category,
		ImageURL:    v.ImageURL,
		Longitude:   v.Longitude(),
		Latitude:    v.Latitude(),
		Radius:      v.Radius,
		Owner:       toCachedParty(v.Owner),
		ClaimedAt:   v.ClaimedAt,
		IsResolved:  v.IsResolved,
		ExpiresAt:   v.ExpiresAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.Claimer != nil {
		p := toCachedParty(*v.Claimer)
		c.Claimer = &p
	}
	return c
}

func fromCached(c *pkgcache.CachedItem) *models.ItemView {
	v := &models.ItemView{
		Item: models.Item{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Type:        models.Type(c.Type),
			Category:    c.Category,
			ImageURL:    c.ImageURL,
			Location:    orb.Point{c.Longitude, c.Latitude},
			Radius:      c.Radius,
			OwnerID:     c.Owner.ID,
			ClaimedAt:   c.ClaimedAt,
			IsResolved:  c.IsResolved,
			ExpiresAt:   c.ExpiresAt,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		},
		Owner: fromCachedParty(c.Owner),
	}
	if c.Claimer != nil {
		id := c.Claimer.ID
		p := fromCachedParty(*c.Claimer)
		v.ClaimerID = &id
		v.Claimer = &p
	}
	return v
}

func toCachedParty(p models.Party) pkgcache.CachedParty {
	return pkgcache.CachedParty{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func fromCachedParty(p pkgcache.CachedParty) models.Party {
	return models.Party{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}
