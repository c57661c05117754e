package models

import "github.com/google/uuid"

// Party is the public projection of a user referenced by an item.
type Party struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

// ItemView is an item with its owner and claimer resolved. Repositories
// return views; the aggregate itself only holds user ids.
type ItemView struct {
	Item
	Owner   Party
	Claimer *Party
}
