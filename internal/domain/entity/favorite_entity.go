package entity

import "time"

// DesignFavorite is the join record between a user and a design.
// Existence means "this user favorited this design"; rows are created and
// deleted as a pair, never updated in place.
type DesignFavorite struct {
	DesignID  string    `json:"designId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
