package domain

import "time"

type Favorite struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	PropertyID int64     `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Property   *Property `json:"property,omitempty"`
}

type FavoriteState struct {
	IsFavorite bool `json:"is_favorite"`
}
