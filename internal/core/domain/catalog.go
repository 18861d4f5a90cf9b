package domain

import "time"

type Category struct {
	ID                      int64     `json:"id"`
	Name                    string    `json:"name"`
	Slug                    string    `json:"slug"`
	Description             *string   `json:"description"`
	Icon                    *string   `json:"icon"`
	IconURL                 *string   `json:"icon_url,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
	PropertiesCount         *int64    `json:"properties_count,omitempty"`
	ApprovedPropertiesCount *int64    `json:"approved_properties_count,omitempty"`
}

type Island struct {
	ID                      int64     `json:"id"`
	Name                    string    `json:"name"`
	Slug                    string    `json:"slug"`
	Description             *string   `json:"description"`
	Image                   *string   `json:"image,omitempty"`
	ImageURL                *string   `json:"image_url,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
	PropertiesCount         *int64    `json:"properties_count,omitempty"`
	ApprovedPropertiesCount *int64    `json:"approved_properties_count,omitempty"`
}

// MarketStats backs the home page counters.
type MarketStats struct {
	PropertiesCount int64 `json:"properties_count"`
	IslandsCount    int64 `json:"islands_count"`
}
