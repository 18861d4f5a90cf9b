package domain

import (
	"net/url"
	"strconv"
)

const (
	SortCreatedAt  = "created_at"
	SortPrice      = "price"
	SortLandArea   = "land_area"
	SortViewsCount = "views_count"
	SortFeatured   = "featured"
)

// PropertyFilters mirrors the listing query accepted by /properties and the
// island/category sub-resources. Zero values are never sent.
type PropertyFilters struct {
	Search      string         `query:"search" json:"search,omitempty"`
	CategoryID  int64          `query:"category_id" json:"category_id,omitempty"`
	IslandID    int64          `query:"island_id" json:"island_id,omitempty"`
	PriceType   PriceType      `query:"price_type" json:"price_type,omitempty"`
	MinPrice    float64        `query:"min_price" json:"min_price,omitempty"`
	MaxPrice    float64        `query:"max_price" json:"max_price,omitempty"`
	MinLandArea float64        `query:"min_land_area" json:"min_land_area,omitempty"`
	MaxLandArea float64        `query:"max_land_area" json:"max_land_area,omitempty"`
	Bedrooms    int            `query:"bedrooms" json:"bedrooms,omitempty"`
	Bathrooms   int            `query:"bathrooms" json:"bathrooms,omitempty"`
	Status      PropertyStatus `query:"status" json:"status,omitempty"`
	SortBy      string         `query:"sort_by" json:"sort_by,omitempty"`
	SortOrder   string         `query:"sort_order" json:"sort_order,omitempty"`
	PerPage     int            `query:"per_page" json:"per_page,omitempty"`
	Page        int            `query:"page" json:"page,omitempty"`
}

// Values encodes only the filters that are set.
func (f PropertyFilters) Values() url.Values {
	v := url.Values{}
	setString(v, "search", f.Search)
	setInt(v, "category_id", f.CategoryID)
	setInt(v, "island_id", f.IslandID)
	setString(v, "price_type", string(f.PriceType))
	setFloat(v, "min_price", f.MinPrice)
	setFloat(v, "max_price", f.MaxPrice)
	setFloat(v, "min_land_area", f.MinLandArea)
	setFloat(v, "max_land_area", f.MaxLandArea)
	setInt(v, "bedrooms", int64(f.Bedrooms))
	setInt(v, "bathrooms", int64(f.Bathrooms))
	setString(v, "status", string(f.Status))
	setString(v, "sort_by", f.SortBy)
	setString(v, "sort_order", f.SortOrder)
	setInt(v, "per_page", int64(f.PerPage))
	setInt(v, "page", int64(f.Page))
	return v
}

func setString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setInt(v url.Values, key string, val int64) {
	if val != 0 {
		v.Set(key, strconv.FormatInt(val, 10))
	}
}

func setFloat(v url.Values, key string, val float64) {
	if val != 0 {
		v.Set(key, strconv.FormatFloat(val, 'f', -1, 64))
	}
}
