package domain

import "time"

// PriceType is how a listing is priced.
type PriceType string

const (
	PriceSale        PriceType = "sale"
	PriceRentDaily   PriceType = "rent_daily"
	PriceRentMonthly PriceType = "rent_monthly"
	PriceRentYearly  PriceType = "rent_yearly"
)

// PropertyStatus is the moderation/lifecycle state of a listing.
type PropertyStatus string

const (
	PropertyPending  PropertyStatus = "pending"
	PropertyApproved PropertyStatus = "approved"
	PropertyRejected PropertyStatus = "rejected"
	PropertySold     PropertyStatus = "sold"
	PropertyRented   PropertyStatus = "rented"
)

type Property struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	CategoryID      int64           `json:"category_id"`
	IslandID        int64           `json:"island_id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	PriceType       PriceType       `json:"price_type"`
	LandArea        *float64        `json:"land_area"`
	BuildingArea    *float64        `json:"building_area"`
	Address         string          `json:"address"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	Bedrooms        *int            `json:"bedrooms"`
	Bathrooms       *int            `json:"bathrooms"`
	Facilities      []string        `json:"facilities"`
	Status          PropertyStatus  `json:"status"`
	IsFeatured      bool            `json:"is_featured"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	ViewsCount      int64           `json:"views_count"`
	ApprovedAt      *time.Time      `json:"approved_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Category        *Category       `json:"category,omitempty"`
	Island          *Island         `json:"island,omitempty"`
	User            *User           `json:"user,omitempty"`
	Owner           *User           `json:"owner,omitempty"`
	Images          []PropertyImage `json:"images,omitempty"`
	PrimaryImage    *PropertyImage  `json:"primary_image,omitempty"`
	FormattedPrice  string          `json:"formatted_price,omitempty"`
	PriceWithPeriod string          `json:"price_with_period,omitempty"`
}

type PropertyImage struct {
	ID                 int64     `json:"id"`
	PropertyID         int64     `json:"property_id"`
	ImageURL           string    `json:"image_url"`
	CloudinaryPublicID *string   `json:"cloudinary_public_id"`
	IsPrimary          bool      `json:"is_primary"`
	OrderIndex         int       `json:"order_index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PropertyInput is the create/update form. Update sends it as a partial, so
// optional fields are pointers.
type PropertyInput struct {
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	CategoryID   int64     `json:"category_id,omitempty"`
	IslandID     int64     `json:"island_id,omitempty"`
	Price        float64   `json:"price,omitempty"`
	PriceType    PriceType `json:"price_type,omitempty"`
	LandArea     *float64  `json:"land_area,omitempty"`
	BuildingArea *float64  `json:"building_area,omitempty"`
	Address      string    `json:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Bathrooms    *int      `json:"bathrooms,omitempty"`
	Facilities   []string  `json:"facilities,omitempty"`
}

// ImageUpload is one file of a multipart image upload.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}
