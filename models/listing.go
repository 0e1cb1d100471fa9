package models

import (
	"github.com/google/uuid"
)

// PlaceholderImage stands in for listings whose source carried no usable
// photo. HasImage is derived from it and nothing else.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=No+Image"

// DeliveryInfo carries the free-text delivery terms some sources publish.
type DeliveryInfo struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

// Listing is the canonical vehicle record every source adapter produces.
// It is immutable once it enters the catalog. Optional numeric fields use
// nil as the single "not available" representation; display sentinels such
// as "Unknown" live only in the free-text string fields.
type Listing struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	Source          string       `json:"source" db:"source"`
	Title           string       `json:"title" db:"title"`
	Link            string       `json:"link" db:"link"`
	Price           float64      `json:"price" db:"price"`
	PriceWithoutTax *float64     `json:"priceWithoutTax" db:"price_without_tax"`
	Power           *int         `json:"power" db:"power"`
	Year            *int         `json:"year" db:"year"`
	Mileage         *int         `json:"mileage" db:"mileage"`
	Transmission    string       `json:"transmission" db:"transmission"`
	FuelType        string       `json:"fuelType" db:"fuel_type"`
	Condition       string       `json:"condition" db:"condition"`
	Tags            []string     `json:"tags" db:"tags"`
	DeliveryInfo    DeliveryInfo `json:"deliveryInfo" db:"delivery_info"`
	Images          []string     `json:"images" db:"images"`
	Brand           string       `json:"brand" db:"brand"`
	Model           string       `json:"model" db:"model"`
	Color           string       `json:"color" db:"color"`
	Country         string       `json:"country" db:"country"`
	Doors           int          `json:"doors" db:"doors"`
	BodyType        string       `json:"bodyType" db:"body_type"`
	EngineType      string       `json:"engineType" db:"engine_type"`
	HasImage        bool         `json:"hasImage" db:"has_image"`
}

// FinishImages enforces the image invariants: Images is never empty (the
// placeholder fills the gap) and HasImage reflects whether the first image
// is a real photo. Every adapter calls this exactly once before returning.
func (l *Listing) FinishImages(images []string) {
	if len(images) == 0 {
		images = []string{PlaceholderImage}
	}
	l.Images = images
	l.HasImage = images[0] != PlaceholderImage
}

// YearKnown reports whether the registration/production year was parsed.
func (l *Listing) YearKnown() bool {
	return l.Year != nil
}
