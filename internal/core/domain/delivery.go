package domain

// SubArea is a named neighbourhood inside a delivery area with its own centre
// and optional radius override.
type SubArea struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	RadiusKm float64  `json:"radiusKm"`
}

// DeliveryArea is a shop location with a delivery radius. A zero radius
// disables the shop-centred check.
type DeliveryArea struct {
	AreaID       string    `json:"areaID"`
	City         string    `json:"city"`
	ShopAddress  string    `json:"shopAddress"`
	ShopLat      *float64  `json:"shopLat,omitempty"`
	ShopLng      *float64  `json:"shopLng,omitempty"`
	RadiusKm     float64   `json:"radiusKm"`
	SubAreas     []SubArea `json:"subAreas"`
	IsActive     bool      `json:"isActive"`
	DisplayOrder int       `json:"displayOrder"`
	AuditFields
}

// DeliveryMatch is the outcome of a successful availability check.
type DeliveryMatch struct {
	Distance float64 // unrounded kilometres
	Radius   float64
	Area     string   // sub-area name, or the city for shop-centred matches
	SubArea  *SubArea // set when a sub-area matched
	Delivery DeliveryArea
}

// DeliveryMatchStrategy selects how overlapping areas are resolved.
type DeliveryMatchStrategy string

const (
	MatchFirst   DeliveryMatchStrategy = "first"
	MatchNearest DeliveryMatchStrategy = "nearest"
)

// DeliveryAreaFilter narrows the candidate areas for listing and checking.
type DeliveryAreaFilter struct {
	City            string
	IncludeInactive bool
}
