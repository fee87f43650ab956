package dto

import (
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/geo"
)

// CheckDeliveryRequest is the body of POST /delivery/check.
type CheckDeliveryRequest struct {
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
	City      string     `json:"city"`
}

// CheckDeliveryResponse answers whether a point can be delivered to.
type CheckDeliveryResponse struct {
	Available    bool                  `json:"available"`
	Distance     *float64              `json:"distance,omitempty"`
	Radius       *float64              `json:"radius,omitempty"`
	Area         *string               `json:"area,omitempty"`
	SubArea      *domain.SubArea       `json:"subArea,omitempty"`
	DeliveryArea *DeliveryAreaResponse `json:"deliveryArea,omitempty"`
	Message      string                `json:"message,omitempty"`
}

// SubAreaRequest is a named neighbourhood inside a delivery area.
type SubAreaRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"required,max=120"`
	Lat      *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng      *float64 `json:"lng" validate:"omitempty,longitude"`
	RadiusKm float64  `json:"radiusKm" validate:"gte=0"`
}

// DeliveryAreaRequest creates or fully replaces a delivery area.
type DeliveryAreaRequest struct {
	City         string           `json:"city" validate:"required,max=120"`
	ShopAddress  string           `json:"shopAddress" validate:"max=500"`
	ShopLat      *float64         `json:"shopLat" validate:"omitempty,latitude"`
	ShopLng      *float64         `json:"shopLng" validate:"omitempty,longitude"`
	RadiusKm     float64          `json:"radiusKm" validate:"gte=0"`
	SubAreas     []SubAreaRequest `json:"subAreas" validate:"dive"`
	IsActive     *bool            `json:"isActive"`
	DisplayOrder int              `json:"displayOrder"`
}

// ListDeliveryAreasParams defines query parameters for listing delivery areas.
type ListDeliveryAreasParams struct {
	City            string `form:"city"`
	IncludeInactive bool   `form:"includeInactive"`
}

// DeliveryAreaResponse is a persisted delivery area.
type DeliveryAreaResponse struct {
	AreaID       string           `json:"areaID"`
	City         string           `json:"city"`
	ShopAddress  string           `json:"shopAddress"`
	ShopLat      *float64         `json:"shopLat,omitempty"`
	ShopLng      *float64         `json:"shopLng,omitempty"`
	RadiusKm     float64          `json:"radiusKm"`
	SubAreas     []domain.SubArea `json:"subAreas"`
	IsActive     bool             `json:"isActive"`
	DisplayOrder int              `json:"displayOrder"`
	CreatedAt    time.Time        `json:"createdAt"`
	LastUpdateAt time.Time        `json:"lastUpdatedAt"`
}

// ToDeliveryAreaResponse converts a domain delivery area.
func ToDeliveryAreaResponse(a *domain.DeliveryArea) DeliveryAreaResponse {
	subAreas := a.SubAreas
	if subAreas == nil {
		subAreas = []domain.SubArea{}
	}
	return DeliveryAreaResponse{
		AreaID:       a.AreaID,
		City:         a.City,
		ShopAddress:  a.ShopAddress,
		ShopLat:      a.ShopLat,
		ShopLng:      a.ShopLng,
		RadiusKm:     a.RadiusKm,
		SubAreas:     subAreas,
		IsActive:     a.IsActive,
		DisplayOrder: a.DisplayOrder,
		CreatedAt:    a.CreatedAt,
		LastUpdateAt: a.LastUpdatedAt,
	}
}

// ToListDeliveryAreaResponse converts a slice of delivery areas.
func ToListDeliveryAreaResponse(areas []domain.DeliveryArea) []DeliveryAreaResponse {
	res := make([]DeliveryAreaResponse, len(areas))
	for i := range areas {
		res[i] = ToDeliveryAreaResponse(&areas[i])
	}
	return res
}

// ToCheckDeliveryResponse renders a match, or the not-available answer when
// match is nil.
func ToCheckDeliveryResponse(match *domain.DeliveryMatch, notAvailableMessage string) CheckDeliveryResponse {
	if match == nil {
		return CheckDeliveryResponse{Available: false, Message: notAvailableMessage}
	}
	distance := geo.RoundTo(match.Distance, 1)
	radius := match.Radius
	area := match.Area
	delivery := ToDeliveryAreaResponse(&match.Delivery)
	return CheckDeliveryResponse{
		Available:    true,
		Distance:     &distance,
		Radius:       &radius,
		Area:         &area,
		SubArea:      match.SubArea,
		DeliveryArea: &delivery,
	}
}
