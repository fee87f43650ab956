package services

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
)

// DeliveryCheckerSvc answers delivery availability questions.
type DeliveryCheckerSvc interface {
	// CheckDeliveryAvailability returns the matching area, or nil when the
	// point is outside every active area.
	CheckDeliveryAvailability(ctx context.Context, lat, lng float64, city string) (*domain.DeliveryMatch, error)
}

// DeliveryAreaSvc manages delivery areas.
type DeliveryAreaSvc interface {
	CreateDeliveryArea(ctx context.Context, req dto.DeliveryAreaRequest, userID string) (*domain.DeliveryArea, error)
	GetDeliveryArea(ctx context.Context, areaID string) (*domain.DeliveryArea, error)
	ListDeliveryAreas(ctx context.Context, params dto.ListDeliveryAreasParams) ([]domain.DeliveryArea, error)
	UpdateDeliveryArea(ctx context.Context, areaID string, req dto.DeliveryAreaRequest, userID string) (*domain.DeliveryArea, error)
	DeleteDeliveryArea(ctx context.Context, areaID string) error
}

// DeliverySvcFacade combines all delivery-related service interfaces
type DeliverySvcFacade interface {
	DeliveryCheckerSvc
	DeliveryAreaSvc
}
