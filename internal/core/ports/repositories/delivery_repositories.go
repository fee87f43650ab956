package repositories

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// DeliveryAreaReader defines read operations for delivery areas
type DeliveryAreaReader interface {
	FindDeliveryAreaByID(ctx context.Context, areaID string) (*domain.DeliveryArea, error)

	// ListDeliveryAreas returns areas ordered by display order then creation
	// time. City matching is case-insensitive.
	ListDeliveryAreas(ctx context.Context, filter domain.DeliveryAreaFilter) ([]domain.DeliveryArea, error)
}

// DeliveryAreaWriter defines write operations for delivery areas
type DeliveryAreaWriter interface {
	SaveDeliveryArea(ctx context.Context, area domain.DeliveryArea) error
	UpdateDeliveryArea(ctx context.Context, area domain.DeliveryArea) error
	DeleteDeliveryArea(ctx context.Context, areaID string) error
}

// DeliveryAreaRepositoryFacade combines all delivery-area repository interfaces
type DeliveryAreaRepositoryFacade interface {
	DeliveryAreaReader
	DeliveryAreaWriter
}
