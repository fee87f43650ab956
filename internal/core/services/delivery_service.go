package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/geo"
	"github.com/google/uuid"
)

type deliveryService struct {
	BaseService
	deliveryRepo portsrepo.DeliveryAreaRepositoryFacade
	strategy     domain.DeliveryMatchStrategy
}

// DeliveryServiceOption is a functional option for configuring the delivery service
type DeliveryServiceOption func(*deliveryService)

// WithMatchStrategy selects first-match or nearest-match evaluation.
func WithMatchStrategy(strategy domain.DeliveryMatchStrategy) DeliveryServiceOption {
	return func(s *deliveryService) {
		if strategy == domain.MatchNearest {
			s.strategy = domain.MatchNearest
		}
	}
}

// NewDeliveryService creates a new delivery service. The default strategy is
// first match in display order.
func NewDeliveryService(repo portsrepo.DeliveryAreaRepositoryFacade, options ...DeliveryServiceOption) portssvc.DeliverySvcFacade {
	svc := &deliveryService{deliveryRepo: repo, strategy: domain.MatchFirst}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DeliverySvcFacade = (*deliveryService)(nil)

func (s *deliveryService) CheckDeliveryAvailability(ctx context.Context, lat, lng float64, city string) (*domain.DeliveryMatch, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", apperrors.ErrValidation)
	}

	areas, err := s.deliveryRepo.ListDeliveryAreas(ctx, domain.DeliveryAreaFilter{City: strings.TrimSpace(city)})
	if err != nil {
		s.LogError(ctx, err, "Failed to load delivery areas")
		return nil, err
	}

	customer := geo.Point{Lat: lat, Lng: lng}
	var best *domain.DeliveryMatch
	for _, area := range areas {
		for _, m := range matchArea(area, customer) {
			if s.strategy == domain.MatchFirst {
				return &m, nil
			}
			if best == nil || m.Distance < best.Distance {
				candidate := m
				best = &candidate
			}
		}
	}

	if best == nil {
		s.LogDebug(ctx, "No delivery area covers point",
			slog.Float64("lat", lat), slog.Float64("lng", lng), slog.String("city", city))
	}
	return best, nil
}

// matchArea returns every hit inside one area: the shop-centred circle first,
// then sub-areas in their stored order. Distances are compared unrounded.
func matchArea(area domain.DeliveryArea, customer geo.Point) []domain.DeliveryMatch {
	var matches []domain.DeliveryMatch

	if geo.IsConfigured(area.ShopLat, area.ShopLng) && area.RadiusKm > 0 {
		d := geo.HaversineKm(geo.Point{Lat: *area.ShopLat, Lng: *area.ShopLng}, customer)
		if d <= area.RadiusKm {
			matches = append(matches, domain.DeliveryMatch{
				Distance: d,
				Radius:   area.RadiusKm,
				Area:     area.City,
				Delivery: area,
			})
		}
	}

	for i := range area.SubAreas {
		sub := area.SubAreas[i]
		if !geo.IsConfigured(sub.Lat, sub.Lng) {
			continue
		}
		radius := sub.RadiusKm
		if radius <= 0 {
			radius = area.RadiusKm
		}
		if radius <= 0 {
			continue
		}
		d := geo.HaversineKm(geo.Point{Lat: *sub.Lat, Lng: *sub.Lng}, customer)
		if d <= radius {
			matches = append(matches, domain.DeliveryMatch{
				Distance: d,
				Radius:   radius,
				Area:     sub.Name,
				SubArea:  &sub,
				Delivery: area,
			})
		}
	}
	return matches
}

func (s *deliveryService) CreateDeliveryArea(ctx context.Context, req dto.DeliveryAreaRequest, userID string) (*domain.DeliveryArea, error) {
	area, err := deliveryAreaFromRequest(req)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	area.AreaID = uuid.NewString()
	area.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.deliveryRepo.SaveDeliveryArea(ctx, area); err != nil {
		s.LogError(ctx, err, "Failed to save delivery area", slog.String("city", area.City))
		return nil, err
	}
	s.LogInfo(ctx, "Delivery area created", slog.String("area_id", area.AreaID), slog.String("city", area.City))
	return &area, nil
}

func (s *deliveryService) GetDeliveryArea(ctx context.Context, areaID string) (*domain.DeliveryArea, error) {
	area, err := s.deliveryRepo.FindDeliveryAreaByID(ctx, areaID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find delivery area", slog.String("area_id", areaID))
		}
		return nil, err
	}
	return area, nil
}

func (s *deliveryService) ListDeliveryAreas(ctx context.Context, params dto.ListDeliveryAreasParams) ([]domain.DeliveryArea, error) {
	areas, err := s.deliveryRepo.ListDeliveryAreas(ctx, domain.DeliveryAreaFilter{
		City:            strings.TrimSpace(params.City),
		IncludeInactive: params.IncludeInactive,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list delivery areas")
		return nil, err
	}
	return areas, nil
}

// UpdateDeliveryArea replaces every editable field, keeping creation audit data.
func (s *deliveryService) UpdateDeliveryArea(ctx context.Context, areaID string, req dto.DeliveryAreaRequest, userID string) (*domain.DeliveryArea, error) {
	existing, err := s.GetDeliveryArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	area, err := deliveryAreaFromRequest(req)
	if err != nil {
		return nil, err
	}
	area.AreaID = existing.AreaID
	area.CreatedAt = existing.CreatedAt
	area.CreatedBy = existing.CreatedBy
	area.LastUpdatedAt = time.Now().UTC()
	area.LastUpdatedBy = userID

	if err := s.deliveryRepo.UpdateDeliveryArea(ctx, area); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update delivery area", slog.String("area_id", areaID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Delivery area updated", slog.String("area_id", areaID))
	return &area, nil
}

func (s *deliveryService) DeleteDeliveryArea(ctx context.Context, areaID string) error {
	if err := s.deliveryRepo.DeleteDeliveryArea(ctx, areaID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete delivery area", slog.String("area_id", areaID))
		}
		return err
	}
	s.LogInfo(ctx, "Delivery area deleted", slog.String("area_id", areaID))
	return nil
}

func deliveryAreaFromRequest(req dto.DeliveryAreaRequest) (domain.DeliveryArea, error) {
	if err := validateStruct(req); err != nil {
		return domain.DeliveryArea{}, err
	}
	if (req.ShopLat == nil) != (req.ShopLng == nil) {
		return domain.DeliveryArea{}, fmt.Errorf("%w: shopLat and shopLng must be given together", apperrors.ErrValidation)
	}

	subAreas := make([]domain.SubArea, 0, len(req.SubAreas))
	for i, sa := range req.SubAreas {
		if (sa.Lat == nil) != (sa.Lng == nil) {
			return domain.DeliveryArea{}, fmt.Errorf("%w: sub area %d needs both lat and lng", apperrors.ErrValidation, i+1)
		}
		id := strings.TrimSpace(sa.ID)
		if id == "" {
			id = uuid.NewString()
		}
		subAreas = append(subAreas, domain.SubArea{
			ID:       id,
			Name:     strings.TrimSpace(sa.Name),
			Lat:      sa.Lat,
			Lng:      sa.Lng,
			RadiusKm: sa.RadiusKm,
		})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return domain.DeliveryArea{
		City:         strings.TrimSpace(req.City),
		ShopAddress:  strings.TrimSpace(req.ShopAddress),
		ShopLat:      req.ShopLat,
		ShopLng:      req.ShopLng,
		RadiusKm:     req.RadiusKm,
		SubAreas:     subAreas,
		IsActive:     isActive,
		DisplayOrder: req.DisplayOrder,
	}, nil
}
