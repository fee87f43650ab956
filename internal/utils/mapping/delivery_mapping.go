package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
)

func ToModelDeliveryArea(d domain.DeliveryArea) (models.DeliveryArea, error) {
	subAreas := d.SubAreas
	if subAreas == nil {
		subAreas = []domain.SubArea{}
	}
	raw, err := json.Marshal(subAreas)
	if err != nil {
		return models.DeliveryArea{}, fmt.Errorf("encode sub areas: %w", err)
	}
	return models.DeliveryArea{
		AreaID:       d.AreaID,
		City:         d.City,
		ShopAddress:  NullString(d.ShopAddress),
		ShopLat:      NullFloat(d.ShopLat),
		ShopLng:      NullFloat(d.ShopLng),
		RadiusKm:     d.RadiusKm,
		SubAreas:     raw,
		IsActive:     d.IsActive,
		DisplayOrder: d.DisplayOrder,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}, nil
}

func ToDomainDeliveryArea(m models.DeliveryArea) (domain.DeliveryArea, error) {
	subAreas := []domain.SubArea{}
	if len(m.SubAreas) > 0 {
		if err := json.Unmarshal(m.SubAreas, &subAreas); err != nil {
			return domain.DeliveryArea{}, fmt.Errorf("decode sub areas of %s: %w", m.AreaID, err)
		}
	}
	return domain.DeliveryArea{
		AreaID:       m.AreaID,
		City:         m.City,
		ShopAddress:  m.ShopAddress.String,
		ShopLat:      FloatPtr(m.ShopLat),
		ShopLng:      FloatPtr(m.ShopLng),
		RadiusKm:     m.RadiusKm,
		SubAreas:     subAreas,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}
