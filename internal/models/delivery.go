package models

import "database/sql"

// DeliveryArea is a row of the delivery_areas table. Sub-areas live in a
// jsonb column.
type DeliveryArea struct {
	AreaID       string          `db:"area_id"`
	City         string          `db:"city"`
	ShopAddress  sql.NullString  `db:"shop_address"`
	ShopLat      sql.NullFloat64 `db:"shop_lat"`
	ShopLng      sql.NullFloat64 `db:"shop_lng"`
	RadiusKm     float64         `db:"radius_km"`
	SubAreas     []byte          `db:"sub_areas"`
	IsActive     bool            `db:"is_active"`
	DisplayOrder int             `db:"display_order"`
	AuditFields
}
