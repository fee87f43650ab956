package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deliveryAreaColumns = `area_id, city, shop_address, shop_lat, shop_lng, radius_km, sub_areas, is_active, display_order, created_at, created_by, last_updated_at, last_updated_by`

type PgxDeliveryAreaRepository struct {
	BaseRepository
}

func newPgxDeliveryAreaRepository(pool *pgxpool.Pool) portsrepo.DeliveryAreaRepositoryFacade {
	return &PgxDeliveryAreaRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DeliveryAreaRepositoryFacade = (*PgxDeliveryAreaRepository)(nil)

func scanDeliveryArea(row pgx.Row) (domain.DeliveryArea, error) {
	var m models.DeliveryArea
	err := row.Scan(
		&m.AreaID,
		&m.City,
		&m.ShopAddress,
		&m.ShopLat,
		&m.ShopLng,
		&m.RadiusKm,
		&m.SubAreas,
		&m.IsActive,
		&m.DisplayOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.DeliveryArea{}, err
	}
	return mapping.ToDomainDeliveryArea(m)
}

func (r *PgxDeliveryAreaRepository) FindDeliveryAreaByID(ctx context.Context, areaID string) (*domain.DeliveryArea, error) {
	if _, err := uuid.Parse(areaID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + deliveryAreaColumns + ` FROM delivery_areas WHERE area_id = $1;`
	area, err := scanDeliveryArea(r.Pool.QueryRow(ctx, query, areaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find delivery area %s: %w", areaID, err)
	}
	return &area, nil
}

func (r *PgxDeliveryAreaRepository) ListDeliveryAreas(ctx context.Context, filter domain.DeliveryAreaFilter) ([]domain.DeliveryArea, error) {
	var conditions []string
	var args []any
	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		args = append(args, city)
		conditions = append(conditions, "LOWER(city) = LOWER($1)")
	}

	query := `SELECT ` + deliveryAreaColumns + ` FROM delivery_areas`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY display_order ASC, created_at ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery areas: %w", err)
	}
	defer rows.Close()

	areas := []domain.DeliveryArea{}
	for rows.Next() {
		area, err := scanDeliveryArea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery area row: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery area rows: %w", err)
	}
	return areas, nil
}

func (r *PgxDeliveryAreaRepository) SaveDeliveryArea(ctx context.Context, area domain.DeliveryArea) error {
	m, err := mapping.ToModelDeliveryArea(area)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO delivery_areas (` + deliveryAreaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.AreaID,
		m.City,
		m.ShopAddress,
		m.ShopLat,
		m.ShopLng,
		m.RadiusKm,
		string(m.SubAreas),
		m.IsActive,
		m.DisplayOrder,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: delivery area %s already exists", apperrors.ErrDuplicate, m.AreaID)
		}
		return fmt.Errorf("failed to save delivery area %s: %w", m.AreaID, err)
	}
	return nil
}

func (r *PgxDeliveryAreaRepository) UpdateDeliveryArea(ctx context.Context, area domain.DeliveryArea) error {
	m, err := mapping.ToModelDeliveryArea(area)
	if err != nil {
		return err
	}
	query := `
		UPDATE delivery_areas
		SET city = $2, shop_address = $3, shop_lat = $4, shop_lng = $5, radius_km = $6, sub_areas = $7,
		    is_active = $8, display_order = $9, last_updated_at = $10, last_updated_by = $11
		WHERE area_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AreaID,
		m.City,
		m.ShopAddress,
		m.ShopLat,
		m.ShopLng,
		m.RadiusKm,
		string(m.SubAreas),
		m.IsActive,
		m.DisplayOrder,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update delivery area %s: %w", m.AreaID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDeliveryAreaRepository) DeleteDeliveryArea(ctx context.Context, areaID string) error {
	if _, err := uuid.Parse(areaID); err != nil {
		return apperrors.ErrNotFound
	}
	tag, err := r.Pool.Exec(ctx, `DELETE FROM delivery_areas WHERE area_id = $1;`, areaID)
	if err != nil {
		return fmt.Errorf("failed to delete delivery area %s: %w", areaID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
