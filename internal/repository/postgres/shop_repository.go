package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/utils"
)

// searchRadii - радиусы поиска в метрах, расширяются пока кандидатов меньше limit
var searchRadii = []float64{2000, 5000, 10000, 25000, 50000}

type shopRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewShopRepository(db *DB) repository.ShopStoreRepository {
	return &shopRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type shopRow struct {
	ID        string  `db:"id"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	Raw       []byte  `db:"raw"`
}

// SearchNearby ищет магазины внутри bounding box вокруг точки. Если в
// квадрате меньше limit магазинов, радиус увеличивается.
// distanceKm в возвращаемых записях считается заново от точки запроса.
func (r *shopRepository) SearchNearby(ctx context.Context, point domain.GeoPoint, limit int) ([]domain.RawShopRecord, *domain.PageInfo, error) {
	center := orb.Point{point.Longitude, point.Latitude}

	query := `
		SELECT id, latitude, longitude, raw
		FROM shops
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		ORDER BY (latitude - $5) * (latitude - $5) + (longitude - $6) * (longitude - $6)
		LIMIT $7
	`

	var rows []shopRow
	for _, radius := range searchRadii {
		bound := geo.NewBoundAroundPoint(center, radius)

		rows = rows[:0]
		err := r.db.SelectContext(ctx, &rows, query,
			bound.Min.Lat(), bound.Max.Lat(),
			bound.Min.Lon(), bound.Max.Lon(),
			point.Latitude, point.Longitude,
			limit,
		)
		if err != nil {
			r.logger.Error("Failed to search shops", zap.Float64("radius_m", radius), zap.Error(err))
			return nil, nil, fmt.Errorf("search shops: %w", errors.ErrDatabaseError)
		}
		if len(rows) >= limit {
			break
		}
	}

	records := make([]domain.RawShopRecord, 0, len(rows))
	for _, row := range rows {
		var raw domain.RawShopRecord
		if err := json.Unmarshal(row.Raw, &raw); err != nil {
			r.logger.Warn("Skipping shop with corrupt raw record", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		km := geo.DistanceHaversine(center, orb.Point{row.Longitude, row.Latitude}) / 1000
		raw["distanceKm"] = utils.RoundTo(km, 2)
		records = append(records, raw)
	}

	return records, &domain.PageInfo{Total: len(records), PageSize: limit}, nil
}

// Upsert сохраняет нормализованные поля для поиска и исходную запись целиком
func (r *shopRepository) Upsert(ctx context.Context, shop *domain.Shop, raw domain.RawShopRecord) error {
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal raw shop: %w", err)
	}

	var lat, lon *float64
	if shop.Coordinates != nil {
		lat, lon = &shop.Coordinates.Latitude, &shop.Coordinates.Longitude
	}

	query := `
		INSERT INTO shops (id, slug, name, latitude, longitude, amenities, payment_methods, raw, indexed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			slug = EXCLUDED.slug,
			name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			amenities = EXCLUDED.amenities,
			payment_methods = EXCLUDED.payment_methods,
			raw = EXCLUDED.raw,
			indexed_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, query,
		shop.ID, shop.Slug, shop.Name, lat, lon,
		pq.Array(enabledAmenities(shop.Amenities)),
		pq.Array(shop.PaymentMethods),
		rawJSON,
	)
	if err != nil {
		r.logger.Error("Failed to upsert shop", zap.String("id", shop.ID), zap.Error(err))
		return fmt.Errorf("upsert shop %s: %w", shop.ID, errors.ErrDatabaseError)
	}

	return nil
}

func enabledAmenities(flags map[string]bool) []string {
	out := make([]string, 0, len(flags))
	for _, key := range domain.AmenityKeys {
		if flags[key] {
			out = append(out, key)
		}
	}
	return out
}
