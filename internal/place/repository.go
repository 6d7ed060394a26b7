package place

import (
	"context"
	"errors"

	"github.com/JhonKenma/backend-tecsupNav/internal/db"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("place not found")

type Repository struct {
	db db.Querier
}

func NewRepository(db db.Querier) *Repository {
	return &Repository{db: db}
}

const placeColumns = `id, name, COALESCE(description,''), COALESCE(building,''), COALESCE(floor,''), type,
	       ST_Y(location::geometry), ST_X(location::geometry), created_at`

func (r *Repository) Create(ctx context.Context, input Place) (Place, error) {
	input.ID = uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO places (id, name, description, building, floor, type, location)
		VALUES ($1,$2,$3,$4,$5,$6, ST_SetSRID(ST_MakePoint($7,$8), 4326)::geography)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.Building, input.Floor, input.Type, input.Lng, input.Lat)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Place{}, err
	}
	return input, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (Place, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+placeColumns+`
		FROM places WHERE id=$1
	`, id)
	return scanPlace(row)
}

// FindByName returns the first place whose name, description, building or
// type contains the query, case-insensitive, in source order.
func (r *Repository) FindByName(ctx context.Context, query string) (Place, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+placeColumns+`
		FROM places
		WHERE name ILIKE '%'||$1||'%'
		   OR description ILIKE '%'||$1||'%'
		   OR building ILIKE '%'||$1||'%'
		   OR type ILIKE '%'||$1||'%'
		ORDER BY created_at
		LIMIT 1
	`, query)
	return scanPlace(row)
}

// Nearest returns places within radiusMeters of the coordinate, ascending by
// distance.
func (r *Repository) Nearest(ctx context.Context, from geo.Point, radiusMeters float64) ([]WithDistance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+placeColumns+`,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography)
		FROM places
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography)
	`, from.Lng, from.Lat, radiusMeters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []WithDistance
	for rows.Next() {
		var p Place
		var dist float64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Building, &p.Floor, &p.Type, &p.Lat, &p.Lng, &p.CreatedAt, &dist); err != nil {
			return nil, err
		}
		results = append(results, WithDistance{Place: p, DistanceMeters: dist, WalkingMinutes: geo.WalkingMinutes(dist)})
	}
	return results, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM places WHERE id=$1`, id)
	return err
}

// Annotate attaches distance and walking-time estimates relative to from.
// Distance is zero when from is absent.
func Annotate(p Place, from *geo.Point) WithDistance {
	if from == nil {
		return WithDistance{Place: p}
	}
	dist := geo.Distance(*from, p.Location())
	return WithDistance{Place: p, DistanceMeters: dist, WalkingMinutes: geo.WalkingMinutes(dist)}
}

func scanPlace(row pgx.Row) (Place, error) {
	var p Place
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Building, &p.Floor, &p.Type, &p.Lat, &p.Lng, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Place{}, ErrNotFound
	}
	if err != nil {
		return Place{}, err
	}
	return p, nil
}
