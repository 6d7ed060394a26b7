package route

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/JhonKenma/backend-tecsupNav/internal/db"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNoCustomRoute = errors.New("no custom route between places")

// Store looks up admin-curated routes between known places.
type Store interface {
	// FindBetween returns the stored route between two places, searching both
	// directions. The returned flag reports whether the stored route was
	// reversed to match the requested direction.
	FindBetween(ctx context.Context, fromPlaceID, toPlaceID string) (Info, bool, error)
}

// PgStore persists custom routes in Postgres, with the point sequence stored
// as a JSON array.
type PgStore struct {
	db db.Querier
}

func NewPgStore(db db.Querier) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) FindBetween(ctx context.Context, fromPlaceID, toPlaceID string) (Info, bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT from_place_id, points, distance_m, duration_min, accessible, COALESCE(difficulty,''), COALESCE(notes,'{}')
		FROM custom_routes
		WHERE (from_place_id=$1 AND to_place_id=$2)
		   OR (from_place_id=$2 AND to_place_id=$1)
		LIMIT 1
	`, fromPlaceID, toPlaceID)

	var storedFrom string
	var rawPoints []byte
	info := Info{Source: SourceCustom}
	err := row.Scan(&storedFrom, &rawPoints, &info.DistanceMeters, &info.DurationMinutes, &info.Accessible, &info.Difficulty, &info.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return Info{}, false, ErrNoCustomRoute
	}
	if err != nil {
		return Info{}, false, err
	}
	if err := json.Unmarshal(rawPoints, &info.Points); err != nil {
		return Info{}, false, err
	}

	reversed := storedFrom != fromPlaceID
	if reversed {
		// Assumes walking paths are directionally symmetric: only the point
		// sequence flips, stored distance and duration are kept.
		reversePoints(info.Points)
	}
	return info, reversed, nil
}

func (s *PgStore) Create(ctx context.Context, input CustomRoute) (CustomRoute, error) {
	input.ID = uuid.NewString()
	rawPoints, err := json.Marshal(input.Points)
	if err != nil {
		return CustomRoute{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO custom_routes (id, from_place_id, to_place_id, points, distance_m, duration_min, accessible, difficulty, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`, input.ID, input.FromPlaceID, input.ToPlaceID, rawPoints, input.DistanceMeters, input.DurationMinutes,
		input.Accessible, input.Difficulty, input.Notes, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return CustomRoute{}, err
	}
	return input, nil
}

func (s *PgStore) List(ctx context.Context) ([]CustomRoute, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, from_place_id, to_place_id, points, distance_m, duration_min, accessible, COALESCE(difficulty,''), COALESCE(notes,'{}'), created_by, created_at
		FROM custom_routes
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []CustomRoute
	for rows.Next() {
		var cr CustomRoute
		var rawPoints []byte
		if err := rows.Scan(&cr.ID, &cr.FromPlaceID, &cr.ToPlaceID, &rawPoints, &cr.DistanceMeters, &cr.DurationMinutes,
			&cr.Accessible, &cr.Difficulty, &cr.Notes, &cr.CreatedBy, &cr.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawPoints, &cr.Points); err != nil {
			return nil, err
		}
		routes = append(routes, cr)
	}
	return routes, nil
}

func reversePoints(points []geo.Point) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
