// Package stash persists shared routes: the GeoJSON document in Postgres and,
// for file uploads, the original GPX in an object bucket.
package stash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/01100100/kreuzungen/geo"
)

var ErrNotFound = pgx.ErrNoRows

type Store struct {
	db      *pgxpool.Pool
	mc      *minio.Client
	bucket  string
	baseURL string
}

// New wires a store. mc may be nil when no object storage is configured; GPX
// archiving is then a no-op.
func New(db *pgxpool.Pool, mc *minio.Client, bucket, baseURL string) *Store {
	return &Store{db: db, mc: mc, bucket: bucket, baseURL: baseURL}
}

func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, config)
}

// SavedRoute identifies a stored route and its shareable URL.
type SavedRoute struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Save stores a route and returns its id and share URL.
func (s *Store) Save(ctx context.Context, route geo.Route) (SavedRoute, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return SavedRoute{}, err
	}

	f := geojson.NewFeature(route.Line)
	if route.Name != "" {
		f.Properties["name"] = route.Name
	}
	if route.URL != "" {
		f.Properties["url"] = route.URL
	}
	doc, err := json.Marshal(f)
	if err != nil {
		return SavedRoute{}, fmt.Errorf("encode route: %w", err)
	}

	_, err = s.db.Exec(ctx,
		"INSERT INTO routes (id, name, feature) VALUES ($1, $2, $3)",
		id.String(), route.Name, doc)
	if err != nil {
		return SavedRoute{}, fmt.Errorf("insert route: %w", err)
	}

	return SavedRoute{
		ID:  id.String(),
		URL: fmt.Sprintf("%s/?saved=%s", s.baseURL, id.String()),
	}, nil
}

// Route loads a saved route by id. Returns ErrNotFound for unknown ids.
func (s *Store) Route(ctx context.Context, id string) (geo.Route, error) {
	var doc []byte
	err := s.db.QueryRow(ctx, "SELECT feature FROM routes WHERE id = $1", id).Scan(&doc)
	if err != nil {
		return geo.Route{}, err
	}

	f, err := geojson.UnmarshalFeature(doc)
	if err != nil {
		return geo.Route{}, fmt.Errorf("decode route %s: %w", id, err)
	}
	line, ok := f.Geometry.(orb.LineString)
	if !ok {
		return geo.Route{}, fmt.Errorf("route %s is a %s, want LineString", id, f.Geometry.GeoJSONType())
	}

	route := geo.Route{Line: line}
	if name, ok := f.Properties["name"].(string); ok {
		route.Name = name
	}
	if url, ok := f.Properties["url"].(string); ok {
		route.URL = url
	}
	return route, nil
}

// ArchiveGPX keeps the original uploaded file alongside the parsed route so
// it can be re-downloaded later.
func (s *Store) ArchiveGPX(ctx context.Context, id string, contents []byte) error {
	if s.mc == nil {
		return nil
	}
	_, err := s.mc.PutObject(ctx, s.bucket, id+".gpx",
		bytes.NewReader(contents), int64(len(contents)),
		minio.PutObjectOptions{ContentType: "application/gpx+xml"})
	if err != nil {
		return fmt.Errorf("archive gpx %s: %w", id, err)
	}
	return nil
}
