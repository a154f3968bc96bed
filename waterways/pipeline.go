package waterways

import (
	"context"
	"fmt"

	"github.com/01100100/kreuzungen/geo"
	"github.com/01100100/kreuzungen/overpass"
)

// Overpass is the slice of the Overpass client the pipeline needs.
type Overpass interface {
	Query(ctx context.Context, query string) (*overpass.Response, error)
}

// Config carries pipeline tuning. The zero value uses defaults.
type Config struct {
	// BBoxAreaLimit is the bounding box area in m² above which only waterway
	// relations are queried. Deployed values have ranged from 5e8 to 1e10,
	// so this is configuration rather than a constant.
	BBoxAreaLimit float64
}

func (c Config) bboxAreaLimit() float64 {
	if c.BBoxAreaLimit > 0 {
		return c.BBoxAreaLimit
	}
	return overpass.DefaultBBoxAreaLimit
}

// Crossings runs the core pipeline for one route: scope a query to the
// route's bounding box, fetch candidate waterways, merge same-named
// fragments, and keep the ones the route crosses. Results follow response
// order; use OrderAlongRoute when display order matters.
func Crossings(ctx context.Context, op Overpass, route geo.Route, cfg Config) ([]Waterway, error) {
	query := overpass.WaterwaysInBBox(route.Bound(), cfg.bboxAreaLimit())
	resp, err := op.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch waterways: %w", err)
	}
	merged := Merge(overpass.Fragments(resp))
	return Intersecting(merged, route), nil
}

// ForArea fetches and merges all waterways of an Overpass area, optionally
// only the ones mapped as relations.
func ForArea(ctx context.Context, op Overpass, areaID int64, relationsOnly bool) ([]Waterway, error) {
	query := overpass.WaterwaysInArea(areaID)
	if relationsOnly {
		query = overpass.WaterwayRelationsInArea(areaID)
	}
	resp, err := op.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch waterways for area %d: %w", areaID, err)
	}
	return Merge(overpass.Fragments(resp)), nil
}
