package waterways

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/01100100/kreuzungen/geo"
	"github.com/01100100/kreuzungen/overpass"
)

// CompletedCities returns the Overpass area ids of the cities and towns
// touched by the route's bounding box in which every merged waterway is
// crossed by the route. Waterways are fetched per city concurrently; a failed
// fetch skips that city only.
func CompletedCities(ctx context.Context, op Overpass, route geo.Route) ([]int64, error) {
	resp, err := op.Query(ctx, overpass.CityRelationsInBBox(route.Bound()))
	if err != nil {
		return nil, fmt.Errorf("fetch cities: %w", err)
	}
	areaIDs := overpass.AreaIDs(resp)

	results := make([][]Waterway, len(areaIDs))
	errs := make([]error, len(areaIDs))
	var wg sync.WaitGroup
	for i, id := range areaIDs {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			results[i], errs[i] = ForArea(ctx, op, id, false)
		}(i, id)
	}
	wg.Wait()

	var completed []int64
	for i, id := range areaIDs {
		if errs[i] != nil {
			slog.Warn("skipping city", "area_id", id, "err", errs[i])
			continue
		}
		ws := results[i]
		if len(ws) == 0 {
			continue
		}
		if len(Intersecting(ws, route)) == len(ws) {
			completed = append(completed, id)
		}
	}
	return completed, nil
}
