// Package webhookd serves the Strava webhook surface and runs the crossing
// pipeline for incoming activity events.
package webhookd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/01100100/kreuzungen/geo"
	"github.com/01100100/kreuzungen/strava"
	"github.com/01100100/kreuzungen/tokens"
	"github.com/01100100/kreuzungen/waterways"
)

// Strava is the slice of the Strava client the processor needs.
type Strava interface {
	AccessToken(ctx context.Context, refreshToken string) (string, error)
	Activity(ctx context.Context, id int64, accessToken string) (*strava.Activity, error)
	UpdateDescription(ctx context.Context, id int64, accessToken, description string) error
}

// TokenStore is the slice of the tokens store the processor needs.
type TokenStore interface {
	RefreshToken(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
}

// Deps are the external collaborators of one deployment.
type Deps struct {
	Strava   Strava
	Tokens   TokenStore
	Overpass waterways.Overpass
	Config   waterways.Config
}

// ProcessActivity annotates one newly created activity with the waterways it
// crossed. Missing data (no stored token, no summary polyline, nothing
// crossed) is a skip, not an error; only external failures come back as
// errors.
func ProcessActivity(ctx context.Context, d Deps, ownerID, activityID int64) error {
	refreshToken, err := d.Tokens.RefreshToken(ctx, ownerID)
	if errors.Is(err, tokens.ErrNotFound) {
		slog.Info("no refresh token, skipping activity", "owner_id", ownerID, "activity_id", activityID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load refresh token for %d: %w", ownerID, err)
	}

	accessToken, err := d.Strava.AccessToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("get access token for %d: %w", ownerID, err)
	}

	activity, err := d.Strava.Activity(ctx, activityID, accessToken)
	if err != nil {
		return fmt.Errorf("get activity %d: %w", activityID, err)
	}
	if activity.Map.SummaryPolyline == "" {
		slog.Info("activity has no summary polyline, skipping", "activity_id", activityID)
		return nil
	}

	route, err := geo.DecodePolyline(activity.Map.SummaryPolyline)
	if err != nil {
		return fmt.Errorf("decode summary polyline of %d: %w", activityID, err)
	}

	crossed, err := waterways.Crossings(ctx, d.Overpass, route, d.Config)
	if err != nil {
		return fmt.Errorf("calculate crossings for %d: %w", activityID, err)
	}
	if len(crossed) == 0 {
		slog.Info("no waterways crossed", "activity_id", activityID)
		return nil
	}

	names := crossingNames(crossed, route)
	description := waterways.AppendOrUpdate(activity.Description, waterways.FormatMessage(names))
	if err := d.Strava.UpdateDescription(ctx, activityID, accessToken, description); err != nil {
		return err
	}

	slog.Info("updated activity description", "activity_id", activityID, "waterways", len(names))
	return nil
}

// crossingNames lists the crossed waterway names in the order the route
// meets them. If the orderer cannot place any of them, response order is
// kept rather than reporting nothing.
func crossingNames(crossed []waterways.Waterway, route geo.Route) []string {
	ordered := waterways.OrderAlongRoute(crossed, route)
	if len(ordered) > 0 {
		names := make([]string, len(ordered))
		for i, c := range ordered {
			names[i] = c.Name
		}
		return names
	}
	names := make([]string, len(crossed))
	for i, w := range crossed {
		names[i] = w.Name
	}
	return names
}
