package webhookd

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01100100/kreuzungen/geo"
	"github.com/01100100/kreuzungen/overpass"
	"github.com/01100100/kreuzungen/strava"
	"github.com/01100100/kreuzungen/tokens"
	"github.com/01100100/kreuzungen/waterways"
)

type fakeStrava struct {
	activity *strava.Activity

	updatedID          int64
	updatedDescription string
	updated            chan string // signalled on UpdateDescription when set
}

func (f *fakeStrava) AccessToken(_ context.Context, refreshToken string) (string, error) {
	if refreshToken != "refresh123" {
		return "", errors.New("unknown refresh token")
	}
	return "access456", nil
}

func (f *fakeStrava) Activity(_ context.Context, id int64, accessToken string) (*strava.Activity, error) {
	if accessToken != "access456" {
		return nil, errors.New("bad access token")
	}
	if f.activity == nil || f.activity.ID != id {
		return nil, errors.New("no such activity")
	}
	return f.activity, nil
}

func (f *fakeStrava) UpdateDescription(_ context.Context, id int64, _, description string) error {
	f.updatedID = id
	f.updatedDescription = description
	if f.updated != nil {
		f.updated <- description
	}
	return nil
}

type fakeTokens struct {
	refreshTokens map[int64]string
	deleted       []int64
	deletions     chan int64 // signalled on Delete when set
}

func (f *fakeTokens) RefreshToken(_ context.Context, userID int64) (string, error) {
	token, ok := f.refreshTokens[userID]
	if !ok {
		return "", tokens.ErrNotFound
	}
	return token, nil
}

func (f *fakeTokens) Delete(_ context.Context, userID int64) error {
	f.deleted = append(f.deleted, userID)
	if f.deletions != nil {
		f.deletions <- userID
	}
	return nil
}

type fakeOverpass struct {
	query func(ctx context.Context, query string) (*overpass.Response, error)
}

func (f *fakeOverpass) Query(ctx context.Context, query string) (*overpass.Response, error) {
	return f.query(ctx, query)
}

// testPolyline encodes a short eastward route along the equator.
func testPolyline(t *testing.T) string {
	t.Helper()
	route := geo.Route{Line: orb.LineString{{0, 0}, {0.1, 0}}}
	return route.EncodePolyline()
}

func crossingResponse() *overpass.Response {
	return &overpass.Response{Elements: []overpass.Element{
		{
			Type: "way", ID: 10,
			Tags: map[string]string{"name": "River Test", "waterway": "river"},
			Geometry: []overpass.LatLon{
				{Lat: -0.01, Lon: 0.05},
				{Lat: 0.01, Lon: 0.05},
			},
		},
	}}
}

func testDeps(st *fakeStrava, tk *fakeTokens, resp *overpass.Response) Deps {
	return Deps{
		Strava: st,
		Tokens: tk,
		Overpass: &fakeOverpass{query: func(_ context.Context, _ string) (*overpass.Response, error) {
			return resp, nil
		}},
		Config: waterways.Config{},
	}
}

func TestProcessActivity(t *testing.T) {
	st := &fakeStrava{activity: &strava.Activity{ID: 12345, Description: "Morning ride"}}
	st.activity.Map.SummaryPolyline = testPolyline(t)
	tk := &fakeTokens{refreshTokens: map[int64]string{99: "refresh123"}}

	err := ProcessActivity(context.Background(), testDeps(st, tk, crossingResponse()), 99, 12345)
	require.NoError(t, err)

	assert.Equal(t, int64(12345), st.updatedID)
	assert.Equal(t, "Morning ride\n\nCrossed 1 waterway 🏞️ River Test 🌐 Powered by Kreuzungen World 🗺️",
		st.updatedDescription)
}

func TestProcessActivityReplacesStaleAnnotation(t *testing.T) {
	st := &fakeStrava{activity: &strava.Activity{
		ID:          12345,
		Description: "Crossed 2 waterways 🏞️ Old | Names 🌐 Powered by Kreuzungen World 🗺️",
	}}
	st.activity.Map.SummaryPolyline = testPolyline(t)
	tk := &fakeTokens{refreshTokens: map[int64]string{99: "refresh123"}}

	err := ProcessActivity(context.Background(), testDeps(st, tk, crossingResponse()), 99, 12345)
	require.NoError(t, err)

	assert.Equal(t, "Crossed 1 waterway 🏞️ River Test 🌐 Powered by Kreuzungen World 🗺️",
		st.updatedDescription)
}

func TestProcessActivityNoTokenSkips(t *testing.T) {
	st := &fakeStrava{}
	tk := &fakeTokens{}

	err := ProcessActivity(context.Background(), testDeps(st, tk, crossingResponse()), 99, 12345)
	require.NoError(t, err)
	assert.Zero(t, st.updatedID)
}

func TestProcessActivityNoPolylineSkips(t *testing.T) {
	st := &fakeStrava{activity: &strava.Activity{ID: 12345}}
	tk := &fakeTokens{refreshTokens: map[int64]string{99: "refresh123"}}

	err := ProcessActivity(context.Background(), testDeps(st, tk, crossingResponse()), 99, 12345)
	require.NoError(t, err)
	assert.Zero(t, st.updatedID)
}

func TestProcessActivityNoCrossingsSkips(t *testing.T) {
	st := &fakeStrava{activity: &strava.Activity{ID: 12345}}
	st.activity.Map.SummaryPolyline = testPolyline(t)
	tk := &fakeTokens{refreshTokens: map[int64]string{99: "refresh123"}}

	err := ProcessActivity(context.Background(), testDeps(st, tk, &overpass.Response{}), 99, 12345)
	require.NoError(t, err)
	assert.Zero(t, st.updatedID)
}

func TestProcessActivityOverpassErrorPropagates(t *testing.T) {
	st := &fakeStrava{activity: &strava.Activity{ID: 12345}}
	st.activity.Map.SummaryPolyline = testPolyline(t)
	tk := &fakeTokens{refreshTokens: map[int64]string{99: "refresh123"}}

	deps := testDeps(st, tk, nil)
	deps.Overpass = &fakeOverpass{query: func(_ context.Context, _ string) (*overpass.Response, error) {
		return nil, errors.New("overpass down")
	}}

	err := ProcessActivity(context.Background(), deps, 99, 12345)
	require.Error(t, err)
	assert.Zero(t, st.updatedID)
}
