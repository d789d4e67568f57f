package googlemaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/domain"
)

type fakeMapsAPI struct {
	findCalls    atomic.Int32
	detailsCalls atomic.Int32
	lastBias     atomic.Value
	lastInput    atomic.Value
}

func (f *fakeMapsAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))

		switch r.URL.Path {
		case "/maps/api/place/findplacefromtext/json":
			f.findCalls.Add(1)
			f.lastBias.Store(q.Get("locationbias"))
			f.lastInput.Store(q.Get("input"))

			switch {
			case strings.HasPrefix(q.Get("input"), "Nowhere"):
				_, _ = w.Write([]byte(`{"candidates":[],"status":"ZERO_RESULTS"}`))
			case strings.HasPrefix(q.Get("input"), "Denied"):
				_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
			case strings.HasPrefix(q.Get("input"), "Always Open"):
				_, _ = w.Write([]byte(`{"candidates":[{"place_id":"p-24h","name":"Always Open"}],"status":"OK"}`))
			default:
				_, _ = w.Write([]byte(`{"candidates":[{"place_id":"p-museum","name":"Museu Picasso"}],"status":"OK"}`))
			}

		case "/maps/api/place/details/json":
			f.detailsCalls.Add(1)
			if q.Get("placeid") == "p-24h" {
				_, _ = w.Write([]byte(`{"result":{"place_id":"p-24h","name":"Always Open",
					"opening_hours":{"open_now":true,"periods":[{"open":{"day":0,"time":"0000"}}]}},"status":"OK"}`))
				return
			}
			_, _ = w.Write([]byte(`{"result":{"place_id":"p-museum","name":"Museu Picasso","utc_offset":120,
				"opening_hours":{"open_now":true,"periods":[
					{"open":{"day":2,"time":"1000"},"close":{"day":2,"time":"1900"}},
					{"open":{"day":3,"time":"1000"},"close":{"day":3,"time":"1900"}}]}},"status":"OK"}`))

		case "/maps/api/geocode/json":
			if q.Get("address") == "Atlantis" {
				_, _ = w.Write([]byte(`{"results":[],"status":"ZERO_RESULTS"}`))
				return
			}
			_, _ = w.Write([]byte(`{"results":[{"geometry":{"location":{"lat":41.2372,"lng":1.8059}}}],"status":"OK"}`))

		default:
			http.NotFound(w, r)
		}
	}
}

func newTestClient(t *testing.T) (*Client, *fakeMapsAPI) {
	t.Helper()

	api := &fakeMapsAPI{}
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)

	client, err := NewClient(&config.GoogleMapsConfig{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		RequestTimeout: 2 * time.Second,
		SearchRadius:   5000,
	}, time.Minute, zap.NewNop())
	require.NoError(t, err)

	return client, api
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	client, err := NewClient(&config.GoogleMapsConfig{}, time.Minute, zap.NewNop())

	assert.Nil(t, client)
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestClient_LookupHours(t *testing.T) {
	ctx := context.Background()

	t.Run("found with circular bias", func(t *testing.T) {
		client, api := newTestClient(t)
		near := domain.Location{Address: "41.3851,2.1734", Coordinate: &domain.Coordinate{Lat: 41.3851, Lon: 2.1734}}

		hours, err := client.LookupHours(ctx, "Picasso Museum", near)

		require.NoError(t, err)
		require.NotNil(t, hours)
		assert.Equal(t, "p-museum", hours.PlaceID)
		assert.Equal(t, "Museu Picasso", hours.Name)
		require.NotNil(t, hours.OpenNow)
		assert.True(t, *hours.OpenNow)
		require.NotNil(t, hours.UTCOffsetMinutes)
		assert.Equal(t, 120, *hours.UTCOffsetMinutes)
		require.Len(t, hours.Periods, 2)
		assert.Equal(t, domain.WeeklyTime{Day: time.Tuesday, Minute: 600}, hours.Periods[0].Open)
		require.NotNil(t, hours.Periods[0].Close)
		assert.Equal(t, domain.WeeklyTime{Day: time.Tuesday, Minute: 1140}, *hours.Periods[0].Close)

		assert.True(t, strings.HasPrefix(api.lastBias.Load().(string), "circle:5000@"))
		assert.Equal(t, "Picasso Museum", api.lastInput.Load().(string))
	})

	t.Run("place id is cached, hours are not", func(t *testing.T) {
		client, api := newTestClient(t)
		near := domain.Location{Address: "Barcelona"}

		for i := 0; i < 3; i++ {
			_, err := client.LookupHours(ctx, "Picasso Museum", near)
			require.NoError(t, err)
		}

		assert.Equal(t, int32(1), api.findCalls.Load())
		assert.Equal(t, int32(3), api.detailsCalls.Load())
		assert.Equal(t, "Picasso Museum Barcelona", api.lastInput.Load().(string))
	})

	t.Run("not found", func(t *testing.T) {
		client, api := newTestClient(t)

		hours, err := client.LookupHours(ctx, "Nowhere Special", domain.Location{})
		require.NoError(t, err)
		assert.Nil(t, hours)

		_, err = client.LookupHours(ctx, "Nowhere Special", domain.Location{})
		require.NoError(t, err)
		assert.Equal(t, int32(1), api.findCalls.Load())
		assert.Equal(t, int32(0), api.detailsCalls.Load())
	})

	t.Run("api error", func(t *testing.T) {
		client, _ := newTestClient(t)

		hours, err := client.LookupHours(ctx, "Denied Place", domain.Location{})
		assert.Error(t, err)
		assert.Nil(t, hours)
	})

	t.Run("period without close", func(t *testing.T) {
		client, _ := newTestClient(t)

		hours, err := client.LookupHours(ctx, "Always Open", domain.Location{})
		require.NoError(t, err)
		require.Len(t, hours.Periods, 1)
		assert.Nil(t, hours.Periods[0].Close)
	})
}

func TestClient_Geocode(t *testing.T) {
	client, _ := newTestClient(t)

	coord, err := client.Geocode(context.Background(), "Sitges")
	require.NoError(t, err)
	assert.Equal(t, 41.2372, coord.Lat)
	assert.Equal(t, 1.8059, coord.Lon)

	coord, err = client.Geocode(context.Background(), "Atlantis")
	assert.Error(t, err)
	assert.Nil(t, coord)
}

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0000", 0, true},
		{"0930", 570, true},
		{"2359", 1439, true},
		{"", 0, false},
		{"930", 0, false},
		{"12a0", 0, false},
		{"1275", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseHHMM(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
