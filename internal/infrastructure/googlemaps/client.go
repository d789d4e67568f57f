// Package googlemaps - справочник мест и геокодер на базе Google Maps Platform
package googlemaps

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/maypok86/otter/v2"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
)

const (
	defaultSearchRadius = 20000 // meters
	placeIDCacheSize    = 10_000
)

// Ensure Client implements places and geocoding repositories
var (
	_ repository.PlacesRepository    = (*Client)(nil)
	_ repository.GeocodingRepository = (*Client)(nil)
)

// Client - клиент Google Maps: поиск места, режим работы, геокодирование
type Client struct {
	maps         *maps.Client
	searchRadius int
	// placeIDs хранит соответствие запроса и place_id; "" означает "не найдено"
	placeIDs *otter.Cache[string, string]
	logger   *zap.Logger
}

// NewClient создает клиента Google Maps
func NewClient(cfg *config.GoogleMapsConfig, cacheTTL time.Duration, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("google maps: %w", domain.ErrMissingCredentials)
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("maps.NewClient: %w", err)
	}

	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	radius := cfg.SearchRadius
	if radius <= 0 {
		radius = defaultSearchRadius
	}

	return &Client{
		maps:         mc,
		searchRadius: radius,
		placeIDs: otter.Must(&otter.Options[string, string]{
			MaximumSize:      placeIDCacheSize,
			ExpiryCalculator: otter.ExpiryWriting[string, string](cacheTTL),
		}),
		logger: logger,
	}, nil
}

// LookupHours находит место рядом с near и возвращает его режим работы.
// Режим работы всегда запрашивается заново, кешируется только place_id.
func (c *Client) LookupHours(ctx context.Context, name string, near domain.Location) (*domain.PlaceHours, error) {
	placeID, err := c.resolvePlaceID(ctx, name, near)
	if err != nil {
		return nil, err
	}
	if placeID == "" {
		return nil, nil
	}

	details, err := c.maps.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskPlaceID,
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskOpeningHours,
			maps.PlaceDetailsFieldMaskUTCOffset,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("place details %q: %w", placeID, err)
	}

	return toPlaceHours(placeID, details), nil
}

// Geocode возвращает координаты адреса
func (c *Client) Geocode(ctx context.Context, address string) (*domain.Coordinate, error) {
	results, err := c.maps.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("geocode %q: no results", address)
	}

	loc := results[0].Geometry.Location
	return &domain.Coordinate{Lat: loc.Lat, Lon: loc.Lng}, nil
}

func (c *Client) resolvePlaceID(ctx context.Context, name string, near domain.Location) (string, error) {
	req := &maps.FindPlaceFromTextRequest{
		Input:     name,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields: []maps.PlaceSearchFieldMask{
			maps.PlaceSearchFieldMaskPlaceID,
			maps.PlaceSearchFieldMaskName,
		},
	}
	if near.Coordinate != nil {
		req.LocationBias = maps.FindPlaceFromTextLocationBiasCircular
		req.LocationBiasCenter = &maps.LatLng{Lat: near.Coordinate.Lat, Lng: near.Coordinate.Lon}
		req.LocationBiasRadius = c.searchRadius
	} else if addr := strings.TrimSpace(near.Address); addr != "" {
		req.Input = name + " " + addr
	}

	key := cacheKey(req)
	if placeID, ok := c.placeIDs.GetIfPresent(key); ok {
		return placeID, nil
	}

	resp, err := c.maps.FindPlaceFromText(ctx, req)
	if err != nil {
		return "", fmt.Errorf("find place %q: %w", name, err)
	}

	placeID := ""
	if len(resp.Candidates) > 0 {
		placeID = resp.Candidates[0].PlaceID
	} else {
		c.logger.Debug("Place not found", zap.String("query", req.Input))
	}

	c.placeIDs.Set(key, placeID)
	return placeID, nil
}

func cacheKey(req *maps.FindPlaceFromTextRequest) string {
	key := strings.ToLower(req.Input)
	if req.LocationBiasCenter != nil {
		key += fmt.Sprintf("@%.4f,%.4f", req.LocationBiasCenter.Lat, req.LocationBiasCenter.Lng)
	}
	return key
}

func toPlaceHours(placeID string, details maps.PlaceDetailsResult) *domain.PlaceHours {
	hours := &domain.PlaceHours{
		PlaceID:          placeID,
		Name:             details.Name,
		UTCOffsetMinutes: details.UTCOffset,
	}

	oh := details.OpeningHours
	if oh == nil {
		return hours
	}
	hours.OpenNow = oh.OpenNow

	for _, p := range oh.Periods {
		openMin, ok := parseHHMM(p.Open.Time)
		if !ok {
			continue
		}
		period := domain.OpeningPeriod{
			Open: domain.WeeklyTime{Day: p.Open.Day, Minute: openMin},
		}
		// без close место работает круглосуточно
		if closeMin, ok := parseHHMM(p.Close.Time); ok {
			period.Close = &domain.WeeklyTime{Day: p.Close.Day, Minute: closeMin}
		}
		hours.Periods = append(hours.Periods, period)
	}

	return hours
}

// parseHHMM разбирает время в формате "hhmm"
func parseHHMM(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(s[2:])
	if err != nil || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
