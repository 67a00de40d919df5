package geocode

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"googlemaps.github.io/maps"

	"go-crisiswatch/types"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.Fatalf("Failed to create maps client: %v", err)
		}
	})
	return mapsClient, err
}

// Client is the geocoding collaborator used by the ingestion pipeline.
type Client struct{}

// Geocode resolves a place name to coordinates. The second return is
// false when the geocoder had no results for the name; the pipeline
// treats both that and an error as a soft failure.
func (Client) Geocode(ctx context.Context, place string) (types.GeoPoint, bool, error) {
	client, err := InitMapsClient()
	if err != nil {
		return types.GeoPoint{}, false, err
	}

	req := &maps.GeocodingRequest{
		Address: place,
	}

	// Forward geocode: get latitude and longitude for the given place.
	results, err := client.Geocode(ctx, req)
	if err != nil {
		return types.GeoPoint{}, false, err
	}
	if len(results) == 0 {
		return types.GeoPoint{}, false, nil
	}

	loc := results[0].Geometry.Location
	return types.GeoPoint{Lat: loc.Lat, Lon: loc.Lng}, true, nil
}
