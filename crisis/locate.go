package crisis

import (
	"context"
	"log"

	"go-crisiswatch/types"
)

const unknownLocation = "Unknown"

// resolveLocation turns a classification into a place name and
// coordinates. Resolution order for coordinates: classifier-embedded,
// legacy payload field, forward geocoding of the name, sentinel. The
// name comes from the classifier, then the caller hint, then a named
// entity found in the raw text, then "Unknown". Geocoding and hint
// extraction failures never abort the pipeline.
func (p *Pipeline) resolveLocation(ctx context.Context, cls *types.ClassificationResult, locationHint, text string) (string, types.GeoPoint) {
	name := cls.Location.Name
	if name == "" {
		name = locationHint
	}
	if name == "" && p.Hinter != nil {
		hintCtx, cancel := p.callCtx(ctx)
		names, err := p.Hinter.ExtractPlaceNames(hintCtx, text)
		cancel()
		if err != nil {
			log.Printf("Place-name extraction failed: %v", err)
		} else if len(names) > 0 {
			name = names[0]
		}
	}
	if name == "" {
		name = unknownLocation
	}

	if pt, ok := coordsToPoint(cls.Location.Coordinates); ok {
		return name, pt
	}
	if pt, ok := coordsToPoint(cls.Coordinates); ok {
		return name, pt
	}

	if name != unknownLocation {
		geoCtx, cancel := p.callCtx(ctx)
		pt, ok, err := p.Geocoder.Geocode(geoCtx, name)
		cancel()
		if err != nil {
			log.Printf("Geocoding failed for %q: %v", name, err)
		} else if !ok {
			log.Printf("Geocoding returned no results for: %s", name)
		} else {
			return name, pt
		}
	}

	return name, types.GeoPoint{}
}

func coordsToPoint(c *types.Coordinates) (types.GeoPoint, bool) {
	if c == nil || c.Lat == nil || c.Lon == nil {
		return types.GeoPoint{}, false
	}
	pt := types.GeoPoint{Lat: *c.Lat, Lon: *c.Lon}
	if pt.IsSentinel() {
		return types.GeoPoint{}, false
	}
	return pt, true
}
