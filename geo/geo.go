package geo

import (
	"fmt"
	"math"
	"strings"

	"go-crisiswatch/types"
)

const earthRadiusKM = 6371.0

// HaversineKM calculates the great-circle distance between two points
// on the earth (specified in decimal degrees).
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180
	radLon1 := lon1 * math.Pi / 180
	radLat2 := lat2 * math.Pi / 180
	radLon2 := lon2 * math.Pi / 180

	deltaLat := radLat2 - radLat1
	deltaLon := radLon2 - radLon1

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// DistanceKM is HaversineKM over GeoPoints.
func DistanceKM(a, b types.GeoPoint) float64 {
	return HaversineKM(a.Lat, a.Lon, b.Lat, b.Lon)
}

// BucketKey maps a crisis type and point onto a coarse grid cell used to
// key dedup leases. bucketDeg is the cell size in degrees; 0.2 degrees
// is roughly the 20 km dedup radius at the equator. Reports for the same
// event land in the same or an adjacent cell, so the lease serializes
// the common case; adjacent-cell races still fall through to the
// duplicate lookup itself.
func BucketKey(typ types.IssueType, pt types.GeoPoint, bucketDeg float64) string {
	if bucketDeg <= 0 {
		bucketDeg = 0.2
	}
	latCell := int(math.Floor(pt.Lat / bucketDeg))
	lonCell := int(math.Floor(pt.Lon / bucketDeg))
	return fmt.Sprintf("%s:geo:%d:%d", typ, latCell, lonCell)
}

// NameKey keys a lease on the location name when coordinates never
// resolved.
func NameKey(typ types.IssueType, locationName string) string {
	return fmt.Sprintf("%s:name:%s", typ, strings.ToLower(strings.TrimSpace(locationName)))
}
