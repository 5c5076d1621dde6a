package yore

import (
	"fmt"
	"math"
	"strconv"
)

const earthRadiusKM = 6371.0

// Coordinates is a latitude/longitude pair in decimal degrees.
// Positive latitudes are at or north of the equator and positive longitudes
// are at or east of the prime meridian, as per ISO 6709.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinates returns the given coordinates. Values are not range checked.
func NewCoordinates(latitude, longitude float64) Coordinates {
	return Coordinates{Latitude: latitude, Longitude: longitude}
}

// HaversineDistance calculates the great-circle distance in kilometers between
// two geographic coordinates using the Haversine formula.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	dLat := math.Abs(lat1Rad - lat2Rad)
	dLng := math.Abs(toRadians(lng1) - toRadians(lng2))

	h := haversine(dLat) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*haversine(dLng)

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// DistanceInKM returns the great-circle distance to other in kilometers.
func (c Coordinates) DistanceInKM(other Coordinates) float64 {
	return HaversineDistance(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

// MapURL returns a link that shows the coordinates on Google Maps.
func (c Coordinates) MapURL() string {
	return fmt.Sprintf(
		"https://www.google.co.uk/maps/place/%s%%2C%s",
		formatDegrees(c.Latitude),
		formatDegrees(c.Longitude),
	)
}

// LatitudeRef returns the EXIF hemisphere reference for the latitude.
func (c Coordinates) LatitudeRef() rune {
	if c.Latitude >= 0 {
		return 'N'
	}
	return 'S'
}

// LongitudeRef returns the EXIF hemisphere reference for the longitude.
func (c Coordinates) LongitudeRef() rune {
	if c.Longitude >= 0 {
		return 'E'
	}
	return 'W'
}

func (c Coordinates) String() string {
	return "(" + formatDegrees(c.Latitude) + ", " + formatDegrees(c.Longitude) + ")"
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func haversine(angle float64) float64 {
	return (1 - math.Cos(angle)) / 2
}

func formatDegrees(degrees float64) string {
	return strconv.FormatFloat(degrees, 'f', -1, 64)
}
