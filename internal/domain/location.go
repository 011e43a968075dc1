package domain

import (
	"net/url"
	"regexp"
	"strconv"
)

var (
	// https://www.google.com/maps/place/.../@12.9716,77.5946,17z
	atCoordsRe = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	// .../data=!3d12.9716!4d77.5946
	dataCoordsRe = regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)!4d(-?\d+(?:\.\d+)?)`)
	pairRe       = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)
)

// ExtractCoordinates finds a latitude/longitude pair in a map link.
// Supported shapes: "!3dLAT!4dLNG", "@LAT,LNG" and the query parameters q, query, ll.
func ExtractCoordinates(mapURL string) (float64, float64, error) {
	if m := dataCoordsRe.FindStringSubmatch(mapURL); m != nil {
		return toCoordinates(m[1], m[2])
	}
	if m := atCoordsRe.FindStringSubmatch(mapURL); m != nil {
		return toCoordinates(m[1], m[2])
	}

	if u, err := url.Parse(mapURL); err == nil {
		q := u.Query()
		for _, key := range []string{"q", "query", "ll"} {
			if m := pairRe.FindStringSubmatch(q.Get(key)); m != nil {
				return toCoordinates(m[1], m[2])
			}
		}
	}

	return 0, 0, ErrInvalidMapURL
}

func toCoordinates(latStr, lngStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, ErrInvalidMapURL
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, ErrInvalidMapURL
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, ErrInvalidMapURL
	}
	return lat, lng, nil
}
