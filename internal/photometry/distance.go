package photometry

import (
	"fmt"
	"math"
)

// ParallaxToDistance converts a parallax and its error (mas) to a distance
// and its error (pc)
func ParallaxToDistance(parallax, parallaxErr float64) (float64, float64, error) {
	if !(parallax > 0) {
		return 0, 0, fmt.Errorf("parallax must be positive, got %g mas", parallax)
	}
	distance := 1e3 / parallax
	distanceErr := 1e3 * math.Abs(parallaxErr) / (parallax * parallax)
	return distance, distanceErr, nil
}

// AbsoluteMagnitude converts an apparent magnitude at the given distance (pc)
// to an absolute magnitude. Errors add in quadrature.
func AbsoluteMagnitude(appMag, appMagErr, distance, distanceErr float64) (float64, float64, error) {
	if !(distance > 0) {
		return 0, 0, fmt.Errorf("distance must be positive, got %g pc", distance)
	}
	absMag := appMag - 5*math.Log10(distance) + 5
	distTerm := 5 / math.Ln10 * distanceErr / distance
	return absMag, math.Sqrt(appMagErr*appMagErr + distTerm*distTerm), nil
}
