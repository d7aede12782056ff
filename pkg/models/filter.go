package models

import (
	"fmt"
	"math"
	"time"
)

// Detector types. Photon-counting detectors weight the integrand by wavelength.
const (
	DetectorEnergy = "energy"
	DetectorPhoton = "photon"
)

// FilterProfile is a named transmission curve. Transmission is zero outside
// the tabulated wavelength range.
type FilterProfile struct {
	Name         string    `json:"name"`
	DetectorType string    `json:"detector_type"`
	Wavelength   []float64 `json:"wavelength"`
	Transmission []float64 `json:"transmission"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks the stored invariants of the profile
func (f *FilterProfile) Validate() error {
	corrupt := func(format string, args ...interface{}) error {
		return &DataCorruptionError{Name: f.Name, Reason: fmt.Sprintf(format, args...)}
	}

	n := len(f.Wavelength)
	if n < 2 {
		return corrupt("need at least 2 points, got %d", n)
	}
	if len(f.Transmission) != n {
		return corrupt("%d wavelengths but %d transmission values", n, len(f.Transmission))
	}
	switch f.DetectorType {
	case DetectorEnergy, DetectorPhoton:
	default:
		return corrupt("unknown detector type %q", f.DetectorType)
	}

	for i := 0; i < n; i++ {
		w, t := f.Wavelength[i], f.Transmission[i]
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return corrupt("wavelength %g at index %d", w, i)
		}
		if i > 0 && w <= f.Wavelength[i-1] {
			return corrupt("wavelength not increasing at index %d (%g after %g)", i, w, f.Wavelength[i-1])
		}
		if math.IsNaN(t) || t < 0 || t > 1 {
			return corrupt("transmission %g at index %d outside [0,1]", t, i)
		}
	}

	return nil
}

// Range returns the wavelength domain of the profile
func (f *FilterProfile) Range() (float64, float64) {
	return f.Wavelength[0], f.Wavelength[len(f.Wavelength)-1]
}

// TransmissionAt linearly interpolates the profile at wavelength w
func (f *FilterProfile) TransmissionAt(w float64) float64 {
	lo, hi := f.Range()
	if w < lo || w > hi {
		return 0
	}

	// Binary search for the bracketing interval
	i, j := 0, len(f.Wavelength)-1
	for j-i > 1 {
		m := (i + j) / 2
		if f.Wavelength[m] <= w {
			i = m
		} else {
			j = m
		}
	}

	x0, x1 := f.Wavelength[i], f.Wavelength[j]
	t0, t1 := f.Transmission[i], f.Transmission[j]
	if w == x0 {
		return t0
	}
	if w == x1 {
		return t1
	}
	return t0 + (w-x0)/(x1-x0)*(t1-t0)
}
