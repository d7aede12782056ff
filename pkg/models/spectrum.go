package models

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Spectrum ingest statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Units describes how a tabulated file is converted to um and W m-2 um-1
type Units struct {
	Wavelength      string  `json:"wavelength" enum:"um,nm,angstrom" doc:"Wavelength unit of the source file"`
	Flux            string  `json:"flux" enum:"w m-2 um-1,w m-2" doc:"Flux unit of the source file"`
	WavelengthScale float64 `json:"wavelength_scale,omitempty" doc:"Multiplier applied to the wavelength column"`
	FluxScale       float64 `json:"flux_scale,omitempty" doc:"Multiplier applied to the flux and uncertainty columns"`
}

// DefaultUnits returns um and W m-2 um-1 without scaling
func DefaultUnits() Units {
	return Units{Wavelength: "um", Flux: "w m-2 um-1", WavelengthScale: 1, FluxScale: 1}
}

// Spectrum is a tabulated spectrum with its ingest state.
// Wavelength is in um, Flux and Uncertainty in W m-2 um-1.
// Uncertainty is nil when the source carries no errors.
type Spectrum struct {
	ID          string     `json:"id"`
	Tag         string     `json:"tag"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	FileKey     *string    `json:"file_key,omitempty"`
	ErrorMsg    *string    `json:"error_message,omitempty"`
	Units       Units      `json:"units"`
	Wavelength  []float64  `json:"wavelength,omitempty"`
	Flux        []float64  `json:"flux,omitempty"`
	Uncertainty []float64  `json:"uncertainty,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Len returns the number of tabulated points
func (s *Spectrum) Len() int {
	return len(s.Wavelength)
}

// HasUncertainty reports whether per-point uncertainties are present
func (s *Spectrum) HasUncertainty() bool {
	return len(s.Uncertainty) > 0
}

// Validate checks the point arrays. Order is not checked, but wavelengths
// must be unique so that the sorted grid is strictly increasing.
func (s *Spectrum) Validate() error {
	n := len(s.Wavelength)
	if n < 2 {
		return &InvalidSpectrumError{Reason: fmt.Sprintf("need at least 2 points, got %d", n)}
	}
	if len(s.Flux) != n {
		return &InvalidSpectrumError{Reason: fmt.Sprintf("%d wavelengths but %d fluxes", n, len(s.Flux))}
	}
	if s.HasUncertainty() && len(s.Uncertainty) != n {
		return &InvalidSpectrumError{Reason: fmt.Sprintf("%d wavelengths but %d uncertainties", n, len(s.Uncertainty))}
	}

	for i := 0; i < n; i++ {
		w := s.Wavelength[i]
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return &InvalidSpectrumError{Reason: fmt.Sprintf("wavelength %g at index %d", w, i)}
		}
		if math.IsNaN(s.Flux[i]) || math.IsInf(s.Flux[i], 0) {
			return &InvalidSpectrumError{Reason: fmt.Sprintf("flux %g at index %d", s.Flux[i], i)}
		}
		if s.HasUncertainty() {
			u := s.Uncertainty[i]
			if math.IsNaN(u) || math.IsInf(u, 0) || u < 0 {
				return &InvalidSpectrumError{Reason: fmt.Sprintf("uncertainty %g at index %d", u, i)}
			}
		}
	}

	sorted := append([]float64(nil), s.Wavelength...)
	sort.Float64s(sorted)
	for i := 1; i < n; i++ {
		if sorted[i] == sorted[i-1] {
			return &InvalidSpectrumError{Reason: fmt.Sprintf("duplicate wavelength %g", sorted[i])}
		}
	}

	return nil
}

// Sorted returns a copy of the spectrum with points ordered by wavelength
func (s *Spectrum) Sorted() *Spectrum {
	n := len(s.Wavelength)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return s.Wavelength[idx[a]] < s.Wavelength[idx[b]]
	})

	out := *s
	out.Wavelength = make([]float64, n)
	out.Flux = make([]float64, n)
	if s.HasUncertainty() {
		out.Uncertainty = make([]float64, n)
	}
	for i, j := range idx {
		out.Wavelength[i] = s.Wavelength[j]
		out.Flux[i] = s.Flux[j]
		if s.HasUncertainty() {
			out.Uncertainty[i] = s.Uncertainty[j]
		}
	}
	return &out
}

// Range returns the first and last wavelength of a sorted spectrum
func (s *Spectrum) Range() (float64, float64) {
	return s.Wavelength[0], s.Wavelength[len(s.Wavelength)-1]
}
