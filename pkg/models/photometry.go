package models

import (
	"time"
)

// PhotometryRequest asks for the synthetic flux and magnitude of a stored spectrum
type PhotometryRequest struct {
	SpectrumID   string `json:"spectrum_id" minLength:"1" doc:"Spectrum ID or tag"`
	FilterName   string `json:"filter" minLength:"1" example:"MKO/NSFCam.J" doc:"Filter name"`
	ReferenceTag string `json:"reference,omitempty" doc:"Reference spectrum tag (defaults to the Vega calibration spectrum)"`
}

// PhotometryResult is a computed flux and magnitude (for internal use and storage)
type PhotometryResult struct {
	ID             string    `json:"id"`
	SpectrumID     string    `json:"spectrum_id"`
	FilterName     string    `json:"filter"`
	ReferenceTag   string    `json:"reference"`
	Flux           float64   `json:"flux" doc:"Filter-weighted flux density (W m-2 um-1)"`
	FluxError      float64   `json:"flux_error" doc:"Monte Carlo flux uncertainty (W m-2 um-1)"`
	ReferenceFlux  float64   `json:"reference_flux" doc:"Reference spectrum flux in the same filter"`
	Magnitude      float64   `json:"magnitude" doc:"Magnitude relative to the reference spectrum"`
	MagnitudeError float64   `json:"magnitude_error" doc:"First-order magnitude uncertainty"`
	Trials         int       `json:"trials" doc:"Number of Monte Carlo trials"`
	CreatedAt      time.Time `json:"created_at"`
}
