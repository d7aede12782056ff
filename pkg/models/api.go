package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateSpectrumRequest represents a request to register a spectrum upload
type CreateSpectrumRequest struct {
	Body CreateSpectrumRequestBody
}

// CreateSpectrumRequestBody is the body of the create spectrum request
type CreateSpectrumRequestBody struct {
	Tag         string `json:"tag" minLength:"1" maxLength:"200" example:"jupiter" doc:"Unique spectrum tag"`
	FileSize    int64  `json:"file_size" minimum:"1" maximum:"52428800" doc:"Table size in bytes"`
	ContentType string `json:"content_type" enum:"text/plain,text/csv,application/octet-stream" doc:"Table MIME type"`
	Units       *Units `json:"units,omitempty" doc:"Units of the uploaded columns (defaults to um and W m-2 um-1)"`
}

// CreateSpectrumResponse represents the response from creating a spectrum
type CreateSpectrumResponse struct {
	Body CreateSpectrumResponseBody
}

// CreateSpectrumResponseBody is the body of the create spectrum response
type CreateSpectrumResponseBody struct {
	ID        string `json:"id" doc:"Spectrum unique identifier"`
	UploadURL string `json:"upload_url" doc:"Pre-signed S3 URL for the table upload"`
	ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// SpectrumIDRequest addresses a spectrum by ID
type SpectrumIDRequest struct {
	ID string `path:"id" doc:"Spectrum ID"`
}

// IngestSpectrumResponse confirms that ingest started
type IngestSpectrumResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// SpectrumStatusResponse represents the ingest status of a spectrum
type SpectrumStatusResponse struct {
	Body SpectrumStatusBody
}

// SpectrumStatusBody is the body of the status response
type SpectrumStatusBody struct {
	ID       string  `json:"id" doc:"Spectrum ID"`
	Tag      string  `json:"tag" doc:"Spectrum tag"`
	Status   string  `json:"status" enum:"pending,processing,completed,failed" doc:"Ingest status"`
	Progress int     `json:"progress" minimum:"0" maximum:"100" doc:"Ingest progress percentage"`
	Message  string  `json:"message,omitempty" doc:"Human-readable status message"`
	Points   int     `json:"points" doc:"Number of stored points"`
	Error    *string `json:"error,omitempty" doc:"Failure reason"`
}

// InstallFilterRequest asks for a catalog filter to be stored locally
type InstallFilterRequest struct {
	Body struct {
		Name string `json:"name" minLength:"1" example:"MKO/NSFCam.J" doc:"Catalog filter name"`
	}
}

// FilterSummary describes a stored filter without its curve
type FilterSummary struct {
	Name          string  `json:"name" doc:"Filter name"`
	DetectorType  string  `json:"detector_type" enum:"energy,photon" doc:"Detector type"`
	Points        int     `json:"points" doc:"Number of transmission samples"`
	MinWavelength float64 `json:"min_wavelength" doc:"First wavelength (um)"`
	MaxWavelength float64 `json:"max_wavelength" doc:"Last wavelength (um)"`
}

// NewFilterSummary summarizes a validated profile
func NewFilterSummary(f *FilterProfile) FilterSummary {
	lo, hi := f.Range()
	return FilterSummary{
		Name:          f.Name,
		DetectorType:  f.DetectorType,
		Points:        len(f.Wavelength),
		MinWavelength: lo,
		MaxWavelength: hi,
	}
}

// FilterResponse returns one filter summary
type FilterResponse struct {
	Body FilterSummary
}

// ListFiltersRequest optionally narrows the listing to one filter
type ListFiltersRequest struct {
	Name string `query:"name" doc:"Only return this filter"`
}

// ListFiltersResponse lists stored filters
type ListFiltersResponse struct {
	Body struct {
		Filters []FilterSummary `json:"filters" doc:"Stored filters"`
	}
}

// DeleteFilterRequest names the stored filter to remove
type DeleteFilterRequest struct {
	Name string `query:"name" required:"true" doc:"Filter name, e.g. MKO/NSFCam.J"`
}

// ComputePhotometryRequest asks for photometry of a stored spectrum
type ComputePhotometryRequest struct {
	Body PhotometryRequest
}

// GetPhotometryRequest addresses a stored result
type GetPhotometryRequest struct {
	ID string `path:"id" doc:"Photometry result ID"`
}

// PhotometryResponse returns a computed result
type PhotometryResponse struct {
	Body *PhotometryResult
}

// SpectrumPhotometryResponse lists the stored results of one spectrum
type SpectrumPhotometryResponse struct {
	Body struct {
		Results []*PhotometryResult `json:"results" doc:"Stored results, newest first"`
	}
}

// AbsoluteMagnitudeRequest converts an apparent magnitude using a parallax
type AbsoluteMagnitudeRequest struct {
	Body struct {
		Magnitude      float64 `json:"magnitude" doc:"Apparent magnitude"`
		MagnitudeError float64 `json:"magnitude_error" minimum:"0" doc:"Apparent magnitude uncertainty"`
		Parallax       float64 `json:"parallax" exclusiveMinimum:"0" doc:"Parallax (mas)"`
		ParallaxError  float64 `json:"parallax_error" minimum:"0" doc:"Parallax uncertainty (mas)"`
	}
}

// AbsoluteMagnitudeResponse returns the distance and absolute magnitude
type AbsoluteMagnitudeResponse struct {
	Body struct {
		Distance               float64 `json:"distance" doc:"Distance (pc)"`
		DistanceError          float64 `json:"distance_error" doc:"Distance uncertainty (pc)"`
		AbsoluteMagnitude      float64 `json:"absolute_magnitude" doc:"Absolute magnitude"`
		AbsoluteMagnitudeError float64 `json:"absolute_magnitude_error" doc:"Absolute magnitude uncertainty"`
	}
}
