package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification with errors.Is
var (
	ErrNotFound        = errors.New("not found")
	ErrDomainMismatch  = errors.New("wavelength domains do not overlap")
	ErrDataCorruption  = errors.New("data corruption")
	ErrNonPositiveFlux = errors.New("non-positive flux")
	ErrInvalidSpectrum = errors.New("invalid spectrum")
)

// NotFoundError reports an unknown filter, spectrum or result
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DomainMismatchError reports a spectrum and filter whose wavelength ranges are disjoint
type DomainMismatchError struct {
	Filter      string
	SpectrumMin float64
	SpectrumMax float64
	FilterMin   float64
	FilterMax   float64
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("filter %q covers %g-%g um but spectrum covers %g-%g um",
		e.Filter, e.FilterMin, e.FilterMax, e.SpectrumMin, e.SpectrumMax)
}

func (e *DomainMismatchError) Is(target error) bool {
	return target == ErrDomainMismatch
}

// DataCorruptionError reports a stored profile that violates its invariants
type DataCorruptionError struct {
	Name   string
	Reason string
}

func (e *DataCorruptionError) Error() string {
	return fmt.Sprintf("filter %q is corrupt: %s", e.Name, e.Reason)
}

func (e *DataCorruptionError) Is(target error) bool {
	return target == ErrDataCorruption
}

// NonPositiveFluxError reports a flux for which a magnitude is undefined
type NonPositiveFluxError struct {
	Flux float64
}

func (e *NonPositiveFluxError) Error() string {
	return fmt.Sprintf("magnitude undefined for flux %g", e.Flux)
}

func (e *NonPositiveFluxError) Is(target error) bool {
	return target == ErrNonPositiveFlux
}

// InvalidSpectrumError reports a spectrum that cannot be integrated
type InvalidSpectrumError struct {
	Reason string
}

func (e *InvalidSpectrumError) Error() string {
	return "invalid spectrum: " + e.Reason
}

func (e *InvalidSpectrumError) Is(target error) bool {
	return target == ErrInvalidSpectrum
}
