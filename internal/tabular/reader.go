// Package tabular reads whitespace- or comma-separated numeric tables of
// spectra and filter profiles.
package tabular

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RMahshie/synphot/pkg/models"
)

// wavelengthFactors convert a wavelength unit to um
var wavelengthFactors = map[string]float64{
	"um":       1,
	"micron":   1,
	"nm":       1e-3,
	"angstrom": 1e-4,
}

// ReadColumns parses rows of numbers. Lines starting with '#' and blank
// lines are skipped; every data row must have the same number of columns.
func ReadColumns(r io.Reader) ([][]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var rows [][]float64
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", lineNo, i+1, err)
			}
			row[i] = v
		}

		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", lineNo, len(rows[0]), len(row))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("table has no data rows")
	}

	return rows, nil
}

// ReadSpectrum reads 2 or 3 columns (wavelength, flux[, uncertainty]) and
// converts them to um and W m-2 um-1
func ReadSpectrum(r io.Reader, units models.Units) (*models.Spectrum, error) {
	rows, err := ReadColumns(r)
	if err != nil {
		return nil, err
	}

	ncol := len(rows[0])
	if ncol != 2 && ncol != 3 {
		return nil, fmt.Errorf("spectrum needs 2 or 3 columns, got %d", ncol)
	}

	units = normalizeUnits(units)
	wavelFactor, ok := wavelengthFactors[units.Wavelength]
	if !ok {
		return nil, fmt.Errorf("unsupported wavelength unit %q", units.Wavelength)
	}
	perWavelength := false
	switch units.Flux {
	case "w m-2 um-1":
	case "w m-2":
		perWavelength = true
	default:
		return nil, fmt.Errorf("unsupported flux unit %q", units.Flux)
	}

	spec := &models.Spectrum{
		Units:      units,
		Wavelength: make([]float64, len(rows)),
		Flux:       make([]float64, len(rows)),
	}
	if ncol == 3 {
		spec.Uncertainty = make([]float64, len(rows))
	}

	for i, row := range rows {
		wavel := row[0] * wavelFactor * units.WavelengthScale
		flux := row[1] * units.FluxScale
		if perWavelength {
			flux /= wavel
		}
		spec.Wavelength[i] = wavel
		spec.Flux[i] = flux

		if ncol == 3 {
			sigma := row[2] * units.FluxScale
			if perWavelength {
				sigma /= wavel
			}
			spec.Uncertainty[i] = sigma
		}
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ReadFilter reads a wavelength (um) and transmission column. Points whose
// wavelength does not increase are dropped, as catalog profiles occasionally
// repeat samples.
func ReadFilter(r io.Reader, name, detectorType string) (*models.FilterProfile, error) {
	rows, err := ReadColumns(r)
	if err != nil {
		return nil, err
	}
	if len(rows[0]) < 2 {
		return nil, fmt.Errorf("filter needs 2 columns, got %d", len(rows[0]))
	}
	if detectorType == "" {
		detectorType = models.DetectorEnergy
	}

	profile := &models.FilterProfile{
		Name:         name,
		DetectorType: detectorType,
		Wavelength:   []float64{rows[0][0]},
		Transmission: []float64{rows[0][1]},
	}
	for _, row := range rows[1:] {
		if row[0] > profile.Wavelength[len(profile.Wavelength)-1] {
			profile.Wavelength = append(profile.Wavelength, row[0])
			profile.Transmission = append(profile.Transmission, row[1])
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func normalizeUnits(u models.Units) models.Units {
	u.Wavelength = strings.ToLower(strings.TrimSpace(u.Wavelength))
	u.Flux = strings.ToLower(strings.TrimSpace(u.Flux))
	if u.Wavelength == "" {
		u.Wavelength = "um"
	}
	if u.Flux == "" {
		u.Flux = "w m-2 um-1"
	}
	if u.WavelengthScale == 0 {
		u.WavelengthScale = 1
	}
	if u.FluxScale == 0 {
		u.FluxScale = 1
	}
	return u
}
