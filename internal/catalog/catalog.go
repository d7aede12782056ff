package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/RMahshie/synphot/internal/storage"
	"github.com/RMahshie/synphot/internal/tabular"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Entry kinds
const (
	KindFilter   = "filter"
	KindSpectrum = "spectrum"
)

// DefaultManifestKey is the object key of the catalog manifest
const DefaultManifestKey = "catalog.yaml"

// Entry describes one catalog object
type Entry struct {
	Name            string  `yaml:"name"`
	Kind            string  `yaml:"kind"`
	Key             string  `yaml:"key"`
	DetectorType    string  `yaml:"detector_type,omitempty"`
	WavelengthUnit  string  `yaml:"wavelength_unit,omitempty"`
	FluxUnit        string  `yaml:"flux_unit,omitempty"`
	WavelengthScale float64 `yaml:"wavelength_scale,omitempty"`
	FluxScale       float64 `yaml:"flux_scale,omitempty"`
}

// Manifest is the catalog index stored next to the tables
type Manifest struct {
	Entries []Entry `yaml:"entries"`
}

// ParseManifest decodes and checks a YAML manifest
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, &models.DataCorruptionError{Name: "catalog manifest", Reason: err.Error()}
	}

	seen := make(map[string]bool, len(m.Entries))
	for i, e := range m.Entries {
		if e.Name == "" || e.Key == "" {
			return nil, &models.DataCorruptionError{
				Name:   "catalog manifest",
				Reason: fmt.Sprintf("entry %d needs a name and a key", i),
			}
		}
		if e.Kind != KindFilter && e.Kind != KindSpectrum {
			return nil, &models.DataCorruptionError{
				Name:   "catalog manifest",
				Reason: fmt.Sprintf("entry %q has unknown kind %q", e.Name, e.Kind),
			}
		}
		id := e.Kind + ":" + e.Name
		if seen[id] {
			return nil, &models.DataCorruptionError{
				Name:   "catalog manifest",
				Reason: fmt.Sprintf("duplicate %s entry %q", e.Kind, e.Name),
			}
		}
		seen[id] = true
	}

	return &m, nil
}

// Lookup finds the entry of the given kind and name
func (m *Manifest) Lookup(kind, name string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Kind == kind && e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Units returns the source units of a spectrum entry
func (e Entry) Units() models.Units {
	u := models.DefaultUnits()
	if e.WavelengthUnit != "" {
		u.Wavelength = e.WavelengthUnit
	}
	if e.FluxUnit != "" {
		u.Flux = e.FluxUnit
	}
	if e.WavelengthScale != 0 {
		u.WavelengthScale = e.WavelengthScale
	}
	if e.FluxScale != 0 {
		u.FluxScale = e.FluxScale
	}
	return u
}

// Fetcher retrieves filters and spectra from the object-store catalog.
// It never writes anything locally.
type Fetcher struct {
	s3          storage.S3Service
	manifestKey string

	mu       sync.Mutex
	manifest *Manifest
}

// NewFetcher creates a catalog fetcher reading the manifest at manifestKey
func NewFetcher(s3Service storage.S3Service, manifestKey string) *Fetcher {
	if manifestKey == "" {
		manifestKey = DefaultManifestKey
	}
	return &Fetcher{s3: s3Service, manifestKey: manifestKey}
}

// Manifest downloads the manifest once and returns the cached copy afterwards
func (f *Fetcher) Manifest(ctx context.Context) (*Manifest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.manifest != nil {
		return f.manifest, nil
	}

	data, err := f.s3.DownloadFile(ctx, f.manifestKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("key", f.manifestKey).Int("entries", len(m.Entries)).Msg("Loaded catalog manifest")
	f.manifest = m
	return m, nil
}

// Refresh forgets the cached manifest
func (f *Fetcher) Refresh() {
	f.mu.Lock()
	f.manifest = nil
	f.mu.Unlock()
}

func (f *Fetcher) download(ctx context.Context, kind, name string) (Entry, []byte, error) {
	m, err := f.Manifest(ctx)
	if err != nil {
		return Entry{}, nil, err
	}

	entry, ok := m.Lookup(kind, name)
	if !ok {
		return Entry{}, nil, &models.NotFoundError{Resource: "catalog " + kind, Key: name}
	}

	data, err := f.s3.DownloadFile(ctx, entry.Key)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return Entry{}, nil, &models.DataCorruptionError{
				Name:   name,
				Reason: fmt.Sprintf("catalog object %s is missing", entry.Key),
			}
		}
		return Entry{}, nil, fmt.Errorf("failed to download %s %s: %w", kind, name, err)
	}

	return entry, data, nil
}

// FetchFilter downloads and parses a filter transmission curve
func (f *Fetcher) FetchFilter(ctx context.Context, name string) (*models.FilterProfile, error) {
	entry, data, err := f.download(ctx, KindFilter, name)
	if err != nil {
		return nil, err
	}

	profile, err := tabular.ReadFilter(bytes.NewReader(data), entry.Name, entry.DetectorType)
	if err != nil {
		return nil, err
	}

	log.Info().Str("filter", name).Int("points", len(profile.Wavelength)).Msg("Fetched filter from catalog")
	return profile, nil
}

// FetchSpectrum downloads and parses a tabulated spectrum
func (f *Fetcher) FetchSpectrum(ctx context.Context, tag string) (*models.Spectrum, error) {
	entry, data, err := f.download(ctx, KindSpectrum, tag)
	if err != nil {
		return nil, err
	}

	spectrum, err := tabular.ReadSpectrum(bytes.NewReader(data), entry.Units())
	if err != nil {
		return nil, fmt.Errorf("catalog spectrum %s: %w", tag, err)
	}
	spectrum.Tag = tag

	log.Info().Str("spectrum", tag).Int("points", spectrum.Len()).Msg("Fetched spectrum from catalog")
	return spectrum, nil
}
