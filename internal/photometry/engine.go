package photometry

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/RMahshie/synphot/pkg/models"
)

// VegaMagnitude is the magnitude assigned to Vega in every filter
const VegaMagnitude = 0.03

// Options configures the Monte Carlo error estimate and the magnitude scale
type Options struct {
	Trials    int     // Gaussian perturbation trials per flux estimate
	Workers   int     // goroutines sharing the trials
	Seed      uint64  // base seed; trial block b draws from PCG(Seed, b)
	ZeroPoint float64 // magnitude of the reference spectrum
}

// DefaultOptions returns 500 trials on GOMAXPROCS workers with the Vega zero point
func DefaultOptions() Options {
	return Options{
		Trials:    500,
		Workers:   runtime.GOMAXPROCS(0),
		Seed:      1,
		ZeroPoint: VegaMagnitude,
	}
}

// Engine computes synthetic fluxes and magnitudes. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an engine, filling unset trial, worker and seed options
// with defaults. ZeroPoint is taken as given.
func NewEngine(opts Options) *Engine {
	def := DefaultOptions()
	if opts.Trials <= 0 {
		opts.Trials = def.Trials
	}
	if opts.Trials < 2 {
		opts.Trials = 2
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.Seed == 0 {
		opts.Seed = def.Seed
	}
	return &Engine{opts: opts}
}

// Options returns the effective configuration
func (e *Engine) Options() Options {
	return e.opts
}

// bandpass is a spectrum resampled against a filter: the integrated flux is
// the linear combination sum(coef[i] * flux[i]).
type bandpass struct {
	coef  []float64
	flux  []float64
	sigma []float64
	value float64
}

// prepare weights every spectrum point inside the overlap by the filter
// transmission at that point, times the wavelength for photon detectors.
func (e *Engine) prepare(spectrum *models.Spectrum, filter *models.FilterProfile) (*bandpass, error) {
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	spec := spectrum.Sorted()
	specMin, specMax := spec.Range()
	filtMin, filtMax := filter.Range()

	lo := math.Max(specMin, filtMin)
	hi := math.Min(specMax, filtMax)
	mismatch := &models.DomainMismatchError{
		Filter:      filter.Name,
		SpectrumMin: specMin,
		SpectrumMax: specMax,
		FilterMin:   filtMin,
		FilterMax:   filtMax,
	}
	if lo >= hi {
		return nil, mismatch
	}

	x := spec.Wavelength
	coef := make([]float64, len(x))
	weight := func(w, t float64) float64 {
		if filter.DetectorType == models.DetectorPhoton {
			return t * w
		}
		return t
	}

	var norm float64
	for i, w := range x {
		if w < lo || w > hi {
			continue
		}
		c := weight(w, filter.TransmissionAt(w))
		coef[i] = c
		norm += c
	}

	if norm <= 0 {
		// The passband falls between spectrum samples: sample the spectrum on
		// the filter grid instead, interpolating linearly between neighbours.
		for k, w := range filter.Wavelength {
			if w < lo || w > hi || filter.Transmission[k] <= 0 {
				continue
			}
			c := weight(w, filter.Transmission[k])
			j := sort.SearchFloat64s(x, w)
			if x[j] == w {
				coef[j] += c
			} else {
				a := (w - x[j-1]) / (x[j] - x[j-1])
				coef[j-1] += c * (1 - a)
				coef[j] += c * a
			}
			norm += c
		}
	}
	if norm <= 0 {
		// No throughput inside the overlap
		return nil, mismatch
	}

	b := &bandpass{coef: coef, flux: spec.Flux}
	for i := range coef {
		coef[i] /= norm
		b.value += coef[i] * spec.Flux[i]
	}
	if spec.HasUncertainty() {
		b.sigma = spec.Uncertainty
	}
	return b, nil
}

// FluxFromSpectrum returns the transmission-weighted mean flux density of the
// spectrum in the filter and its Monte Carlo uncertainty. The uncertainty is
// zero when the spectrum carries no per-point errors.
func (e *Engine) FluxFromSpectrum(ctx context.Context, spectrum *models.Spectrum, filter *models.FilterProfile) (float64, float64, error) {
	b, err := e.prepare(spectrum, filter)
	if err != nil {
		return 0, 0, err
	}
	if b.sigma == nil {
		return b.value, 0, nil
	}

	sigma, err := e.monteCarlo(ctx, b)
	if err != nil {
		return 0, 0, err
	}
	return b.value, sigma, nil
}

// trialBlock is the number of consecutive trials drawn from one RNG stream.
// Stream b is PCG(Seed, b), so samples do not depend on the worker count.
const trialBlock = 64

// monteCarlo perturbs every flux point by N(0, sigma) and returns the sample
// standard deviation of the integrated flux over all trials.
func (e *Engine) monteCarlo(ctx context.Context, b *bandpass) (float64, error) {
	trials := e.opts.Trials
	blocks := (trials + trialBlock - 1) / trialBlock
	workers := min(e.opts.Workers, blocks)
	samples := make([]float64, trials)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for blk := w; blk < blocks; blk += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				rng := rand.New(rand.NewPCG(e.opts.Seed, uint64(blk)))
				for t := blk * trialBlock; t < min((blk+1)*trialBlock, trials); t++ {
					sum := b.value
					for i, c := range b.coef {
						z := rng.NormFloat64()
						if c != 0 {
							sum += c * b.sigma[i] * z
						}
					}
					samples[t] = sum
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return stdDev(samples), nil
}

// stdDev is the sample standard deviation (n-1) using Welford's update
func stdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	var mean, m2 float64
	for i, v := range x {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}
	return math.Sqrt(m2 / float64(len(x)-1))
}

// ReferenceFlux integrates the reference spectrum in the filter without an
// error estimate
func (e *Engine) ReferenceFlux(filter *models.FilterProfile, reference *models.Spectrum) (float64, error) {
	b, err := e.prepare(reference, filter)
	if err != nil {
		return 0, err
	}
	return b.value, nil
}

// MagnitudeFromFlux converts a flux in the filter to a magnitude relative to
// the reference spectrum, propagating the flux error to first order.
func (e *Engine) MagnitudeFromFlux(ctx context.Context, flux, fluxErr float64, filter *models.FilterProfile, reference *models.Spectrum) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if !(flux > 0) {
		return 0, 0, &models.NonPositiveFluxError{Flux: flux}
	}

	refFlux, err := e.ReferenceFlux(filter, reference)
	if err != nil {
		return 0, 0, err
	}
	return e.MagnitudeFromReferenceFlux(flux, fluxErr, refFlux)
}

// MagnitudeFromReferenceFlux is MagnitudeFromFlux for a reference flux that
// has already been integrated in the same filter
func (e *Engine) MagnitudeFromReferenceFlux(flux, fluxErr, refFlux float64) (float64, float64, error) {
	if !(flux > 0) {
		return 0, 0, &models.NonPositiveFluxError{Flux: flux}
	}
	if !(refFlux > 0) {
		return 0, 0, &models.NonPositiveFluxError{Flux: refFlux}
	}

	mag := e.opts.ZeroPoint - 2.5*math.Log10(flux/refFlux)
	magErr := 2.5 / math.Ln10 * math.Abs(fluxErr/flux)
	return mag, magErr, nil
}

// MagnitudeToFlux converts a magnitude in the filter back to a flux density.
// The error is the mean of the asymmetric lower and upper flux errors.
func (e *Engine) MagnitudeToFlux(ctx context.Context, mag, magErr float64, filter *models.FilterProfile, reference *models.Spectrum) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	refFlux, err := e.ReferenceFlux(filter, reference)
	if err != nil {
		return 0, 0, err
	}

	toFlux := func(m float64) float64 {
		return refFlux * math.Pow(10, -0.4*(m-e.opts.ZeroPoint))
	}

	flux := toFlux(mag)
	lower := flux - toFlux(mag+magErr)
	upper := toFlux(mag-magErr) - flux
	return flux, (lower + upper) / 2, nil
}
