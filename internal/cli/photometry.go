package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RMahshie/synphot/internal/photometry"
	"github.com/RMahshie/synphot/pkg/models"
)

func fluxCmd(s *session) *cobra.Command {
	var spectrum, filter string

	cmd := &cobra.Command{
		Use:   "flux",
		Short: "Filter-weighted flux density of a stored spectrum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			flux, fluxErr, err := app.Photometry.Flux(cmd.Context(), spectrum, filter)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Flux = %.6e +/- %.6e W m-2 um-1\n", flux, fluxErr)
			return nil
		},
	}

	cmd.Flags().StringVar(&spectrum, "spectrum", "", "Spectrum tag or ID")
	cmd.Flags().StringVar(&filter, "filter", "", "Filter name, e.g. MKO/NSFCam.J")
	_ = cmd.MarkFlagRequired("spectrum")
	_ = cmd.MarkFlagRequired("filter")
	return cmd
}

func magCmd(s *session) *cobra.Command {
	var req models.PhotometryRequest

	cmd := &cobra.Command{
		Use:   "mag",
		Short: "Synthetic magnitude of a stored spectrum relative to the reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			result, err := app.Photometry.Compute(cmd.Context(), &req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Flux = %.6e +/- %.6e W m-2 um-1\n", result.Flux, result.FluxError)
			fmt.Fprintf(out, "Mag = %.4f +/- %.4f (%s, %s)\n", result.Magnitude, result.MagnitudeError, result.FilterName, result.ReferenceTag)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.SpectrumID, "spectrum", "", "Spectrum tag or ID")
	cmd.Flags().StringVar(&req.FilterName, "filter", "", "Filter name, e.g. MKO/NSFCam.J")
	cmd.Flags().StringVar(&req.ReferenceTag, "reference", "", "Reference spectrum tag (default: configured Vega tag)")
	_ = cmd.MarkFlagRequired("spectrum")
	_ = cmd.MarkFlagRequired("filter")
	return cmd
}

func historyCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "history TAG|ID",
		Short: "Stored photometry of a spectrum, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			results, err := app.Photometry.ListResults(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%s  %.4f +/- %.4f  (%s, %d trials)\n",
					r.FilterName, r.Magnitude, r.MagnitudeError, r.ReferenceTag, r.Trials)
			}
			return nil
		},
	}
}

func magToFluxCmd(s *session) *cobra.Command {
	var mag, magErr float64
	var filter, reference string

	cmd := &cobra.Command{
		Use:   "mag2flux",
		Short: "Convert a magnitude in a filter to a flux density",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			flux, fluxErr, err := app.Photometry.FluxFromMagnitude(cmd.Context(), mag, magErr, filter, reference)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Flux = %.6e +/- %.6e W m-2 um-1\n", flux, fluxErr)
			return nil
		},
	}

	cmd.Flags().Float64Var(&mag, "mag", 0, "Magnitude")
	cmd.Flags().Float64Var(&magErr, "mag-err", 0, "Magnitude uncertainty")
	cmd.Flags().StringVar(&filter, "filter", "", "Filter name")
	cmd.Flags().StringVar(&reference, "reference", "", "Reference spectrum tag (default: configured Vega tag)")
	_ = cmd.MarkFlagRequired("mag")
	_ = cmd.MarkFlagRequired("filter")
	return cmd
}

func absMagCmd() *cobra.Command {
	var mag, magErr, parallax, parallaxErr float64

	cmd := &cobra.Command{
		Use:   "absmag",
		Short: "Absolute magnitude from an apparent magnitude and a parallax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			distance, distanceErr, err := photometry.ParallaxToDistance(parallax, parallaxErr)
			if err != nil {
				return err
			}
			absMag, absMagErr, err := photometry.AbsoluteMagnitude(mag, magErr, distance, distanceErr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Distance = %.3f +/- %.3f pc\n", distance, distanceErr)
			fmt.Fprintf(out, "Absolute mag = %.3f +/- %.3f\n", absMag, absMagErr)
			return nil
		},
	}

	cmd.Flags().Float64Var(&mag, "mag", 0, "Apparent magnitude")
	cmd.Flags().Float64Var(&magErr, "mag-err", 0, "Apparent magnitude uncertainty")
	cmd.Flags().Float64Var(&parallax, "parallax", 0, "Parallax (mas)")
	cmd.Flags().Float64Var(&parallaxErr, "parallax-err", 0, "Parallax uncertainty (mas)")
	_ = cmd.MarkFlagRequired("mag")
	_ = cmd.MarkFlagRequired("parallax")
	return cmd
}
