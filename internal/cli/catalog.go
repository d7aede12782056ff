package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RMahshie/synphot/internal/tabular"
	"github.com/RMahshie/synphot/pkg/models"
)

func filterCmd(s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "filter",
		Short: "Manage filter transmission curves",
	}

	c.AddCommand(filterInstallCmd(s))
	c.AddCommand(filterAddCmd(s))
	c.AddCommand(filterListCmd(s))
	c.AddCommand(filterRemoveCmd(s))
	return c
}

func filterInstallCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "install NAME",
		Short: "Fetch a filter from the catalog into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			profile, err := app.Catalog.InstallFilter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printFilter(cmd, profile)
			return nil
		},
	}
}

func filterAddCmd(s *session) *cobra.Command {
	var file, detector string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Store a filter from a local two-column table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			profile, err := tabular.ReadFilter(f, args[0], detector)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Catalog.AddFilter(cmd.Context(), profile); err != nil {
				return err
			}
			printFilter(cmd, profile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Table with wavelength (um) and transmission columns")
	cmd.Flags().StringVar(&detector, "detector", models.DetectorEnergy, "Detector type: energy or photon")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func filterListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			names, err := app.Catalog.ListFilters(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func filterRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a stored filter",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Catalog.RemoveFilter(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed filter %s\n", args[0])
			return nil
		},
	}
}

func printFilter(cmd *cobra.Command, profile *models.FilterProfile) {
	lo, hi := profile.Range()
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s detector, %d points, %.4g-%.4g um\n",
		profile.Name, profile.DetectorType, len(profile.Wavelength), lo, hi)
}

func spectrumCmd(s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "spectrum",
		Short: "Manage stored spectra",
	}

	c.AddCommand(spectrumInstallCmd(s))
	c.AddCommand(spectrumAddCmd(s))
	c.AddCommand(spectrumRemoveCmd(s))
	return c
}

func spectrumInstallCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "install TAG",
		Short: "Fetch a spectrum (e.g. calibration/vega) from the catalog into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			spectrum, err := app.Catalog.InstallSpectrum(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSpectrum(cmd, spectrum)
			return nil
		},
	}
}

func spectrumAddCmd(s *session) *cobra.Command {
	var file string
	units := models.DefaultUnits()

	cmd := &cobra.Command{
		Use:   "add TAG",
		Short: "Store a spectrum from a local table of wavelength, flux and optional uncertainty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			spectrum, err := tabular.ReadSpectrum(f, units)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			spectrum.Tag = args[0]

			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			stored, err := app.Catalog.AddSpectrum(cmd.Context(), spectrum)
			if err != nil {
				return err
			}
			printSpectrum(cmd, stored)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Table with wavelength, flux and optional uncertainty columns")
	cmd.Flags().StringVar(&units.Wavelength, "wavelength-unit", units.Wavelength, "Wavelength unit: um, nm or angstrom")
	cmd.Flags().StringVar(&units.Flux, "flux-unit", units.Flux, `Flux unit: "w m-2 um-1" or "w m-2"`)
	cmd.Flags().Float64Var(&units.WavelengthScale, "wavelength-scale", 1, "Multiplier applied to the wavelength column")
	cmd.Flags().Float64Var(&units.FluxScale, "flux-scale", 1, "Multiplier applied to the flux and uncertainty columns")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func spectrumRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm TAG|ID",
		Aliases: []string{"remove"},
		Short:   "Remove a stored spectrum with its uploaded table and photometry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Catalog.RemoveSpectrum(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed spectrum %s\n", args[0])
			return nil
		},
	}
}

func printSpectrum(cmd *cobra.Command, spectrum *models.Spectrum) {
	errs := "without"
	if spectrum.HasUncertainty() {
		errs = "with"
	}
	var lo, hi float64
	if spectrum.Len() > 0 {
		lo, hi = spectrum.Sorted().Range()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %d points %s uncertainties, %.4g-%.4g um (id %s)\n",
		spectrum.Tag, spectrum.Len(), errs, lo, hi, spectrum.ID)
}
