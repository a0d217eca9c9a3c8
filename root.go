package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ribbons/config"
	"ribbons/misc"
	"ribbons/palette"
	"ribbons/ribbon"
)

type Options struct {
	ConfigPath string
	Seed       uint64
	HotReload  bool
	PProf      bool
}

func newRootCommand() *cobra.Command {
	var opts Options

	rootCmd := &cobra.Command{
		Use:           "ribbons",
		Short:         "Animated ribbon background",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file path (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().Uint64Var(&opts.Seed, "seed", 0, "Random seed for ribbon motion, 0 picks one from the clock")
	rootCmd.Flags().BoolVar(&opts.HotReload, "hot", false, "Reload the shader when "+RibbonShaderPath+" changes")
	rootCmd.Flags().BoolVar(&opts.PProf, "pprof", false, "Serve pprof on "+PprofAddr)

	rootCmd.AddCommand(newConfigCommand(&opts))
	rootCmd.AddCommand(newPaletteCommand(&opts))

	return rootCmd
}

func newConfigCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}

			data, err := cfg.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newPaletteCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Print the color pair of every ribbon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}

			scene, err := ribbon.Build(cfg, newRand(opts.Seed))
			if err != nil {
				return fmt.Errorf("build scene: %w", err)
			}

			rows := make([][]string, 0, len(scene.Ribbons))
			for _, r := range scene.Ribbons {
				rows = append(rows, []string{
					strconv.Itoa(r.Column),
					strconv.FormatFloat(r.Fraction, 'f', 3, 64),
					palette.Hex(r.Uniforms.ColorA),
					palette.Hex(r.Uniforms.ColorB),
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "mode %s, darken %g\n", cfg.ColorMode, cfg.Darken)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Column", "Fraction", "Color A", "Color B"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func loadConfig(path string) (config.Config, error) {
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if exists {
		misc.InfoLogger.Printf("loaded config from %s", resolved)
	} else {
		misc.InfoLogger.Printf("%s not found, using defaults", resolved)
	}

	return cfg, nil
}

func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}

func newRand(seed uint64) *rand.Rand {
	seed = resolveSeed(seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
