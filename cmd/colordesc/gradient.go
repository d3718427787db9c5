package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nm3210/colordescriptors-go/internal/config"
	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

type gradientOptions struct {
	mode         string
	steps        int
	whiteEnabled bool
	presetFile   string
	maxColors    int
}

type gradientOutput struct {
	Descriptor string        `json:"descriptor"`
	Mode       string        `json:"mode"`
	Steps      int           `json:"steps"`
	Colors     []colorOutput `json:"colors"`
}

func newGradientCmd(flags *rootFlags, cfg *config.Config) *cobra.Command {
	opts := &gradientOptions{}

	cmd := &cobra.Command{
		Use:   "gradient <descriptor|preset|special>",
		Short: "List every color of a gradient",
		Long: "List every color of a gradient descriptor such as \"cff0000,c0000ff;4\", " +
			"a preset from the preset file, or a special pattern (" +
			strings.Join(descriptor.NewSpecialRegistry().Names(), ", ") + ").",
		Example: "  colordesc gradient 'cff000000,c00ff0000;1' --mode rgbw\n" +
			"  colordesc gradient rainbow --steps 10",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd, flags)

			g, err := resolveGradient(args[0], opts)
			if err != nil {
				return newCommandError("gradient", args[0], err, "Gradients look like c1,c2,...;steps.")
			}
			log.WithFields(map[string]any{"nodes": len(g.Nodes()), "colors": g.Len()}).Debug("gradient materialized")

			colors := g.Colors()
			if flags.jsonOutput {
				out := gradientOutput{
					Descriptor: g.Encode(),
					Mode:       string(g.Mode()),
					Steps:      g.Steps(),
					Colors:     make([]colorOutput, len(colors)),
				}
				for i := range colors {
					out.Colors[i] = newColorOutput(colors[i])
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			for i := range colors {
				fmt.Fprintln(cmd.OutOrStdout(), colors[i].Encode())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(cfg.DefaultInterpolation), "Interpolation mode: HSI or RGBW")
	cmd.Flags().IntVarP(&opts.steps, "steps", "s", 0, "Colors between nodes for special patterns")
	cmd.Flags().BoolVar(&opts.whiteEnabled, "white-enabled", cfg.DefaultWhiteEnabled, "Special patterns drive a white emitter")
	cmd.Flags().StringVar(&opts.presetFile, "presets", cfg.PresetFile, "YAML preset file to resolve names from")
	cmd.Flags().IntVar(&opts.maxColors, "max-colors", cfg.MaxGradientColors, "Largest gradient to materialize")

	return cmd
}

func resolveGradient(word string, opts *gradientOptions) (*descriptor.Gradient, error) {
	mode := descriptor.InterpolationMode(strings.ToUpper(opts.mode))
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown interpolation mode %q", descriptor.ErrInvalidInput, opts.mode)
	}

	if special, ok := descriptor.NewSpecialRegistry().Lookup(word); ok {
		g, err := special(opts.steps, opts.whiteEnabled)
		if err != nil {
			return nil, err
		}
		if _, err := descriptor.GradientLen(g.Len(), 0, opts.maxColors); err != nil {
			return nil, err
		}
		return g, nil
	}

	if opts.presetFile != "" {
		file, err := config.LoadPresetFile(opts.presetFile)
		if err != nil {
			return nil, err
		}
		for _, p := range file.Presets {
			if strings.EqualFold(p.Name, word) {
				word = p.Descriptor
				if p.Mode != "" {
					mode = descriptor.InterpolationMode(strings.ToUpper(p.Mode))
				}
				break
			}
		}
	}

	if descriptor.IsGradient(word) {
		return descriptor.DecodeGradientLimit(word, mode, opts.maxColors)
	}
	c, err := descriptor.Decode(word)
	if err != nil {
		return nil, err
	}
	return descriptor.NewGradient(c, 0, mode)
}
