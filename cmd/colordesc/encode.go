package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

type encodeOptions struct {
	rgb          []float64
	hsi          []float64
	css          string
	whiteEnabled bool
	as           string
}

func newEncodeCmd(flags *rootFlags) *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a color descriptor from channel levels or HSI",
		Example: "  colordesc encode --rgb 255,128,0\n" +
			"  colordesc encode --rgb 0,0,255,16 --white-enabled\n" +
			"  colordesc encode --hsi 120,1,1 --as rgb\n" +
			"  colordesc encode --css '#ff8000'",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildColor(opts)
			if err != nil {
				return newCommandError("encode", "building color", err, "Pass exactly one of --rgb r,g,b[,w], --hsi h,s,i or --css #rrggbb.")
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newColorOutput(c))
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Encode())
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&opts.rgb, "rgb", nil, "Red, green, blue and optional white levels (0-255)")
	cmd.Flags().Float64SliceVar(&opts.hsi, "hsi", nil, "Hue (degrees), saturation (0-1) and intensity")
	cmd.Flags().BoolVar(&opts.whiteEnabled, "white-enabled", false, "The fixture has a white emitter")
	cmd.Flags().StringVar(&opts.as, "as", "", "Force the output representation: rgb, rgbw or hsi")
	cmd.Flags().StringVar(&opts.css, "css", "", "Web color as #rgb or #rrggbb")
	cmd.MarkFlagsMutuallyExclusive("rgb", "hsi", "css")

	return cmd
}

func buildColor(opts *encodeOptions) (descriptor.Color, error) {
	var in descriptor.Input
	in.WhiteEnabled = opts.whiteEnabled

	switch {
	case opts.css != "":
		c, err := descriptor.FromCSS(opts.css, opts.whiteEnabled)
		if err != nil {
			return descriptor.Color{}, err
		}
		return copyAs(c, opts.as)
	case len(opts.rgb) == 3 || len(opts.rgb) == 4:
		in.Red = descriptor.Value(opts.rgb[0])
		in.Green = descriptor.Value(opts.rgb[1])
		in.Blue = descriptor.Value(opts.rgb[2])
		if len(opts.rgb) == 4 {
			in.White = descriptor.Value(opts.rgb[3])
		}
	case len(opts.hsi) == 3:
		in.Hue = descriptor.Value(opts.hsi[0])
		in.Saturation = descriptor.Value(opts.hsi[1])
		in.Intensity = descriptor.Value(opts.hsi[2])
	default:
		return descriptor.Color{}, errors.New("expected 3 or 4 --rgb values, 3 --hsi values or --css")
	}

	c, err := descriptor.New(in)
	if err != nil {
		return descriptor.Color{}, err
	}
	return copyAs(c, opts.as)
}

func copyAs(c descriptor.Color, as string) (descriptor.Color, error) {
	if as == "" {
		return c, nil
	}
	rep := descriptor.Representation(strings.ToUpper(as))
	if !rep.Valid() {
		return descriptor.Color{}, fmt.Errorf("%w: unknown representation %q", descriptor.ErrInvalidInput, as)
	}
	return c.CopyAs(rep), nil
}
