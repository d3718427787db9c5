package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nm3210/colordescriptors-go/pkg/hsi"
)

func newConvertCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <function> <value>...",
		Short: "Run a color space conversion on raw values",
		Long: "Run a color space conversion on raw values.\n\nFunctions: " +
			strings.Join(hsi.Functions(), ", "),
		Example: "  colordesc convert rgb_to_hsi 255 0 0\n" +
			"  colordesc convert hsi_to_rgbw 120 0.5 2",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: hsi.Functions(),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, 0, len(args)-1)
			for _, arg := range args[1:] {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return newCommandError("convert", fmt.Sprintf("parsing value %q", arg), err, "Values must be decimal numbers.")
				}
				values = append(values, v)
			}

			out, err := hsi.Apply(args[0], values)
			if err != nil {
				return newCommandError("convert", args[0], err, "Functions: "+strings.Join(hsi.Functions(), ", ")+".")
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"function": args[0], "values": out})
			}

			parts := make([]string, len(out))
			for i, v := range out {
				parts[i] = formatFloat(v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return nil
		},
	}
}
