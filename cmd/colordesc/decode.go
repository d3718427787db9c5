package main

import (
	"github.com/spf13/cobra"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

func newDecodeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <descriptor>",
		Short: "Show the channels of a color descriptor",
		Example: "  colordesc decode cff8000\n" +
			"  colordesc decode h0780ff0ffw --json",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := descriptor.Decode(args[0])
			if err != nil {
				return newCommandError("decode", args[0], err, "Use cRRGGBB, cRRGGBBWW, hHHHSSSIII or hHHHSSSIIIw.")
			}
			newLogger(cmd, flags).With("descriptor", args[0]).Debug("decoded")

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newColorOutput(c))
			}
			renderColor(cmd.OutOrStdout(), c)
			return nil
		},
	}
}
