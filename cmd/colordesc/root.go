package main

import (
	"github.com/spf13/cobra"

	"github.com/nm3210/colordescriptors-go/internal/config"
	"github.com/nm3210/colordescriptors-go/internal/logger"
)

type rootFlags struct {
	verbose    bool
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "colordesc",
		Short:         "Work with compact LED color descriptor words",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "Output as JSON")

	cfg := config.Load()

	cmd.AddCommand(newDecodeCmd(flags))
	cmd.AddCommand(newEncodeCmd(flags))
	cmd.AddCommand(newConvertCmd(flags))
	cmd.AddCommand(newGradientCmd(flags, cfg))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger writes to the command's error stream so output stays parseable.
func newLogger(cmd *cobra.Command, flags *rootFlags) *logger.Logger {
	level := "warn"
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return logger.Nop()
	}
	return log
}
