package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"prettyasm/internal/version"
)

// newRootCmd builds the command tree with its global flags.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prettyasm",
		Short: "Column formatter for assembly language source",
		Long: `prettyasm lays out assembly source in fixed columns for labels, opcodes,
operands and comments, with optional case normalisation.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: applyColorMode,
	}

	root.AddCommand(newFmtCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newVersionCmd())

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("ui", "auto", "progress UI for multi-file runs (auto|on|off)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
	root.PersistentFlags().String("runtime-trace", "", "write a Go execution trace to this file")
	return root
}

// main runs the root command. Any error exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode(cmd *cobra.Command, _ []string) error {
	useColor, err := switchFlag(cmd, "color")
	if err != nil {
		return err
	}
	color.NoColor = !useColor
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
