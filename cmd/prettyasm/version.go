package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"prettyasm/internal/asmfmt"
	"prettyasm/internal/config"
	"prettyasm/internal/driver"
	"prettyasm/internal/version"
)

// versionReport is what `prettyasm version` prints. Build metadata and
// defaults are only filled when requested.
type versionReport struct {
	Tool      string          `json:"tool"`
	Version   string          `json:"version"`
	GitCommit string          `json:"git_commit,omitempty"`
	BuildDate string          `json:"build_date,omitempty"`
	Defaults  *formatDefaults `json:"defaults,omitempty"`
}

// formatDefaults are the built-in settings that apply before
// prettyasm.toml and flags.
type formatDefaults struct {
	Columns        [3]int   `json:"columns"`
	TextDirectives []string `json:"text_directives"`
	Extensions     []string `json:"extensions"`
	ConfigFile     string   `json:"config_file"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show prettyasm version and built-in defaults",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "include build metadata and formatting defaults")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	showHash, _ := cmd.Flags().GetBool("hash")
	showDate, _ := cmd.Flags().GetBool("date")
	full, _ := cmd.Flags().GetBool("full")

	report := versionReport{Tool: "prettyasm", Version: strings.TrimSpace(version.Version)}
	if report.Version == "" {
		report.Version = "dev"
	}
	if showHash || full {
		report.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if showDate || full {
		report.BuildDate = valueOrUnknown(version.BuildDate)
	}
	if full {
		cols := asmfmt.DefaultColumns
		report.Defaults = &formatDefaults{
			Columns:        [3]int{cols.Opcode, cols.Operand, cols.Comment},
			TextDirectives: asmfmt.DefaultTextDirectives,
			Extensions:     driver.DefaultExtensions,
			ConfigFile:     config.FileName,
		}
	}

	switch strings.ToLower(format) {
	case "pretty":
		renderVersionPretty(cmd.OutOrStdout(), report)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionPretty(out io.Writer, r versionReport) {
	v := r.Version
	if v == version.Version {
		v = version.Colored()
	}
	fmt.Fprintf(out, "prettyasm %s\n", v)
	if r.GitCommit != "" {
		fmt.Fprintf(out, "commit:     %s\n", r.GitCommit)
	}
	if r.BuildDate != "" {
		fmt.Fprintf(out, "built:      %s\n", r.BuildDate)
	}
	if d := r.Defaults; d != nil {
		fmt.Fprintf(out, "columns:    opcode %d, operand %d, comment %d\n", d.Columns[0], d.Columns[1], d.Columns[2])
		fmt.Fprintf(out, "text:       %s\n", strings.Join(d.TextDirectives, " "))
		fmt.Fprintf(out, "extensions: %s\n", strings.Join(d.Extensions, " "))
		fmt.Fprintf(out, "config:     %s\n", d.ConfigFile)
	}
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
