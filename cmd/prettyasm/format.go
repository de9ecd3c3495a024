package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"prettyasm/internal/asmfmt"
	"prettyasm/internal/config"
	"prettyasm/internal/driver"
	"prettyasm/internal/observ"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Format assembly source files",
		Long: `Format assembly source files or directories in place.

Labels start in column 1, opcodes, operands and comments start at the
columns given by --tabs. Settings are read from prettyasm.toml (searched
upward from the first path) and overridden by flags.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFmt,
	}

	flags := cmd.Flags()
	flags.Bool("check", false, "check if files are properly formatted")
	flags.String("format", "text", "output format (text|json)")
	flags.Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	flags.String("out", "", "write the formatted result of a single input file to this path")
	flags.Uint("jobs", 0, "files formatted in parallel (0 = number of CPUs)")
	flags.Bool("cache", false, "reuse results for unchanged files from the on-disk cache")
	flags.String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/prettyasm)")
	flags.String("config", "", "path to prettyasm.toml")
	flags.StringSlice("ext", driver.DefaultExtensions, "file extensions picked up from directories")

	flags.BoolP("llower", "l", false, "labels to lower case")
	flags.BoolP("lupper", "L", false, "labels to upper case")
	flags.String("colon", "add", "trailing colon on labels (add|remove)")
	flags.BoolP("olower", "o", false, "opcodes and operands to lower case")
	flags.BoolP("oupper", "O", false, "opcodes and operands to upper case")
	flags.BoolP("clower", "c", false, "comments to lower case")
	flags.BoolP("cupper", "C", false, "comments to upper case")
	flags.BoolP("space", "s", false, "single space between opcode and operand instead of a column")
	flags.IntSlice("tabs", []int{asmfmt.DefaultColumns.Opcode, asmfmt.DefaultColumns.Operand, asmfmt.DefaultColumns.Comment}, "opcode, operand and comment columns")
	flags.BoolP("verbose", "v", false, "trace every line to stderr")
	flags.Bool("force-space", true, "keep a space after fields that overrun their column")
	flags.Bool("comment-space", true, "insert a space after full-line comment delimiters")
	flags.Bool("origin-label", true, "treat a leading '*' as the origin label")
	flags.StringSlice("text-directive", asmfmt.DefaultTextDirectives, "opcodes whose operand keeps its case")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return err
	}
	jobsFlag, err := cmd.Flags().GetUint("jobs")
	if err != nil {
		return err
	}
	jobs, err := safecast.Conv[int](jobsFlag)
	if err != nil {
		return fmt.Errorf("fmt: --jobs: %w", err)
	}

	if writeToStdout && check {
		return errors.New("fmt: --stdout cannot be used with --check")
	}
	if outPath != "" && (check || writeToStdout) {
		return errors.New("fmt: --out cannot be used with --check or --stdout")
	}
	if writeToStdout && outputFormat != "text" {
		return errors.New("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	root := cmd.Root().PersistentFlags()
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := root.GetBool("timings")
	if err != nil {
		return err
	}
	useUI, err := switchFlag(cmd, "ui")
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd, cfg.Verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	opts := driver.FormatOptions{
		Config: cfg,
		Check:  check,
		Stdout: writeToStdout,
		Output: outPath,
		Exts:   exts,
		Jobs:   jobs,
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	if useCache {
		if opts.Cache, err = openCache(cmd); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	var results []driver.FormatResult
	if !writeToStdout && outputFormat == "text" && !quiet && useUI {
		files, collectErr := driver.CollectFiles(ctx, args, exts)
		if collectErr != nil {
			return collectErr
		}
		if len(files) > 1 {
			results, err = runFormatWithUI(ctx, fmt.Sprintf("formatting %d files", len(files)), files, args, opts)
		} else {
			results, err = driver.FormatPaths(ctx, args, opts)
		}
	} else {
		results, err = driver.FormatPaths(ctx, args, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch outputFormat {
	case "text":
		if writeToStdout {
			hasErrors = renderFmtStdout(cmd.OutOrStdout(), cmd.ErrOrStderr(), results)
		} else {
			hasErrors, hasChanges = renderFmtText(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, check, quiet)
		}
	case "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), results, check); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	}

	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}

	if hasErrors {
		return errors.New("fmt: failed to format some files")
	}
	if check && hasChanges {
		return errors.New("fmt: formatting changes required")
	}
	return nil
}

// buildConfig layers the built-in defaults, prettyasm.toml and the flags
// that were set explicitly, in that order.
func buildConfig(cmd *cobra.Command, paths []string) (asmfmt.Config, error) {
	cfg := asmfmt.DefaultConfig()
	flags := cmd.Flags()

	file, err := loadConfigFile(cmd, paths)
	if err != nil {
		return cfg, err
	}
	if cfg, err = file.Apply(cfg); err != nil {
		return cfg, err
	}

	if c, ok, err := caseFromFlags(cmd, "llower", "lupper"); err != nil {
		return cfg, err
	} else if ok {
		cfg.LabelCase = c
	}
	if c, ok, err := caseFromFlags(cmd, "olower", "oupper"); err != nil {
		return cfg, err
	} else if ok {
		cfg.OpcodeCase = c
	}
	if c, ok, err := caseFromFlags(cmd, "clower", "cupper"); err != nil {
		return cfg, err
	} else if ok {
		cfg.CommentCase = c
	}

	if flags.Changed("colon") {
		value, _ := flags.GetString("colon")
		if cfg.LabelColon, err = asmfmt.ParseColon(value); err != nil {
			return cfg, fmt.Errorf("fmt: --colon: %w", err)
		}
	}
	if flags.Changed("space") {
		space, _ := flags.GetBool("space")
		if space {
			cfg.OperandSeparator = asmfmt.SeparatorSpace
		} else {
			cfg.OperandSeparator = asmfmt.SeparatorAligned
		}
	}
	if flags.Changed("tabs") {
		tabs, _ := flags.GetIntSlice("tabs")
		if len(tabs) != 3 {
			return cfg, fmt.Errorf("fmt: --tabs expects 3 columns (opcode, operand, comment), got %d", len(tabs))
		}
		cols := asmfmt.Columns{Opcode: tabs[0], Operand: tabs[1], Comment: tabs[2]}
		if err := cols.Validate(); err != nil {
			return cfg, fmt.Errorf("fmt: --tabs: %w", err)
		}
		cfg.Columns = cols
	}
	if flags.Changed("force-space") {
		cfg.ForceFieldSeparator, _ = flags.GetBool("force-space")
	}
	if flags.Changed("comment-space") {
		cfg.SpaceAfterCommentDelimiter, _ = flags.GetBool("comment-space")
	}
	if flags.Changed("origin-label") {
		cfg.OriginIsLabel, _ = flags.GetBool("origin-label")
	}
	if flags.Changed("text-directive") {
		directives, _ := flags.GetStringSlice("text-directive")
		cfg.TextDirectives = append([]string(nil), directives...)
	}
	cfg.Verbose, _ = flags.GetBool("verbose")
	return cfg, nil
}

// caseFromFlags resolves a lower/upper flag pair. Lower wins when both are set.
func caseFromFlags(cmd *cobra.Command, lowerName, upperName string) (asmfmt.Case, bool, error) {
	lower, err := cmd.Flags().GetBool(lowerName)
	if err != nil {
		return asmfmt.CaseUnchanged, false, err
	}
	upper, err := cmd.Flags().GetBool(upperName)
	if err != nil {
		return asmfmt.CaseUnchanged, false, err
	}
	switch {
	case lower:
		return asmfmt.CaseLower, true, nil
	case upper:
		return asmfmt.CaseUpper, true, nil
	default:
		return asmfmt.CaseUnchanged, false, nil
	}
}

// loadConfigFile returns the file named by --config, or the nearest
// prettyasm.toml above the first path. A nil file means none was found.
func loadConfigFile(cmd *cobra.Command, paths []string) (*config.File, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		start := "."
		if len(paths) > 0 {
			start = paths[0]
		}
		found, ok, err := config.Find(start)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	return config.Load(path)
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, err
	}
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("prettyasm")
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	changedLabel = color.New(color.FgYellow)
	doneLabel    = color.New(color.FgGreen)
)

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) bool {
	hasErrors := false
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "%s %s: %v\n", errorLabel.Sprint("fmt:"), res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "%s %s: %v\n", errorLabel.Sprint("fmt:"), res.Path, res.Err)
			continue
		}
		if res.Changed {
			hasChanges = true
		}
		if quiet {
			continue
		}
		switch {
		case check:
			if res.Changed {
				fmt.Fprintln(out, changedLabel.Sprint(res.Path))
			}
		case res.Output != "" && res.Output != res.Path:
			fmt.Fprintf(out, "%s %s -> %s\n", doneLabel.Sprint("wrote"), res.Path, res.Output)
		case res.Output != "":
			fmt.Fprintf(out, "%s %s\n", doneLabel.Sprint("reformatted"), res.Path)
		}
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Cached   bool   `json:"cached,omitempty"`
		Output   string `json:"output,omitempty"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, Output: res.Output, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
