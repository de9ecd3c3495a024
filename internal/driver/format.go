package driver

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"prettyasm/internal/asmfmt"
	"prettyasm/internal/observ"
	"prettyasm/internal/trace"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	Config asmfmt.Config
	Check  bool   // report only, never write
	Stdout bool   // return formatted bytes instead of writing
	Output string // write the single input's result to this path
	Exts   []string
	Jobs   int // <= 0 means GOMAXPROCS

	Cache    *DiskCache    // optional
	Progress ProgressSink  // optional
	Timer    *observ.Timer // optional
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Output    string // where the result was written, if anywhere
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
}

// FormatPaths formats files or directories of assembly source.
//
// By default files are rewritten in place when formatting changes them.
// With Check nothing is written and Changed reports whether it would be.
// With Stdout the formatted bytes are returned in the results. With Output
// exactly one input file is expected and its result is written there,
// whether or not it changed.
//
// Per-file failures are reported in FormatResult.Err; the returned error is
// reserved for problems with the run itself.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "fmt", 0)
	defer runSpan.End("")

	collectIdx := opts.Timer.Begin("collect")
	collectSpan := trace.Begin(tracer, trace.ScopePass, "collect", runSpan.ID())
	files, err := CollectFiles(ctx, paths, opts.Exts)
	collectSpan.WithExtra("files", strconv.Itoa(len(files))).End("")
	opts.Timer.End(collectIdx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}
	if opts.Output != "" && len(files) != 1 {
		return nil, fmt.Errorf("format: --out needs exactly one input file, got %d", len(files))
	}

	var configDigest Digest
	if opts.Cache != nil {
		if configDigest, err = ConfigDigest(opts.Config); err != nil {
			return nil, fmt.Errorf("format: hashing config: %w", err)
		}
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	formatIdx := opts.Timer.Begin("format")
	formatSpan := trace.Begin(tracer, trace.ScopePass, "format", runSpan.ID())
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(gctx, path, opts, configDigest, formatSpan.ID())
			return nil
		})
	}
	err = g.Wait()
	formatSpan.End("")
	opts.Timer.End(formatIdx, "")
	return results, err
}

func formatFile(ctx context.Context, path string, opts FormatOptions, configDigest Digest, parent uint64) FormatResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parent)
	result := FormatResult{Path: path}
	defer func() {
		status := StatusDone
		switch {
		case result.Err != nil:
			status = StatusError
			span.WithExtra("error", result.Err.Error())
		case result.Cached:
			status = StatusCached
		}
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: status})
		span.WithExtra("changed", strconv.FormatBool(result.Changed)).End(string(status))
	}()

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(configDigest, data)
		if hit, ok := lookupCache(opts.Cache, key); ok && (opts.Check || (!hit.Changed && !opts.Stdout && opts.Output == "")) {
			result.Changed = hit.Changed
			result.Cached = true
			return result
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	formatted := asmfmt.New(opts.Config).Source(ctx, data)
	changed := !bytes.Equal(data, formatted)
	result.Changed = changed

	if opts.Cache != nil {
		// Cache write errors are ignored.
		_ = opts.Cache.Put(key, &CachePayload{Path: path, Changed: changed, FormattedHash: sha256.Sum256(formatted)})
	}

	switch {
	case opts.Check:
		return result
	case opts.Stdout:
		result.Formatted = formatted
		return result
	case opts.Output != "":
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writeFile(opts.Output, formatted, path); err != nil {
			result.Err = err
			return result
		}
		result.Output = opts.Output
		return result
	case changed:
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writeFile(path, formatted, path); err != nil {
			result.Err = err
			result.Changed = false
			return result
		}
		result.Output = path
	}
	return result
}

func lookupCache(c *DiskCache, key Digest) (CachePayload, bool) {
	var payload CachePayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return CachePayload{}, false
	}
	return payload, true
}

// writeFile writes data to dst using the permissions of modeFrom when it exists.
func writeFile(dst string, data []byte, modeFrom string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(modeFrom); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(dst, data, mode.Perm()); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
