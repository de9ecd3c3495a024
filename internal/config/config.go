// Package config loads prettyasm.toml and merges it over the built-in
// formatting defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"prettyasm/internal/asmfmt"
)

// FileName is the name searched for when no explicit config path is given.
const FileName = "prettyasm.toml"

// File is a decoded prettyasm.toml.
type File struct {
	Path string
	doc  document
	meta toml.MetaData
}

type document struct {
	Labels   labelsSection   `toml:"labels"`
	Opcodes  opcodesSection  `toml:"opcodes"`
	Comments commentsSection `toml:"comments"`
	Layout   layoutSection   `toml:"layout"`
}

type labelsSection struct {
	Case  string `toml:"case"`
	Colon string `toml:"colon"`
}

type opcodesSection struct {
	Case           string   `toml:"case"`
	Separator      string   `toml:"separator"`
	TextDirectives []string `toml:"text_directives"`
}

type commentsSection struct {
	Case                string `toml:"case"`
	SpaceAfterDelimiter bool   `toml:"space_after_delimiter"`
}

type layoutSection struct {
	Columns        []int64 `toml:"columns"`
	ForceSeparator bool    `toml:"force_separator"`
	OriginIsLabel  bool    `toml:"origin_is_label"`
}

// Find walks up from startDir looking for prettyasm.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a config file. Unknown keys are rejected so typos surface.
func Load(path string) (*File, error) {
	f := &File{Path: path}
	meta, err := toml.DecodeFile(path, &f.doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	f.meta = meta
	return f, nil
}

// Apply returns cfg with every key defined in the file applied on top.
func (f *File) Apply(cfg asmfmt.Config) (asmfmt.Config, error) {
	if f == nil {
		return cfg, nil
	}
	var err error
	if f.meta.IsDefined("labels", "case") {
		if cfg.LabelCase, err = asmfmt.ParseCase(f.doc.Labels.Case); err != nil {
			return cfg, f.keyErr("labels.case", err)
		}
	}
	if f.meta.IsDefined("labels", "colon") {
		if cfg.LabelColon, err = asmfmt.ParseColon(f.doc.Labels.Colon); err != nil {
			return cfg, f.keyErr("labels.colon", err)
		}
	}
	if f.meta.IsDefined("opcodes", "case") {
		if cfg.OpcodeCase, err = asmfmt.ParseCase(f.doc.Opcodes.Case); err != nil {
			return cfg, f.keyErr("opcodes.case", err)
		}
	}
	if f.meta.IsDefined("opcodes", "separator") {
		if cfg.OperandSeparator, err = asmfmt.ParseSeparator(f.doc.Opcodes.Separator); err != nil {
			return cfg, f.keyErr("opcodes.separator", err)
		}
	}
	if f.meta.IsDefined("opcodes", "text_directives") {
		cfg.TextDirectives = append([]string(nil), f.doc.Opcodes.TextDirectives...)
	}
	if f.meta.IsDefined("comments", "case") {
		if cfg.CommentCase, err = asmfmt.ParseCase(f.doc.Comments.Case); err != nil {
			return cfg, f.keyErr("comments.case", err)
		}
	}
	if f.meta.IsDefined("comments", "space_after_delimiter") {
		cfg.SpaceAfterCommentDelimiter = f.doc.Comments.SpaceAfterDelimiter
	}
	if f.meta.IsDefined("layout", "columns") {
		if cfg.Columns, err = columnsFrom(f.doc.Layout.Columns); err != nil {
			return cfg, f.keyErr("layout.columns", err)
		}
	}
	if f.meta.IsDefined("layout", "force_separator") {
		cfg.ForceFieldSeparator = f.doc.Layout.ForceSeparator
	}
	if f.meta.IsDefined("layout", "origin_is_label") {
		cfg.OriginIsLabel = f.doc.Layout.OriginIsLabel
	}
	return cfg, nil
}

func (f *File) keyErr(key string, err error) error {
	return fmt.Errorf("%s: [%s]: %w", f.Path, key, err)
}

func columnsFrom(values []int64) (asmfmt.Columns, error) {
	if len(values) != 3 {
		return asmfmt.Columns{}, fmt.Errorf("expected 3 columns (opcode, operand, comment), got %d", len(values))
	}
	var ints [3]int
	for i, v := range values {
		n, err := safecast.Conv[int](v)
		if err != nil {
			return asmfmt.Columns{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		ints[i] = n
	}
	cols := asmfmt.Columns{Opcode: ints[0], Operand: ints[1], Comment: ints[2]}
	if err := cols.Validate(); err != nil {
		return asmfmt.Columns{}, err
	}
	return cols, nil
}
