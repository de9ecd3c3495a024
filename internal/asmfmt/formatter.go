package asmfmt

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"unicode"

	"prettyasm/internal/trace"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Formatter runs the per-line pipeline over whole sources.
type Formatter struct {
	cfg Config
}

// New returns a Formatter for cfg.
func New(cfg Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// Config returns the configuration the formatter was built with.
func (f *Formatter) Config() Config {
	return f.cfg
}

// Line formats a single source line without its newline.
func (f *Formatter) Line(raw string) string {
	out, _, _ := f.line(raw)
	return out
}

func (f *Formatter) line(raw string) (string, Class, Fields) {
	line := normalizeSpace(strings.TrimSuffix(raw, "\r"))
	class := Classify(line, f.cfg)
	if class == Unknown {
		return strings.TrimSuffix(raw, "\r"), class, Fields{}
	}
	fields := Extract(line, class, f.cfg)
	return Render(fields, class, f.cfg), class, fields
}

// normalizeSpace turns tabs and every other Unicode space into ' '.
func normalizeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

// Source formats every line of src. Each input line produces exactly one
// output line and every output line ends with '\n'. With Config.Verbose set,
// a trace point is emitted per line through the tracer in ctx.
func (f *Formatter) Source(ctx context.Context, src []byte) []byte {
	src = bytes.TrimPrefix(src, utf8BOM)
	if len(src) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(src), "\n")
	lines := strings.Split(text, "\n")

	tracer := trace.Nop
	if f.cfg.Verbose {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopeFile, "format", 0)

	var out bytes.Buffer
	out.Grow(len(src) + len(src)/4)
	for i, raw := range lines {
		formatted, class, fields := f.line(raw)
		traceLine(tracer, span.ID(), i+1, class, fields)
		out.WriteString(formatted)
		out.WriteByte('\n')
	}
	span.WithExtra("lines", strconv.Itoa(len(lines))).End("")
	return out.Bytes()
}

// traceLine reports what was found on a line: the label, opcode, operand and
// comment, or which kind of line it was.
func traceLine(t trace.Tracer, parent uint64, lineNo int, class Class, fields Fields) {
	if !t.Enabled() {
		return
	}
	detail := strconv.Itoa(lineNo) + " " + class.String()
	var extra map[string]string
	if class == Labeled || class == Unlabeled {
		extra = map[string]string{
			"label":   fields.Label,
			"opcode":  fields.Opcode,
			"operand": fields.Operand,
			"comment": fields.Comment,
		}
	}
	trace.Point(t, trace.ScopeLine, "line", detail, parent, extra)
}
