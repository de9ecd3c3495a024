package asmfmt

import (
	"context"
	"strings"
	"testing"

	"prettyasm/internal/trace"
)

var corpus = []string{
	"start lda #$01 ; go",
	"    STA $D020",
	"COUNT equ 10",
	`msg .text "Hi There"`,
	"; banner",
	";;;;;;;;",
	"*=$C000",
	"loop: dex",
	"\tbne loop ;Again",
	"",
	" \t ",
	".local rts",
	"$1 inx",
	`    lda #";"`,
	"    cmp #'Q' ; quit?",
	"    ; indented note",
	"9 unknown line",
}

func TestFormatterIdempotent(t *testing.T) {
	space := upperConfig()
	space.OperandSeparator = SeparatorSpace
	space.CommentCase = CaseLower
	remove := lowerConfig()
	remove.LabelColon = ColonRemove
	narrow := DefaultConfig()
	narrow.Columns = Columns{Opcode: 8, Operand: 14, Comment: 30}

	for name, cfg := range map[string]Config{
		"default": DefaultConfig(),
		"lower":   lowerConfig(),
		"space":   space,
		"remove":  remove,
		"narrow":  narrow,
	} {
		f := New(cfg)
		for _, line := range corpus {
			once := f.Line(line)
			twice := f.Line(once)
			if once != twice {
				t.Errorf("%s: not idempotent for %q\n first  %q\n second %q", name, line, once, twice)
			}
		}
	}
}

func TestBlankLinesRenderEmpty(t *testing.T) {
	f := New(DefaultConfig())
	for _, line := range []string{"", " ", "\t", " \t \t", "\t\t\t   ", "\r"} {
		if got := f.Line(line); got != "" {
			t.Fatalf("Line(%q) = %q, want empty", line, got)
		}
	}
}

func TestQuotedOperandCasePreserved(t *testing.T) {
	operands := []string{`"MiXeD"`, `'aB'`, `#"Zz"`, `#'Qq'`}
	for _, cfg := range []Config{lowerConfig(), upperConfig()} {
		f := New(cfg)
		for _, op := range operands {
			got := f.Line("    lda " + op)
			if !strings.HasSuffix(got, " "+op) {
				t.Fatalf("case changed for %s: %q", op, got)
			}
		}
	}
}

func TestSourceKeepsLineCount(t *testing.T) {
	src := "start lda #1\n\n; note\n    rts\n"
	out := New(DefaultConfig()).Source(context.Background(), []byte(src))
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	if lines[1] != "" || lines[2] != "; note" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestSourceNormalizesInput(t *testing.T) {
	f := New(DefaultConfig())
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"no final newline", "loop", "loop:\n"},
		{"crlf", "loop\r\n    rts\r\n", "loop:\n" + spaces(11) + "rts\n"},
		{"bom", "\xEF\xBB\xBFloop\n", "loop:\n"},
		{"single newline", "\n", "\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(f.Source(context.Background(), []byte(tc.src)))
			if got != tc.want {
				t.Fatalf("Source(%q) = %q, want %q", tc.src, got, tc.want)
			}
		})
	}
}

func TestSourceVerboseTracesLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Verbose = true
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	New(cfg).Source(ctx, []byte("start lda #1 ; hi\n\n; c\n"))

	var lines []trace.Event
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeLine {
			lines = append(lines, ev)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 line events, got %d", len(lines))
	}
	if lines[0].Detail != "1 labeled" || lines[1].Detail != "2 blank" || lines[2].Detail != "3 comment" {
		t.Fatalf("unexpected details: %q %q %q", lines[0].Detail, lines[1].Detail, lines[2].Detail)
	}
	if lines[0].Extra["label"] != "start:" || lines[0].Extra["opcode"] != "lda" || lines[0].Extra["comment"] != "; hi" {
		t.Fatalf("unexpected extras: %v", lines[0].Extra)
	}
}

func TestSourceQuietWithoutVerbose(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	New(DefaultConfig()).Source(ctx, []byte("start lda #1\n"))
	if n := len(ring.Snapshot()); n != 0 {
		t.Fatalf("expected no events without verbose, got %d", n)
	}
}

func TestLineKeepsCommentAfterUnicodeSpace(t *testing.T) {
	f := New(DefaultConfig())
	cases := []struct {
		line string
		want string
	}{
		{"    lda #1\v;keep me", spaces(11) + "lda   #1" + spaces(8) + "; keep me"},
		{"    nop\u2003;keep me", spaces(11) + "nop" + spaces(13) + "; keep me"},
		{"loop\u00a0dex\u00a0;keep me", "loop:" + spaces(6) + "dex" + spaces(13) + "; keep me"},
	}
	for _, tc := range cases {
		if got := f.Line(tc.line); got != tc.want {
			t.Fatalf("Line(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}
