package asmfmt

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func spaces(n int) string { return strings.Repeat(" ", n) }

func TestRenderDefaults(t *testing.T) {
	cfg := DefaultConfig() // columns 12, 18, 28

	cases := []struct {
		name string
		line string
		want string
	}{
		{
			name: "labeled with comment",
			line: "start lda #$01 ; go",
			want: "start:" + spaces(5) + "lda" + spaces(3) + "#$01" + spaces(6) + "; go",
		},
		{
			name: "unlabeled",
			line: "    rts",
			want: spaces(11) + "rts",
		},
		{
			name: "equate",
			line: "COUNT equ 10",
			want: "COUNT" + spaces(6) + "equ" + spaces(3) + "10",
		},
		{
			name: "origin",
			line: "*=$C000",
			want: "*" + spaces(10) + "=" + spaces(5) + "$C000",
		},
		{
			name: "comment only on instruction line",
			line: "\t; indented",
			want: spaces(27) + "; indented",
		},
		{
			name: "tabs normalized",
			line: "\tlda\t#1",
			want: spaces(11) + "lda" + spaces(3) + "#1",
		},
		{
			name: "blank",
			line: " \t \t ",
			want: "",
		},
		{
			name: "full-line comment",
			line: ";hello",
			want: "; hello",
		},
		{
			name: "unknown echoed",
			line: "1234\tjunk",
			want: "1234\tjunk",
		},
	}
	f := New(cfg)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Line(tc.line); got != tc.want {
				t.Fatalf("Line(%q)\n got  %q\n want %q", tc.line, got, tc.want)
			}
		})
	}
}

// mylabel lda #$01 ; load accumulator with columns 10, 15, 25.
func TestRenderExampleSingleSpace(t *testing.T) {
	cfg := lowerConfig()
	cfg.OperandSeparator = SeparatorSpace
	cfg.Columns = Columns{Opcode: 10, Operand: 15, Comment: 25}

	got := New(cfg).Line("mylabel lda #$01 ; load accumulator")
	want := "mylabel: lda #$01" + spaces(7) + "; load accumulator"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	if idx := strings.Index(got, "lda"); idx != 9 {
		t.Fatalf("opcode starts at column %d, want 10", idx+1)
	}
	if idx := strings.Index(got, ";"); idx != 24 {
		t.Fatalf("comment starts at column %d, want 25", idx+1)
	}
}

func TestRenderExampleAligned(t *testing.T) {
	cfg := lowerConfig()
	cfg.Columns = Columns{Opcode: 10, Operand: 15, Comment: 25}

	got := New(cfg).Line("mylabel lda #$01 ; load accumulator")
	if idx := strings.Index(got, "#$01"); idx != 14 {
		t.Fatalf("operand starts at column %d, want 15: %q", idx+1, got)
	}
	if idx := strings.Index(got, ";"); idx != 24 {
		t.Fatalf("comment starts at column %d, want 25: %q", idx+1, got)
	}
}

func TestRenderOverrunPushesRight(t *testing.T) {
	cfg := DefaultConfig()
	f := Fields{Label: "averyveryverylonglabel:", Opcode: ".text", Operand: `"a long string operand"`, Comment: "; note"}

	got := Render(f, Labeled, cfg)
	want := `averyveryverylonglabel: .text "a long string operand" ; note`
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}

	cfg.ForceFieldSeparator = false
	got = Render(f, Labeled, cfg)
	want = `averyveryverylonglabel:.text "a long string operand"; note`
	if got != want {
		t.Fatalf("without forced separator\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderWideOpcodeKeepsOneSpace(t *testing.T) {
	cfg := DefaultConfig()
	f := Fields{Opcode: ".include", Operand: `"x.inc"`}
	got := Render(f, Unlabeled, cfg)
	want := spaces(11) + `.include "x.inc"`
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderNonInstructionClasses(t *testing.T) {
	cfg := DefaultConfig()
	if got := Render(Fields{Comment: "ignored"}, Blank, cfg); got != "" {
		t.Fatalf("blank rendered %q", got)
	}
	if got := Render(Fields{Comment: "; kept  as is  "}, FullComment, cfg); got != "; kept  as is  " {
		t.Fatalf("full comment rendered %q", got)
	}
}

func TestRenderToleratesBadColumns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Columns = Columns{Opcode: 0, Operand: -5, Comment: 0}
	got := Render(Fields{Label: "x:", Opcode: "nop", Operand: "1", Comment: "; c"}, Labeled, cfg)
	if got != "x: nop 1 ; c" {
		t.Fatalf("got %q", got)
	}
}

func TestColumnsValidate(t *testing.T) {
	if err := DefaultColumns.Validate(); err != nil {
		t.Fatalf("default columns invalid: %v", err)
	}
	bad := []Columns{
		{Opcode: 1, Operand: 5, Comment: 10},
		{Opcode: 10, Operand: 10, Comment: 20},
		{Opcode: 10, Operand: 20, Comment: 15},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected %+v to be rejected", c)
		}
	}
}

func TestRenderAmbiguousWidthIgnoresLocale(t *testing.T) {
	prev := runewidth.DefaultCondition.EastAsianWidth
	defer func() { runewidth.DefaultCondition.EastAsianWidth = prev }()

	f := New(DefaultConfig())
	cases := []struct {
		line string
		want string
	}{
		{`msg .text "25°C" ; temp`, "msg:" + spaces(7) + `.text "25°C"` + spaces(4) + "; temp"},
		{"é lda #1", "é:" + spaces(9) + "lda   #1"},
	}
	for _, eastAsian := range []bool{false, true} {
		runewidth.DefaultCondition.EastAsianWidth = eastAsian
		for _, tc := range cases {
			if got := f.Line(tc.line); got != tc.want {
				t.Fatalf("eastAsian=%v: Line(%q) = %q, want %q", eastAsian, tc.line, got, tc.want)
			}
		}
	}
}

func TestRenderOpcodeInFirstColumn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Columns = Columns{Opcode: 1, Operand: 7, Comment: 17}
	f := New(cfg)

	cases := []struct {
		line string
		want string
	}{
		{"    rts", "rts"},
		{"    lda #1", "lda   #1"},
		{"    ; note", spaces(16) + "; note"},
	}
	for _, tc := range cases {
		if got := f.Line(tc.line); got != tc.want {
			t.Fatalf("Line(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}
