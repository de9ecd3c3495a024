package asmfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render lays the fields out in columns. Fields that overrun their column
// push the following fields to the right; nothing is truncated.
//
// Unknown lines render as an empty string; callers echo the source line
// instead.
func Render(f Fields, class Class, cfg Config) string {
	switch class {
	case Blank, Unknown:
		return ""
	case FullComment:
		return f.Comment
	}

	cols := cfg.Columns
	label := f.Label
	segment := opcodeSegment(f, cfg)
	if cfg.ForceFieldSeparator {
		if label != "" {
			label += " "
		}
		if segment != "" {
			segment += " "
		}
	}

	var sb strings.Builder
	sb.WriteString(padRight(label, cols.Opcode-1))
	sb.WriteString(padRight(segment, cols.Comment-cols.Opcode))
	sb.WriteString(f.Comment)
	return strings.TrimRight(sb.String(), " ")
}

// opcodeSegment joins opcode and operand.
func opcodeSegment(f Fields, cfg Config) string {
	if f.Operand == "" {
		return f.Opcode
	}
	if cfg.OperandSeparator == SeparatorSpace {
		return f.Opcode + " " + f.Operand
	}
	// Always one space, even when the opcode is wider than its slot.
	width := cfg.Columns.Operand - cfg.Columns.Opcode - 1
	return padRight(f.Opcode, width) + " " + f.Operand
}

// cells measures display width with East Asian ambiguous characters as one
// cell, whatever the locale of the process.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}()

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	return cells.FillRight(s, width)
}
