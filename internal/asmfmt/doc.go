// Package asmfmt reformats 8-bit assembly source into a columnar layout.
//
// Each line is handled on its own, in four steps:
//
//	Classify -> Extract -> (FindInlineComment) -> Render
//
// Classify tags the line as blank, full-line comment, labeled, unlabeled or
// unknown. Extract pulls the label, opcode, operand and trailing comment out
// of the line and applies case folding. Render pads the fields to the
// configured columns.
//
// Nothing here performs IO or returns errors: any input string produces a
// best-effort output line. Formatter wraps the steps for whole files and
// emits per-line trace events when Config.Verbose is set.
package asmfmt
