// Package testkit holds checks shared by tests that format real sources.
package testkit

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"prettyasm/internal/asmfmt"
)

// CheckFormatInvariants verifies out as the formatting of src under cfg:
// 1) one output line per input line, each terminated by '\n'
// 2) no trailing blanks, except on lines echoed unchanged
// 3) unlabelled instructions start exactly at the opcode column
// 4) formatting out again changes nothing
func CheckFormatInvariants(cfg asmfmt.Config, src, out []byte) error {
	srcLines := splitLines(src)
	outLines := splitLines(out)

	// 1) line count and terminators
	if len(srcLines) != len(outLines) {
		return fmt.Errorf("line count changed: %d in, %d out", len(srcLines), len(outLines))
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		return fmt.Errorf("output does not end with a newline")
	}

	for i, line := range outLines {
		raw := strings.ReplaceAll(srcLines[i], "\t", " ")
		class := asmfmt.Classify(raw, cfg)
		if class == asmfmt.Unknown {
			continue
		}
		// 2) trailing blanks
		if strings.TrimRight(line, " \t") != line {
			return fmt.Errorf("line %d: trailing whitespace in %q", i+1, line)
		}
		// 3) opcode column
		if class != asmfmt.Unlabeled {
			continue
		}
		fields := asmfmt.Extract(raw, class, cfg)
		if fields.Opcode == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if indent != cfg.Columns.Opcode-1 {
			return fmt.Errorf("line %d: opcode at column %d, want %d: %q", i+1, indent+1, cfg.Columns.Opcode, line)
		}
	}

	// 4) idempotence
	again := asmfmt.New(cfg).Source(context.Background(), out)
	if !bytes.Equal(again, out) {
		return fmt.Errorf("formatting is not stable:\nfirst:  %q\nsecond: %q", out, again)
	}
	return nil
}

func splitLines(data []byte) []string {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(data) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
