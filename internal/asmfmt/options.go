package asmfmt

import (
	"fmt"
	"strings"
)

// Case selects how a field's letters are folded.
type Case uint8

const (
	CaseUnchanged Case = iota // keep as written
	CaseLower                 // fold to lower case
	CaseUpper                 // fold to upper case
)

// String returns the string representation of Case.
func (c Case) String() string {
	switch c {
	case CaseUnchanged:
		return "unchanged"
	case CaseLower:
		return "lower"
	case CaseUpper:
		return "upper"
	default:
		return "unknown"
	}
}

// ParseCase converts a string to a Case.
func ParseCase(s string) (Case, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unchanged", "keep":
		return CaseUnchanged, nil
	case "lower":
		return CaseLower, nil
	case "upper":
		return CaseUpper, nil
	default:
		return CaseUnchanged, fmt.Errorf("invalid case: %q (expected: lower|upper|unchanged)", s)
	}
}

// Colon controls the trailing colon on labels.
type Colon uint8

const (
	ColonAdd Colon = iota
	ColonRemove
)

// String returns the string representation of Colon.
func (c Colon) String() string {
	switch c {
	case ColonAdd:
		return "add"
	case ColonRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ParseColon converts a string to a Colon.
func ParseColon(s string) (Colon, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "add":
		return ColonAdd, nil
	case "remove":
		return ColonRemove, nil
	default:
		return ColonAdd, fmt.Errorf("invalid colon mode: %q (expected: add|remove)", s)
	}
}

// Separator chooses how the operand is placed after the opcode.
type Separator uint8

const (
	// SeparatorAligned starts the operand at Columns.Operand.
	SeparatorAligned Separator = iota
	// SeparatorSpace puts a single space between opcode and operand.
	SeparatorSpace
)

// String returns the string representation of Separator.
func (s Separator) String() string {
	switch s {
	case SeparatorAligned:
		return "aligned"
	case SeparatorSpace:
		return "space"
	default:
		return "unknown"
	}
}

// ParseSeparator converts a string to a Separator.
func ParseSeparator(s string) (Separator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "aligned", "column":
		return SeparatorAligned, nil
	case "space", "single":
		return SeparatorSpace, nil
	default:
		return SeparatorAligned, fmt.Errorf("invalid operand separator: %q (expected: aligned|space)", s)
	}
}

// Columns holds 1-based column positions of the opcode, operand and comment fields.
type Columns struct {
	Opcode  int
	Operand int
	Comment int
}

// DefaultColumns are the positions used when nothing else is configured.
var DefaultColumns = Columns{Opcode: 12, Operand: 18, Comment: 28}

// Validate reports whether the columns are strictly increasing and leave
// room for indentation before the opcode. The formatter itself accepts any
// values; callers validate user input.
func (c Columns) Validate() error {
	if c.Opcode < 2 {
		return fmt.Errorf("opcode column must be at least 2, got %d", c.Opcode)
	}
	if c.Operand <= c.Opcode || c.Comment <= c.Operand {
		return fmt.Errorf("columns must increase: opcode %d < operand %d < comment %d", c.Opcode, c.Operand, c.Comment)
	}
	return nil
}

// Config is the full set of formatting options. It is never modified by
// the formatter.
type Config struct {
	LabelCase   Case
	LabelColon  Colon
	OpcodeCase  Case // also applies to operands
	CommentCase Case

	OperandSeparator Separator

	// ForceFieldSeparator keeps at least one space after the label and
	// after the opcode/operand segment even when they overrun their column.
	ForceFieldSeparator bool
	// SpaceAfterCommentDelimiter inserts a space after the delimiter of
	// full-line comments.
	SpaceAfterCommentDelimiter bool
	// OriginIsLabel treats a leading '*' as the origin label instead of a
	// comment.
	OriginIsLabel bool

	Columns Columns

	// TextDirectives lists opcodes whose operand is literal text and keeps
	// its case. Matched case-insensitively.
	TextDirectives []string

	Verbose bool
}

// DefaultTextDirectives is the case-fold exemption list used by DefaultConfig.
var DefaultTextDirectives = []string{".text"}

// DefaultConfig returns the defaults of the command-line tool: spacing only,
// no case changes.
func DefaultConfig() Config {
	return Config{
		LabelCase:                  CaseUnchanged,
		LabelColon:                 ColonAdd,
		OpcodeCase:                 CaseUnchanged,
		CommentCase:                CaseUnchanged,
		OperandSeparator:           SeparatorAligned,
		ForceFieldSeparator:        true,
		SpaceAfterCommentDelimiter: true,
		OriginIsLabel:              true,
		Columns:                    DefaultColumns,
		TextDirectives:             append([]string(nil), DefaultTextDirectives...),
	}
}

func (c Config) isTextDirective(opcode string) bool {
	for _, d := range c.TextDirectives {
		if strings.EqualFold(d, opcode) {
			return true
		}
	}
	return false
}
