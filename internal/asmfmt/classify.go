package asmfmt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Class is the kind of a source line.
type Class uint8

const (
	Unknown     Class = iota // none of the rules matched; echoed as-is
	Blank                    // empty or whitespace only
	FullComment              // delimiter in the first column
	Labeled                  // label in the first column
	Unlabeled                // indented instruction or comment
)

// String returns the string representation of Class.
func (c Class) String() string {
	switch c {
	case Blank:
		return "blank"
	case FullComment:
		return "comment"
	case Labeled:
		return "labeled"
	case Unlabeled:
		return "unlabeled"
	default:
		return "unknown"
	}
}

const (
	commentDelim = ';'
	originChar   = '*'
)

// isLocalLabelPrefix reports whether r starts a local label (.loop, $1).
func isLocalLabelPrefix(r rune) bool {
	return r == '.' || r == '$'
}

// Classify tags a line by its first character. The first rule that matches
// wins.
func Classify(line string, cfg Config) Class {
	if strings.TrimSpace(line) == "" {
		return Blank
	}
	first, _ := utf8.DecodeRuneInString(line)
	switch {
	case first == commentDelim, first == originChar && !cfg.OriginIsLabel:
		return FullComment
	case unicode.IsLetter(first), isLocalLabelPrefix(first), first == originChar:
		return Labeled
	case unicode.IsSpace(first):
		return Unlabeled
	default:
		return Unknown
	}
}
