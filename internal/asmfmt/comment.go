package asmfmt

import "strings"

// Comment is a trailing comment found on an instruction line.
type Comment struct {
	Text   string // delimiter, one space, body
	Offset int    // byte offset of the delimiter in the line
}

// FindInlineComment looks for the first space followed by the comment
// delimiter. A delimiter glued to the previous token (LDA #";") is not a
// comment. The returned text has exactly one space between the delimiter
// run and the body, and no trailing whitespace. Case is left untouched.
func FindInlineComment(line string) (Comment, bool) {
	idx := strings.Index(line, " ;")
	if idx < 0 {
		return Comment{}, false
	}
	off := idx + 1
	rest := line[off:]

	// ";;" and ";;;" markers stay together.
	delims := len(rest) - len(strings.TrimLeft(rest, ";"))
	body := strings.TrimSpace(rest[delims:])
	text := rest[:delims]
	if body != "" {
		text += " " + body
	}
	return Comment{Text: text, Offset: off}, true
}

func isCommentDelim(b byte) bool {
	return b == commentDelim || b == originChar
}

// formatFullComment handles a line whose first character is the delimiter.
// Trailing blanks are dropped.
func formatFullComment(line string, cfg Config) string {
	line = strings.TrimRight(line, " ")
	if cfg.SpaceAfterCommentDelimiter && len(line) > 1 && line[1] != ' ' && !isCommentDelim(line[1]) {
		line = line[:1] + " " + line[1:]
	}
	return cfg.CommentCase.Fold(line)
}
