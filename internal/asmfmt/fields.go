package asmfmt

import "strings"

// Fields are the parts of one source line. An empty string means the field
// is absent.
type Fields struct {
	Label   string
	Opcode  string
	Operand string
	Comment string
}

// Extract splits a classified line into fields and applies case folding.
// Tabs must already be replaced by spaces. The operand ends where the inline
// comment starts, so no text is lost. Blank and Unknown lines yield no
// fields; full-line comments only fill Comment.
func Extract(line string, class Class, cfg Config) Fields {
	switch class {
	case FullComment:
		return Fields{Comment: formatFullComment(line, cfg)}
	case Labeled, Unlabeled:
	default:
		return Fields{}
	}

	code := line
	comment, hasComment := FindInlineComment(line)
	if hasComment {
		code = line[:comment.Offset]
	}

	toks := tokenize(code, class, cfg)
	var f Fields

	opIndex := 0
	if class == Labeled {
		f.Label = extractLabel(toks, cfg)
		opIndex = 1
	}

	if opIndex < len(toks) {
		opcode := toks[opIndex]
		f.Opcode = cfg.OpcodeCase.Fold(opcode)
		f.Operand = extractOperand(toks[opIndex+1:], cfg.isTextDirective(opcode), cfg)
	}

	if hasComment {
		f.Comment = cfg.CommentCase.Fold(comment.Text)
	}
	return f
}

// tokenize splits the line on whitespace. With the origin option a leading
// '*' is always its own token, and so is an '=' glued to the value after it
// ("*=$C000", "* =$C000").
func tokenize(line string, class Class, cfg Config) []string {
	toks := strings.Fields(line)
	if class != Labeled || !cfg.OriginIsLabel || len(toks) == 0 || toks[0][0] != originChar {
		return toks
	}

	head := toks[0]
	split := make([]string, 0, len(toks)+2)
	rest := toks[1:]
	if strings.TrimSuffix(head, ":") == "*" {
		split = append(split, head)
	} else {
		split = append(split, "*")
		rest = append([]string{head[1:]}, rest...)
	}
	if len(rest) > 0 && len(rest[0]) > 1 && rest[0][0] == '=' {
		split = append(split, "=", rest[0][1:])
		rest = rest[1:]
	}
	return append(split, rest...)
}

func isEquate(tok string) bool {
	tok = strings.ToLower(tok)
	return tok == "equ" || tok == "="
}

func extractLabel(toks []string, cfg Config) string {
	if len(toks) == 0 {
		return ""
	}
	label := strings.TrimSuffix(toks[0], ":")
	label = cfg.LabelCase.Fold(label)

	equate := len(toks) > 1 && isEquate(toks[1])
	if cfg.LabelColon == ColonAdd && !equate {
		label += ":"
	}
	return label
}

// extractOperand joins the tokens after the opcode. Quoted literals and
// text directives keep their case.
func extractOperand(toks []string, preserve bool, cfg Config) string {
	if len(toks) == 0 {
		return ""
	}
	operand := strings.Join(toks, " ")
	if preserve || isQuotedLiteral(toks[0]) {
		return operand
	}
	return cfg.OpcodeCase.Fold(operand)
}

// isQuotedLiteral matches "..." '...' #"..." #'...'.
func isQuotedLiteral(tok string) bool {
	tok = strings.TrimPrefix(tok, "#")
	return strings.HasPrefix(tok, `"`) || strings.HasPrefix(tok, "'")
}
