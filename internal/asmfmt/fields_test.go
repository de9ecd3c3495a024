package asmfmt

import "testing"

func lowerConfig() Config {
	cfg := DefaultConfig()
	cfg.LabelCase = CaseLower
	cfg.OpcodeCase = CaseLower
	return cfg
}

func upperConfig() Config {
	cfg := DefaultConfig()
	cfg.LabelCase = CaseUpper
	cfg.OpcodeCase = CaseUpper
	return cfg
}

func extract(line string, cfg Config) Fields {
	return Extract(line, Classify(line, cfg), cfg)
}

func TestExtractFields(t *testing.T) {
	remove := DefaultConfig()
	remove.LabelColon = ColonRemove

	cases := []struct {
		name string
		line string
		cfg  Config
		want Fields
	}{
		{
			name: "full labeled line",
			line: "MyLabel LDA #$01 ; Load A",
			cfg:  lowerConfig(),
			want: Fields{Label: "mylabel:", Opcode: "lda", Operand: "#$01", Comment: "; Load A"},
		},
		{
			name: "existing colon kept once",
			line: "loop: dex",
			cfg:  DefaultConfig(),
			want: Fields{Label: "loop:", Opcode: "dex"},
		},
		{
			name: "colon removed",
			line: "loop: dex",
			cfg:  remove,
			want: Fields{Label: "loop", Opcode: "dex"},
		},
		{
			name: "equ never gets a colon",
			line: "COUNT EQU 10",
			cfg:  DefaultConfig(),
			want: Fields{Label: "COUNT", Opcode: "EQU", Operand: "10"},
		},
		{
			name: "equals never gets a colon",
			line: "count: = 10",
			cfg:  DefaultConfig(),
			want: Fields{Label: "count", Opcode: "=", Operand: "10"},
		},
		{
			name: "lone label",
			line: "loop",
			cfg:  DefaultConfig(),
			want: Fields{Label: "loop:"},
		},
		{
			name: "label with comment only",
			line: "loop ;top of loop",
			cfg:  DefaultConfig(),
			want: Fields{Label: "loop:", Comment: "; top of loop"},
		},
		{
			name: "unlabeled",
			line: "    STA $D020",
			cfg:  lowerConfig(),
			want: Fields{Opcode: "sta", Operand: "$d020"},
		},
		{
			name: "unlabeled comment only",
			line: "    ; indented",
			cfg:  DefaultConfig(),
			want: Fields{Comment: "; indented"},
		},
		{
			name: "operand tokens joined with single spaces",
			line: "crlf .db  $0D,   $0A, $00",
			cfg:  lowerConfig(),
			want: Fields{Label: "crlf:", Opcode: ".db", Operand: "$0d, $0a, $00"},
		},
		{
			name: "text directive keeps operand case",
			line: "msg .TEXT Hello World",
			cfg:  lowerConfig(),
			want: Fields{Label: "msg:", Opcode: ".text", Operand: "Hello World"},
		},
		{
			name: "double quoted operand keeps case",
			line: `    .byte "Hi", 0`,
			cfg:  upperConfig(),
			want: Fields{Opcode: ".BYTE", Operand: `"Hi", 0`},
		},
		{
			name: "single quoted operand keeps case",
			line: "    cmp 'a'",
			cfg:  upperConfig(),
			want: Fields{Opcode: "CMP", Operand: "'a'"},
		},
		{
			name: "immediate char keeps case",
			line: `    LDA #"x"`,
			cfg:  lowerConfig(),
			want: Fields{Opcode: "lda", Operand: `#"x"`},
		},
		{
			name: "immediate single quote keeps case",
			line: "    LDA #'X'",
			cfg:  lowerConfig(),
			want: Fields{Opcode: "lda", Operand: "#'X'"},
		},
		{
			name: "quoted semicolon is not a comment",
			line: `    LDA #";"`,
			cfg:  DefaultConfig(),
			want: Fields{Opcode: "LDA", Operand: `#";"`},
		},
		{
			name: "origin with glued equals",
			line: "*=$C000",
			cfg:  DefaultConfig(),
			want: Fields{Label: "*", Opcode: "=", Operand: "$C000"},
		},
		{
			name: "origin spaced",
			line: "* = $1000",
			cfg:  DefaultConfig(),
			want: Fields{Label: "*", Opcode: "=", Operand: "$1000"},
		},
		{
			name: "origin with equals glued to the value",
			line: "* =$C000",
			cfg:  DefaultConfig(),
			want: Fields{Label: "*", Opcode: "=", Operand: "$C000"},
		},
		{
			name: "semicolon after a non-ASCII space stays in the operand",
			line: "    nop\u2003;keep me",
			cfg:  DefaultConfig(),
			want: Fields{Opcode: "nop", Operand: ";keep me"},
		},
		{
			name: "origin followed by directive",
			line: "* org $0800",
			cfg:  DefaultConfig(),
			want: Fields{Label: "*:", Opcode: "org", Operand: "$0800"},
		},
		{
			name: "comment case folded",
			line: "    nop ; Wait",
			cfg:  Config{CommentCase: CaseUpper, Columns: DefaultColumns},
			want: Fields{Opcode: "nop", Comment: "; WAIT"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extract(tc.line, tc.cfg); got != tc.want {
				t.Fatalf("Extract(%q)\n got  %+v\n want %+v", tc.line, got, tc.want)
			}
		})
	}
}

func TestExtractNonInstructionLines(t *testing.T) {
	cfg := DefaultConfig()
	if got := Extract("", Blank, cfg); got != (Fields{}) {
		t.Fatalf("blank line produced fields: %+v", got)
	}
	if got := Extract("123 xyz", Unknown, cfg); got != (Fields{}) {
		t.Fatalf("unknown line produced fields: %+v", got)
	}
	got := Extract(";note", FullComment, cfg)
	if got != (Fields{Comment: "; note"}) {
		t.Fatalf("full comment fields = %+v", got)
	}
}

func TestTextDirectivesConfigurable(t *testing.T) {
	cfg := lowerConfig()
	cfg.TextDirectives = []string{".ASCII", ".text"}

	got := extract("    .ascii MixedCase", cfg)
	if got.Operand != "MixedCase" {
		t.Fatalf(".ascii operand = %q, want case preserved", got.Operand)
	}

	cfg.TextDirectives = nil
	got = extract("    .text MixedCase", cfg)
	if got.Operand != "mixedcase" {
		t.Fatalf("without exemptions operand = %q, want folded", got.Operand)
	}
}

func TestEquateLabelsNeverGetColon(t *testing.T) {
	lines := []string{"a equ 1", "B EQU 2", "c: Equ 3", "d = 4", "e: = 5", "SIZE equ $20 ; bytes"}
	for _, colon := range []Colon{ColonAdd, ColonRemove} {
		cfg := DefaultConfig()
		cfg.LabelColon = colon
		for _, line := range lines {
			f := extract(line, cfg)
			if f.Label == "" || f.Label[len(f.Label)-1] == ':' {
				t.Fatalf("colon=%s: label of %q = %q", colon, line, f.Label)
			}
		}
	}
}
