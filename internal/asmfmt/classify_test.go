package asmfmt

import "testing"

func TestClassify(t *testing.T) {
	origin := DefaultConfig()
	comment := DefaultConfig()
	comment.OriginIsLabel = false

	cases := []struct {
		name string
		line string
		cfg  Config
		want Class
	}{
		{"empty", "", origin, Blank},
		{"spaces", "    ", origin, Blank},
		{"mixed whitespace", " \t \t", origin, Blank},
		{"semicolon", "; header", origin, FullComment},
		{"star as comment", "* old style", comment, FullComment},
		{"star as origin", "*=$C000", origin, Labeled},
		{"label", "start lda #1", origin, Labeled},
		{"upper label", "START LDA #1", origin, Labeled},
		{"dot local", ".loop dex", origin, Labeled},
		{"dollar local", "$1 bne $1", origin, Labeled},
		{"indented", "    rts", origin, Unlabeled},
		{"indented comment", "   ; note", origin, Unlabeled},
		{"digit", "1234 junk", origin, Unknown},
		{"underscore", "_start nop", origin, Unknown},
		{"punctuation", "#include foo", origin, Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.line, tc.cfg); got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.line, got, tc.want)
			}
			// Pure: a second call gives the same answer.
			if again := Classify(tc.line, tc.cfg); again != tc.want {
				t.Fatalf("Classify(%q) not stable: %s then %s", tc.line, tc.want, again)
			}
		})
	}
}
