package textclean

import "testing"

func TestClean_TagConversion(t *testing.T) {
	got := Clean("<b>hi</b> <i>there</i> <u>x</u>")
	want := "**hi** *there* _x_"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_TagAliases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strong", "<strong>loud</strong>", "**loud**"},
		{"em", "<em>soft</em>", "*soft*"},
		{"case insensitive", "<B>hi</B>", "**hi**"},
		{"whitespace in tags", "< b >hi< / b >", "**hi**"},
		{"non-greedy", "<b>a</b> and <b>b</b>", "**a** and **b**"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_StripsUnknownTags(t *testing.T) {
	if got := Clean("<div>a</div>"); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}
	if got := Clean(`<img src="x.png"/>ok<br>`); got != "ok" {
		t.Errorf("expected %q, got %q", "ok", got)
	}
}

func TestClean_LoneAngleBracketSurvives(t *testing.T) {
	// A bare < with no closing > is not a tag and must pass through.
	if got := Clean("5 < 7"); got != "5 < 7" {
		t.Errorf("expected %q, got %q", "5 < 7", got)
	}
}

func TestClean_NestedTagsCapturedLiterally(t *testing.T) {
	// The bold match is non-greedy and not nested-aware: the inner tag is
	// captured as content and only stripped by the generic pass.
	got := Clean("<b><i>x</i></b>")
	want := "***x***"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_ControlCharsStrippedWhitespaceKept(t *testing.T) {
	got := Clean("a\tb\nc\x00d")
	want := "a\tb\ncd"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_NFCNormalization(t *testing.T) {
	// e + combining acute accent composes to a single rune.
	got := Clean("café")
	want := "café"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"**already bold** with *italics*",
		"café naïve",
		"tabs\tand\nnewlines\r",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent on %q: %q != %q", in, once, twice)
		}
	}
}

func TestClean_EmptyString(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestCleaner_FullHTML(t *testing.T) {
	c := Cleaner{FullHTML: true}
	got := c.Clean("<strong>hi</strong>")
	if got != "**hi**" {
		t.Errorf("expected %q, got %q", "**hi**", got)
	}
}
