package sentiment

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "GREAT Video", "great video"},
		{"strips urls", "check https://example.com/x?y=1 out", "check out"},
		{"strips www urls", "go to www.example.com now", "go to now"},
		{"strips html tags", "so <b>bold</b> of you", "so bold of you"},
		{"strips punctuation", "wow!!! really?", "wow really"},
		{"strips digits", "top 10 moments of 2023", "top moments of"},
		{"collapses whitespace", "a \t b\n\nc", "a b c"},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only noise", "123 !!! <br> https://x.io", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Normalize(c.input); got != c.want {
				t.Errorf("Normalize(%q) = %q, want %q", c.input, got, c.want)
			}
		})
	}
}

func TestNormalizeTotality(t *testing.T) {
	for _, input := range []any{nil, 42, 3.14, []byte("bytes"), map[string]int{}} {
		if got := Normalize(input); got != "" {
			t.Errorf("Normalize(%v) = %q, want empty string", input, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"This is GREAT!!! https://youtu.be/abc123",
		"<p>nested <b>tags</b></p> and 42 numbers",
		"already clean text",
		"",
	}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}
