package content

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatCollapsesWhitespace(t *testing.T) {
	got := Format("строка  с\n\nпереносами\tи   пробелами", 240)
	if got != "строка с переносами и пробелами" {
		t.Fatalf("неожиданный результат: %q", got)
	}
}

func TestFormatMultilineTemplateBecomesOneLine(t *testing.T) {
	got := Format("☀️ Morning motivation\n\n💡 tip:\n• Start small\n\n#DevLife", 240)
	if strings.ContainsAny(got, "\n\t") {
		t.Fatalf("перенос строки пережил форматирование: %q", got)
	}
}

func TestFormatSpacesHashtags(t *testing.T) {
	cases := map[string]string{
		"go#Dev":        "go #Dev",
		"go #Dev":       "go #Dev",
		"a&#39;b":       "a&#39;b",
		"#Lead rest":    "#Lead rest",
		"x##y":          "x # #y",
		"tip#Go #Cloud": "tip #Go #Cloud",
	}
	for in, want := range cases {
		if got := Format(in, 240); got != want {
			t.Fatalf("Format(%q) = %q, ожидали %q", in, got, want)
		}
	}
}

func TestFormatLengthBound(t *testing.T) {
	inputs := []string{
		strings.Repeat("слово ", 100),
		strings.Repeat("x", 500),
		strings.Repeat("#Tag", 120),
		"короткий",
	}
	const maxLen = 240
	for _, in := range inputs {
		got := Format(in, maxLen)
		if utf8.RuneCountInString(got) > maxLen {
			t.Fatalf("длина %d превышает предел %d: %q", utf8.RuneCountInString(got), maxLen, got)
		}
	}
}

func TestFormatTruncatesWithEllipsis(t *testing.T) {
	in := strings.Repeat("a", 300)
	got := Format(in, 240)
	if utf8.RuneCountInString(got) != 240 {
		t.Fatalf("ожидали ровно 240 рун, получили %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("ожидали многоточие в конце: %q", got)
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"строка  с\nпереносами #Dev",
		"go#Dev и ещё#Cloud",
		strings.Repeat("длинный текст #Tag ", 30),
		"a&#39;b #Ok",
		"",
	}
	for _, in := range inputs {
		once := Format(in, 240)
		twice := Format(once, 240)
		if once != twice {
			t.Fatalf("формат не идемпотентен для %q: %q != %q", in, once, twice)
		}
	}
}
