package youtube

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHumanBytes(t *testing.T) {
	for _, test := range []struct {
		n   int64
		out string
	}{
		{n: 500, out: "500B"},
		{n: 1536, out: "1.5KB"},
		{n: 1 << 20, out: "1.0MB"},
		{n: 1 << 30, out: "1.0GB"},
		{n: 1 << 40, out: "1.0TB"},
		{n: 1 << 50, out: "1024.0TB"},
	} {
		if got := humanBytes(test.n); got != test.out {
			t.Errorf("%d: got %s, want %s", test.n, got, test.out)
		}
	}
}

func TestTruncateDescription(t *testing.T) {
	if got := truncateDescription("short", 200); got != "short" {
		t.Errorf("got %q", got)
	}

	long := strings.Repeat("é", 300)
	got := truncateDescription(long, 200)
	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid utf-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 203 {
		t.Errorf("rune count: %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("got %q", got)
	}

	// Over the byte budget but within the rune budget stays whole.
	multibyte := strings.Repeat("é", 150)
	if got := truncateDescription(multibyte, 200); got != multibyte {
		t.Errorf("got %q", got)
	}
}
