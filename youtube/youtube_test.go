package youtube

import (
	"testing"
)

func TestNormalizeVideoURL(t *testing.T) {
	for _, test := range []struct {
		in  string
		out string
	}{
		{in: "dQw4w9WgXcQ", out: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{in: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", out: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{in: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx0sYbCqOb8TBPRdmBHs5Iftvv9TPboYG", out: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{in: "https://youtu.be/dQw4w9WgXcQ", out: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{in: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", out: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{in: "https://www.youtube.com/shorts/dQw4w9WgXcQ", out: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{in: "https://music.youtube.com/watch?v=dQw4w9WgXcQ", out: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	} {
		got, err := normalizeVideoURL(test.in)
		if err != nil {
			t.Fatalf("%s: %v", test.in, err)
		}
		if got != test.out {
			t.Errorf("%s: got %s", test.in, got)
		}
	}
}

func TestNormalizeVideoURLRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"ftp://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=short",
		"not a url",
	} {
		if _, err := normalizeVideoURL(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestNewFileName(t *testing.T) {
	for _, test := range []struct {
		channel string
		title   string
		suffix  string
		ext     string
		out     string
	}{
		{channel: "Channel", title: "Title", suffix: "", ext: "mp4", out: "Channel - Title.mp4"},
		{channel: "Channel", title: "Title", suffix: "audio", ext: "m4a", out: "Channel - Title_audio.m4a"},
		{channel: "A/B", title: "C:D", suffix: "", ext: "mp3", out: "A!B - C!D.mp3"},
	} {
		got := newFileName(test.channel, test.title, test.suffix, test.ext)
		if got != test.out {
			t.Errorf("got %q, want %q", got, test.out)
		}
	}
}

func TestGetInnerText(t *testing.T) {
	if got := getInnerText(`<em class="keyword">never</em> gonna give`); got != "never gonna give" {
		t.Errorf("got %q", got)
	}
	if got := getInnerText("plain title"); got != "plain title" {
		t.Errorf("got %q", got)
	}
}
