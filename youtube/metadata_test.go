package youtube

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	yt "github.com/kkdai/youtube/v2"
)

func TestNewVideoMetadata(t *testing.T) {
	video := &yt.Video{
		ID:          "dQw4w9WgXcQ",
		Title:       "<b>Some</b> Title",
		Author:      "Some Channel",
		ChannelID:   "UC123",
		Duration:    3*time.Minute + 33*time.Second,
		Views:       1000,
		PublishDate: time.Date(2009, 10, 25, 0, 0, 0, 0, time.UTC),
		Description: "desc",
	}
	format := &yt.Format{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2, Bitrate: 128000}

	meta := newVideoMetadata(video, format, nil)
	if meta.Title != "Some Title" {
		t.Errorf("title: %s", meta.Title)
	}
	if meta.DurationSeconds != 213 {
		t.Errorf("duration: %d", meta.DurationSeconds)
	}
	if meta.PublishDate != "2009-10-25" {
		t.Errorf("publish_date: %s", meta.PublishDate)
	}
	if meta.SourceURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("source_url: %s", meta.SourceURL)
	}
	if len(meta.Formats) != 1 || meta.Formats[0].Ext != "m4a" {
		t.Errorf("formats: %+v", meta.Formats)
	}
}

func TestWriteSidecar(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "Channel - Title.mp4")

	meta := &VideoMetadata{ID: "dQw4w9WgXcQ", Title: "Title", Channel: "Channel"}
	if err := writeSidecar(mediaPath, meta); err != nil {
		t.Fatal(err)
	}

	buf, err := os.ReadFile(filepath.Join(dir, "Channel - Title.info.json"))
	if err != nil {
		t.Fatal(err)
	}

	var got VideoMetadata
	if err := json.Unmarshal(buf, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != meta.ID || got.Title != meta.Title || got.Channel != meta.Channel {
		t.Errorf("got %+v", got)
	}
}
