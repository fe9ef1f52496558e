package youtube

import (
	"path/filepath"
	"testing"
)

func TestHistoryGateIsPerMode(t *testing.T) {
	history, err := NewHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}

	err = history.Save(&HistoryEntry{
		VideoID:  "dQw4w9WgXcQ",
		Mode:     "video",
		Channel:  "Some Channel",
		Title:    "Some Title",
		FileName: "Some Channel - Some Title.mp4",
	})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := history.IsDownloaded("dQw4w9WgXcQ", "video")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("video mode should be downloaded")
	}

	// An audio rip of the same video is a different artifact.
	ok, err = history.IsDownloaded("dQw4w9WgXcQ", "audio")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("audio mode should not be downloaded")
	}

	ok, err = history.IsDownloaded("otherVideo0", "video")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown video should not be downloaded")
	}
}

func TestHistorySaveUpserts(t *testing.T) {
	history, err := NewHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}

	entry := &HistoryEntry{VideoID: "dQw4w9WgXcQ", Mode: "video", Title: "First"}
	if err = history.Save(entry); err != nil {
		t.Fatal(err)
	}
	entry.Title = "Second"
	if err = history.Save(entry); err != nil {
		t.Fatal(err)
	}

	entries, err := history.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: %d", len(entries))
	}
	if entries[0].Title != "Second" {
		t.Errorf("title: %s", entries[0].Title)
	}
}
