package youtube

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestExportHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	entries := []HistoryEntry{
		{
			VideoID:   "dQw4w9WgXcQ",
			Channel:   "Some Channel",
			Title:     "Some Title",
			Mode:      "video",
			FileName:  "Some Channel - Some Title.mp4",
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}

	if err := exportHistory(entries, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("History", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "dQw4w9WgXcQ" {
		t.Errorf("A2: %s", got)
	}

	got, err = f.GetCellValue("History", "C2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Some Title" {
		t.Errorf("C2: %s", got)
	}
}
