package youtube

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"moul.io/zapgorm2"
)

type History struct {
	db *gorm.DB
}

// Keyed by video and mode so an audio rip of an already-archived video is
// not mistaken for a duplicate.
type HistoryEntry struct {
	VideoID    string    `gorm:"primaryKey" json:"video_id"`
	Mode       string    `gorm:"primaryKey" json:"mode"`
	Channel    string    `json:"channel"`
	Title      string    `json:"title"`
	PlaylistID string    `json:"playlist_id"`
	FileName   string    `json:"file_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewHistory(dsn string) (*History, error) {
	log := zapgorm2.New(zap.L())
	log.IgnoreRecordNotFoundError = true
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&HistoryEntry{})
	if err != nil {
		return nil, err
	}

	return &History{db: db}, nil
}

func (h *History) Save(entry *HistoryEntry) error {
	return h.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(entry).Error
}

func (h *History) IsDownloaded(videoID string, mode string) (ok bool, err error) {
	var entry HistoryEntry
	err = h.db.First(&entry, "video_id = ? AND mode = ?", videoID, mode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
	} else {
		ok = true
	}
	return
}

func (h *History) All() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := h.db.Order("created_at").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
