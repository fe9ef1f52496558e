package youtube

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	yt "github.com/kkdai/youtube/v2"
)

type FormatInfo struct {
	Itag         int    `json:"itag"`
	MimeType     string `json:"mime_type"`
	Quality      string `json:"quality"`
	QualityLabel string `json:"quality_label,omitempty"`
	Bitrate      int    `json:"bitrate"`
	AudioQuality string `json:"audio_quality,omitempty"`
	Channels     int    `json:"audio_channels,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Size         int64  `json:"content_length,omitempty"`
	Ext          string `json:"ext"`
}

type VideoMetadata struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Channel         string       `json:"channel"`
	ChannelID       string       `json:"channel_id,omitempty"`
	DurationSeconds int          `json:"duration_seconds"`
	Views           int          `json:"views"`
	PublishDate     string       `json:"publish_date,omitempty"`
	Description     string       `json:"description,omitempty"`
	SourceURL       string       `json:"source_url"`
	Formats         []FormatInfo `json:"formats,omitempty"`
}

func newFormatInfo(f *yt.Format) FormatInfo {
	return FormatInfo{
		Itag:         f.ItagNo,
		MimeType:     f.MimeType,
		Quality:      f.Quality,
		QualityLabel: f.QualityLabel,
		Bitrate:      bitrateOf(f),
		AudioQuality: f.AudioQuality,
		Channels:     f.AudioChannels,
		Width:        f.Width,
		Height:       f.Height,
		Size:         int64(f.ContentLength),
		Ext:          formatExt(f.MimeType),
	}
}

func newVideoMetadata(video *yt.Video, formats ...*yt.Format) *VideoMetadata {
	meta := &VideoMetadata{
		ID:              video.ID,
		Title:           getInnerText(video.Title),
		Channel:         video.Author,
		ChannelID:       video.ChannelID,
		DurationSeconds: int(video.Duration.Seconds()),
		Views:           video.Views,
		Description:     video.Description,
		SourceURL:       watchURL(video.ID),
	}
	if !video.PublishDate.IsZero() {
		meta.PublishDate = video.PublishDate.Format("2006-01-02")
	}
	for _, f := range formats {
		if f == nil {
			continue
		}
		meta.Formats = append(meta.Formats, newFormatInfo(f))
	}
	return meta
}

// writeSidecar puts "<media file base>.info.json" next to the media file.
func writeSidecar(mediaPath string, meta *VideoMetadata) error {
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	buf, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(base+".info.json", buf, 0644)
}
