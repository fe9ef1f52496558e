package youtube

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	yt "github.com/kkdai/youtube/v2"
)

// Adaptive formats arrive as one flat list. Video-only streams have
// dimensions but no audio channels, audio-only streams the opposite,
// progressive streams have both.

func isVideoOnly(f *yt.Format) bool {
	return f.Width > 0 && f.Height > 0 && f.AudioChannels == 0
}

func isAudioOnly(f *yt.Format) bool {
	return f.AudioChannels > 0 && f.Width == 0 && f.Height == 0
}

func isProgressive(f *yt.Format) bool {
	return f.Width > 0 && f.Height > 0 && f.AudioChannels > 0
}

func bitrateOf(f *yt.Format) int {
	if f.AverageBitrate > 0 {
		return f.AverageBitrate
	}
	return f.Bitrate
}

// parseQuality understands "best", "worst", "1080p" and "1080".
// target==0 means no height cap.
func parseQuality(q string) (target int, worst bool, err error) {
	switch strings.ToLower(strings.TrimSpace(q)) {
	case "", "best":
		return 0, false, nil
	case "worst":
		return 0, true, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(q), "p"))
	if err != nil || n <= 0 {
		return 0, false, errors.Newf("invalid quality: %s", q)
	}
	return n, false, nil
}

// preferContainer breaks quality ties in favor of mp4/m4a streams, which
// merge into an MP4 container without transcoding.
func preferContainer(f *yt.Format) bool {
	return strings.Contains(f.MimeType, "mp4") || strings.Contains(f.MimeType, "m4a")
}

func betterVideo(candidate, current *yt.Format) bool {
	if candidate.Height != current.Height {
		return candidate.Height > current.Height
	}
	if preferContainer(candidate) != preferContainer(current) {
		return preferContainer(candidate)
	}
	return bitrateOf(candidate) > bitrateOf(current)
}

func selectVideoFormat(formats []yt.Format, quality string, maxSize int64) (*yt.Format, error) {
	target, worst, err := parseQuality(quality)
	if err != nil {
		return nil, err
	}

	candidates := filterFormats(formats, isVideoOnly, maxSize)
	if len(candidates) == 0 {
		return nil, nil
	}

	if worst {
		best := candidates[0]
		for _, f := range candidates[1:] {
			if f.Height < best.Height {
				best = f
			} else if f.Height == best.Height && preferContainer(f) && !preferContainer(best) {
				best = f
			}
		}
		return best, nil
	}

	if target > 0 {
		var best *yt.Format
		for _, f := range candidates {
			if f.Height > target {
				continue
			}
			if best == nil || betterVideo(f, best) {
				best = f
			}
		}
		if best != nil {
			return best, nil
		}
		// Nothing at or under the target, take the smallest above it.
		for _, f := range candidates {
			if best == nil || f.Height < best.Height {
				best = f
			}
		}
		return best, nil
	}

	best := candidates[0]
	for _, f := range candidates[1:] {
		if betterVideo(f, best) {
			best = f
		}
	}
	return best, nil
}

func selectAudioFormat(formats []yt.Format, maxSize int64) *yt.Format {
	candidates := filterFormats(formats, isAudioOnly, maxSize)
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, f := range candidates[1:] {
		if bitrateOf(f) != bitrateOf(best) {
			if bitrateOf(f) > bitrateOf(best) {
				best = f
			}
			continue
		}
		if preferContainer(f) && !preferContainer(best) {
			best = f
		}
	}
	return best
}

func selectProgressiveFormat(formats []yt.Format, quality string, maxSize int64) (*yt.Format, error) {
	target, worst, err := parseQuality(quality)
	if err != nil {
		return nil, err
	}

	candidates := filterFormats(formats, isProgressive, maxSize)
	if len(candidates) == 0 {
		return nil, nil
	}

	if worst {
		best := candidates[0]
		for _, f := range candidates[1:] {
			if f.Height < best.Height {
				best = f
			} else if f.Height == best.Height && preferContainer(f) && !preferContainer(best) {
				best = f
			}
		}
		return best, nil
	}

	if target > 0 {
		var best *yt.Format
		for _, f := range candidates {
			if f.Height > target {
				continue
			}
			if best == nil || betterVideo(f, best) {
				best = f
			}
		}
		if best != nil {
			return best, nil
		}
		// Nothing at or under the target, take the smallest above it.
		for _, f := range candidates {
			if best == nil || f.Height < best.Height {
				best = f
			}
		}
		return best, nil
	}

	best := candidates[0]
	for _, f := range candidates[1:] {
		if betterVideo(f, best) {
			best = f
		}
	}
	return best, nil
}

func filterFormats(formats []yt.Format, keep func(*yt.Format) bool, maxSize int64) []*yt.Format {
	candidates := make([]*yt.Format, 0, len(formats))
	for i := range formats {
		f := &formats[i]
		if !keep(f) {
			continue
		}
		if maxSize > 0 && int64(f.ContentLength) > maxSize {
			continue
		}
		candidates = append(candidates, f)
	}
	return candidates
}

func formatExt(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	parts := strings.Split(mimeType, "/")
	if len(parts) != 2 {
		return "bin"
	}
	switch parts[1] {
	case "3gpp":
		return "3gp"
	case "mp4":
		if parts[0] == "audio" {
			return "m4a"
		}
		return "mp4"
	default:
		return parts[1]
	}
}
