package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	yt "github.com/kkdai/youtube/v2"
	"github.com/urfave/cli/v3"
)

// info and formats only talk to the extraction library, no ffmpeg or
// history database involved.

func fetchVideo(ctx context.Context, raw string) (*yt.Video, error) {
	u, err := normalizeVideoURL(raw)
	if err != nil {
		return nil, err
	}
	client := &yt.Client{}
	video, err := client.GetVideoContext(ctx, u)
	if err != nil {
		return nil, wrapFetchError(err, "fetching video metadata")
	}
	return video, nil
}

var infoCmd = &cli.Command{
	Name:  "info",
	Usage: "Print video metadata without downloading",
	Arguments: []cli.Argument{
		&cli.StringArg{Name: "url", Config: cli.StringConfig{TrimSpace: true}},
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print metadata as indented JSON",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		raw := command.StringArg("url")
		if raw == "" {
			return errors.New("url is required")
		}

		video, err := fetchVideo(ctx, raw)
		if err != nil {
			return err
		}

		if command.Bool("json") {
			meta := newVideoMetadata(video)
			for i := range video.Formats {
				meta.Formats = append(meta.Formats, newFormatInfo(&video.Formats[i]))
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(meta)
		}

		duration := int(video.Duration.Seconds())
		description := truncateDescription(video.Description, 200)

		fmt.Printf("Title:    %s\n", getInnerText(video.Title))
		fmt.Printf("Channel:  %s\n", video.Author)
		fmt.Printf("Duration: %d:%02d\n", duration/60, duration%60)
		fmt.Printf("Views:    %d\n", video.Views)
		if !video.PublishDate.IsZero() {
			fmt.Printf("Uploaded: %s\n", video.PublishDate.Format("2006-01-02"))
		}
		if description != "" {
			fmt.Printf("Description:\n%s\n", description)
		}
		return nil
	},
}

var formatsCmd = &cli.Command{
	Name:  "formats",
	Usage: "List the available formats of a video",
	Arguments: []cli.Argument{
		&cli.StringArg{Name: "url", Config: cli.StringConfig{TrimSpace: true}},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		raw := command.StringArg("url")
		if raw == "" {
			return errors.New("url is required")
		}

		video, err := fetchVideo(ctx, raw)
		if err != nil {
			return err
		}

		fmt.Printf("Formats for %s (%s)\n", getInnerText(video.Title), video.ID)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "itag\text\tquality\tsize\taudio\tresolution")
		for i := range video.Formats {
			f := &video.Formats[i]
			size := "-"
			if f.ContentLength > 0 {
				size = humanBytes(int64(f.ContentLength))
			}
			audio := "-"
			if f.AudioChannels > 0 {
				audio = fmt.Sprintf("%dch", f.AudioChannels)
			}
			resolution := "-"
			if f.Width > 0 || f.Height > 0 {
				resolution = fmt.Sprintf("%dx%d", f.Width, f.Height)
			}
			quality := f.QualityLabel
			if quality == "" {
				quality = f.Quality
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				f.ItagNo, formatExt(f.MimeType), quality, size, audio, resolution)
		}
		return w.Flush()
	},
}

// truncateDescription cuts on a rune boundary so multi-byte characters
// survive intact.
func truncateDescription(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for n >= unit*div && exp < 3 {
		div *= unit
		exp++
	}
	value := float64(n) / float64(div)
	suffix := []string{"KB", "MB", "GB", "TB"}
	return fmt.Sprintf("%.1f%s", value, suffix[exp])
}
