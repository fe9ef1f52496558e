package youtube

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

var downloadVideoCmd = &cli.Command{
	Name:  "video",
	Usage: "Download a single video with merged audio",
	Arguments: []cli.Argument{
		&cli.StringArg{Name: "url", Config: cli.StringConfig{TrimSpace: true}},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.yml",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
		},
		&cli.StringFlag{
			Name:  "ffmpeg",
			Value: "ffmpeg" + defaultExecutableFileExtension(),
		},
		&cli.StringFlag{
			Name:    "quality",
			Aliases: []string{"q"},
			Value:   "best",
			Usage:   "best, worst or a target height like 1080p",
		},
		&cli.BoolFlag{
			Name:  "video-only",
			Usage: "Download the video stream without audio",
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Download even when the video is already in the history",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		raw := command.StringArg("url")
		if raw == "" {
			return errors.New("url is required")
		}

		d, err := downloaderFromCliCommand(command)
		if err != nil {
			return err
		}

		video, err := d.GetVideo(ctx, raw)
		if err != nil {
			return err
		}

		return d.Download(ctx, video, DownloadOptions{
			Quality:   command.String("quality"),
			VideoOnly: command.Bool("video-only"),
			Force:     command.Bool("force"),
		})
	},
}
