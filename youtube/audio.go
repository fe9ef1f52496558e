package youtube

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

var downloadAudioCmd = &cli.Command{
	Name:  "audio",
	Usage: "Download the audio track and transcode it to MP3",
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
			Name:  "bitrate",
			Usage: "MP3 bitrate, for example 320k",
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
		if command.IsSet("bitrate") {
			d.config.AudioBitrate = command.String("bitrate")
		}

		video, err := d.GetVideo(ctx, raw)
		if err != nil {
			return err
		}

		return d.DownloadAudio(ctx, video, DownloadOptions{
			Force: command.Bool("force"),
		})
	},
}
