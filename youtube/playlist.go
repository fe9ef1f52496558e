package youtube

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/flytam/filenamify"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var downloadPlaylistCmd = &cli.Command{
	Name:  "playlist",
	Usage: "Download every entry of a playlist into its own directory",
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
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
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

		playlist, err := d.api(ctx).GetPlaylistContext(ctx, raw)
		if err != nil {
			return wrapFetchError(err, "fetching playlist")
		}
		if len(playlist.Videos) == 0 {
			return errors.Newf("playlist %s has no videos", playlist.ID)
		}

		title := getInnerText(playlist.Title)
		if title == "" {
			title = playlist.ID
		}
		subdir, err := filenamify.FilenamifyV2(title)
		if err != nil {
			return err
		}

		zap.L().Info("Downloading playlist", zap.String("title", title),
			zap.Int("videos", len(playlist.Videos)))

		successes := 0
		failures := 0
		for i, entry := range playlist.Videos {
			if entry == nil || entry.ID == "" {
				zap.L().Warn("Skip empty playlist entry", zap.Int("index", i+1))
				continue
			}

			video, err := d.api(ctx).VideoFromPlaylistEntryContext(ctx, entry)
			if err != nil {
				failures++
				zap.L().Error("Fetch playlist entry failed", zap.Int("index", i+1),
					zap.String("id", entry.ID), zap.Error(wrapFetchError(err, "fetching video metadata")))
				continue
			}

			err = d.Download(ctx, video, DownloadOptions{
				Quality:    command.String("quality"),
				Force:      command.Bool("force"),
				Subdir:     subdir,
				PlaylistID: playlist.ID,
			})
			if err != nil {
				failures++
				zap.L().Error("Download failed", zap.Int("index", i+1),
					zap.String("id", entry.ID), zap.Error(err))
				continue
			}
			successes++
		}

		zap.L().Info("Playlist completed", zap.String("title", title),
			zap.Int("ok", successes), zap.Int("failed", failures))
		if successes == 0 && failures > 0 {
			return errors.Newf("no playlist entries downloaded successfully")
		}
		return nil
	},
}
