package youtube

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	yt "github.com/kkdai/youtube/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type downloader struct {
	ffmpeg      FFmpeg
	outputPath  string
	client      *yt.Client
	stream      *resty.Client
	config      *Config
	history     *History
	rateLimiter *rate.Limiter
}

func downloaderFromCliCommand(command *cli.Command) (*downloader, error) {
	config, err := LoadConfig(command.String("config"))
	if err != nil {
		return nil, err
	}
	if command.IsSet("output") {
		config.Output = command.String("output")
	}
	if command.IsSet("ffmpeg") {
		config.FFmpeg = command.String("ffmpeg")
	}
	return newDownloader(config)
}

func newDownloader(config *Config) (*downloader, error) {
	d := &downloader{config: config}

	ffmpegPath := config.FFmpeg
	if _, err := os.Stat(ffmpegPath); err != nil {
		ffmpegPath, err = exec.LookPath(config.FFmpeg)
		if err != nil {
			return nil, errors.Wrap(err, "ffmpeg not exist, please install ffmpeg first")
		}
	}
	d.ffmpeg = FFmpeg{Path: ffmpegPath}

	outputPath := config.Output
	_, err := os.Stat(outputPath)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(outputPath, 0755)
		if err != nil {
			return nil, err
		}
	}
	d.outputPath = outputPath

	history, err := NewHistory(config.HistoryDB)
	if err != nil {
		return nil, err
	}
	d.history = history

	d.client = &yt.Client{}
	d.stream = newStreamClient()
	d.rateLimiter = rate.NewLimiter(rate.Every(time.Second), 1)
	return d, nil
}

// api rate-limits the innertube calls, playlists would hammer the endpoint
// otherwise.
func (d *downloader) api(ctx context.Context) *yt.Client {
	_ = d.rateLimiter.Wait(ctx)
	return d.client
}

func (d *downloader) GetVideo(ctx context.Context, raw string) (*yt.Video, error) {
	u, err := normalizeVideoURL(raw)
	if err != nil {
		return nil, err
	}
	video, err := d.api(ctx).GetVideoContext(ctx, u)
	if err != nil {
		return nil, wrapFetchError(err, "fetching video metadata")
	}
	return video, nil
}

func wrapFetchError(err error, msg string) error {
	switch {
	case errors.Is(err, yt.ErrVideoPrivate),
		errors.Is(err, yt.ErrLoginRequired),
		errors.Is(err, yt.ErrNotPlayableInEmbed):
		return errors.Wrap(err, msg+": restricted content")
	case errors.Is(err, yt.ErrInvalidPlaylist),
		errors.Is(err, yt.ErrInvalidCharactersInVideoID),
		errors.Is(err, yt.ErrVideoIDMinLength):
		return errors.Wrap(err, msg+": invalid url or id")
	}

	var statusErr *yt.ErrPlayabiltyStatus
	if errors.As(err, &statusErr) {
		return errors.Wrap(err, msg+": not playable")
	}
	return errors.Wrap(err, msg)
}

type DownloadOptions struct {
	Quality    string
	VideoOnly  bool
	Force      bool
	Subdir     string
	PlaylistID string
}

func (d *downloader) outputDir(opt DownloadOptions) (string, error) {
	if opt.Subdir == "" {
		return d.outputPath, nil
	}
	dir := filepath.Join(d.outputPath, opt.Subdir)
	if _, err := os.Stat(dir); err != nil && os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// Download runs the merged video+audio flow. The best video-only and best
// audio-only streams are fetched separately and muxed with ffmpeg; when the
// video has no adaptive pair the best progressive stream is used as is.
func (d *downloader) Download(ctx context.Context, video *yt.Video, opt DownloadOptions) error {
	ok, err := d.history.IsDownloaded(video.ID, "video")
	if err != nil {
		return err
	}
	if ok && !opt.Force {
		zap.L().Info("Skip download", zap.String("id", video.ID),
			zap.String("channel", video.Author), zap.String("title", video.Title))
		return nil
	}

	outDir, err := d.outputDir(opt)
	if err != nil {
		return err
	}
	channel := video.Author
	title := getInnerText(video.Title)

	videoFormat, err := selectVideoFormat(video.Formats, opt.Quality, d.config.MaxFileSize)
	if err != nil {
		return err
	}

	if opt.VideoOnly {
		if videoFormat == nil {
			return errors.Newf("no video-only formats for %s", video.ID)
		}
		outPath := filepath.Join(outDir, newFileName(channel, title, "", formatExt(videoFormat.MimeType)))
		if err = d.fetchFormat(ctx, video, videoFormat, outPath); err != nil {
			return err
		}
		return d.finish(video, opt, "video", outPath, videoFormat)
	}

	audioFormat := selectAudioFormat(video.Formats, d.config.MaxFileSize)

	if videoFormat == nil || audioFormat == nil {
		progressive, err := selectProgressiveFormat(video.Formats, opt.Quality, d.config.MaxFileSize)
		if err != nil {
			return err
		}
		if progressive == nil {
			return errors.Newf("no usable formats for %s", video.ID)
		}
		outPath := filepath.Join(outDir, newFileName(channel, title, "", formatExt(progressive.MimeType)))
		if err = d.fetchFormat(ctx, video, progressive, outPath); err != nil {
			return err
		}
		return d.finish(video, opt, "video", outPath, progressive)
	}

	videoPath := filepath.Join(outDir, newFileName(channel, title, "video", formatExt(videoFormat.MimeType)))
	err = d.fetchFormat(ctx, video, videoFormat, videoPath)
	if err != nil {
		return err
	}

	audioPath := filepath.Join(outDir, newFileName(channel, title, "audio", formatExt(audioFormat.MimeType)))
	err = d.fetchFormat(ctx, video, audioFormat, audioPath)
	if err != nil {
		return err
	}

	outputFile := newFileName(channel, title, "", "mp4")
	outPath := filepath.Join(outDir, outputFile)
	zap.L().Info("Merging", zap.String("output", outputFile))
	err = d.ffmpeg.MergeVideoAudio(videoPath, audioPath, outPath)
	if err != nil {
		zap.L().Error("Merge failed", zap.Error(err), zap.String("file", outputFile))
		return nil
	}
	_ = os.Remove(videoPath)
	_ = os.Remove(audioPath)

	return d.finish(video, opt, "video", outPath, videoFormat, audioFormat)
}

// DownloadAudio fetches the best audio-only stream and transcodes it to MP3.
func (d *downloader) DownloadAudio(ctx context.Context, video *yt.Video, opt DownloadOptions) error {
	ok, err := d.history.IsDownloaded(video.ID, "audio")
	if err != nil {
		return err
	}
	if ok && !opt.Force {
		zap.L().Info("Skip download", zap.String("id", video.ID),
			zap.String("channel", video.Author), zap.String("title", video.Title))
		return nil
	}

	outDir, err := d.outputDir(opt)
	if err != nil {
		return err
	}
	channel := video.Author
	title := getInnerText(video.Title)

	audioFormat := selectAudioFormat(video.Formats, d.config.MaxFileSize)
	if audioFormat == nil {
		return errors.Newf("no audio-only formats for %s", video.ID)
	}

	audioPath := filepath.Join(outDir, newFileName(channel, title, "audio", formatExt(audioFormat.MimeType)))
	err = d.fetchFormat(ctx, video, audioFormat, audioPath)
	if err != nil {
		return err
	}

	outputFile := newFileName(channel, title, "", "mp3")
	outPath := filepath.Join(outDir, outputFile)
	zap.L().Info("Transcoding", zap.String("output", outputFile),
		zap.String("bitrate", d.config.AudioBitrate))
	err = d.ffmpeg.ExtractAudio(audioPath, outPath, d.config.AudioBitrate)
	if err != nil {
		zap.L().Error("Transcode failed", zap.Error(err), zap.String("file", outputFile))
		return nil
	}
	_ = os.Remove(audioPath)

	return d.finish(video, opt, "audio", outPath, audioFormat)
}

func (d *downloader) fetchFormat(ctx context.Context, video *yt.Video, format *yt.Format, filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return nil
	}
	streamURL, err := d.api(ctx).GetStreamURLContext(ctx, video, format)
	if err != nil {
		return wrapFetchError(err, "resolving stream url")
	}
	return downloadFile(d.stream, filePath, streamURL)
}

func (d *downloader) finish(video *yt.Video, opt DownloadOptions, mode string, outPath string, formats ...*yt.Format) error {
	err := writeSidecar(outPath, newVideoMetadata(video, formats...))
	if err != nil {
		zap.L().Error("Write metadata sidecar failed", zap.Error(err))
	}

	return d.history.Save(&HistoryEntry{
		VideoID:    video.ID,
		Channel:    video.Author,
		Title:      getInnerText(video.Title),
		Mode:       mode,
		PlaylistID: opt.PlaylistID,
		FileName:   filepath.Base(outPath),
	})
}
