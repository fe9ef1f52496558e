package youtube

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

const readStreamSliceTimeout = 30 * time.Second

func newStreamClient() *resty.Client {
	return resty.New().SetTimeout(24 * time.Hour)
}

func getContentLength(header http.Header) int64 {
	s := header.Get("Content-Length")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return v
}

func newProgressBar(length int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(length,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func downloadSingleFile(client *resty.Client, filePath string, url string) error {
	fileName := filepath.Base(filePath)
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	rsp, err := client.R().SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return err
	}
	body := rsp.RawBody()
	defer func() { _ = body.Close() }()

	if rsp.StatusCode() != http.StatusOK && rsp.StatusCode() != http.StatusPartialContent {
		return errors.Newf("unexpected status %d downloading %s", rsp.StatusCode(), fileName)
	}

	zap.L().Info("Downloading", zap.String("name", fileName))
	contentLength := getContentLength(rsp.Header())
	bar := newProgressBar(contentLength, "")
	defer func() { _ = bar.Finish() }()

	buf := make([]byte, 1*1024*1024)
	writer := io.MultiWriter(f, bar)

	for {
		ctx, cancel := context.WithTimeout(context.Background(), readStreamSliceTimeout)
		var n int
		n, err = readWithContext(ctx, body, buf)
		cancel()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		_, err = writer.Write(buf[:n])
		if err != nil {
			return err
		}
	}
}

// readWithContext bounds a single Read so a stalled stream cannot hang the
// download forever.
func readWithContext(ctx context.Context, r io.Reader, buf []byte) (n int, err error) {
	done := make(chan struct{})
	go func() {
		n, err = r.Read(buf)
		close(done)
	}()

	select {
	case <-done:
		return n, err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func downloadFile(client *resty.Client, filePath string, url string) error {
	_, err := os.Stat(filePath)
	if err == nil {
		return nil
	}

	if url == "" {
		return errors.New("url is empty")
	}

	tryCnt := 0
	const maxTryCnt = 5
	const tryInterval = time.Second
	for tryCnt < maxTryCnt {
		tryCnt++
		err = downloadSingleFile(client, filePath, url)
		if err != nil {
			zap.L().Error("Download file failed, try again later", zap.Error(err))
			time.Sleep(tryInterval)
		} else {
			return nil
		}
	}

	fileName := filepath.Base(filePath)
	return errors.Newf("download %s failed", fileName)
}
