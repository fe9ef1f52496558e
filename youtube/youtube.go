package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/flytam/filenamify"
	"github.com/urfave/cli/v3"
	"golang.org/x/net/html"
)

var RootCmd = &cli.Command{
	Name:    "youtube",
	Aliases: []string{"yt", "y"},
	Commands: []*cli.Command{
		downloadCmd,
		infoCmd,
		formatsCmd,
		historyCmd,
	},
}

var downloadCmd = &cli.Command{
	Name: "download",
	Commands: []*cli.Command{
		downloadVideoCmd,
		downloadAudioCmd,
		downloadPlaylistCmd,
	},
}

func defaultExecutableFileExtension() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

var videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// normalizeVideoURL accepts a watch URL, a short URL, a shorts URL or a bare
// 11-character video ID and returns a canonical watch URL. Playlist query
// parameters are stripped so a single-video download stays single.
func normalizeVideoURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("url is required")
	}
	if videoIDRegex.MatchString(raw) {
		return watchURL(raw), nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(err, "invalid url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.Newf("unsupported url scheme: %s", parsed.Scheme)
	}

	host := strings.TrimPrefix(parsed.Host, "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtu.be":
		id := strings.Trim(parsed.Path, "/")
		if !videoIDRegex.MatchString(id) {
			return "", errors.Newf("invalid video id: %s", id)
		}
		return watchURL(id), nil
	case "youtube.com", "music.youtube.com":
		if strings.HasPrefix(parsed.Path, "/shorts/") || strings.HasPrefix(parsed.Path, "/embed/") {
			parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
			id := parts[len(parts)-1]
			if !videoIDRegex.MatchString(id) {
				return "", errors.Newf("invalid video id: %s", id)
			}
			return watchURL(id), nil
		}
		id := parsed.Query().Get("v")
		if !videoIDRegex.MatchString(id) {
			return "", errors.Newf("no video id in url: %s", raw)
		}
		return watchURL(id), nil
	}
	return "", errors.Newf("unsupported host: %s", parsed.Host)
}

func watchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func newFileName(channel string, title string, suffix string, ext string) string {
	if suffix != "" {
		suffix = "_" + suffix
	}

	fileName := fmt.Sprintf("%s - %s%s.%s", channel, title, suffix, ext)
	fileName, err := filenamify.FilenamifyV2(fileName)
	if err != nil {
		panic(err)
	}
	return fileName
}

// getInnerText strips markup from titles coming back from the innertube
// responses. Plain strings pass through unchanged.
func getInnerText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	return extractText(doc)
}

func extractText(n *html.Node) string {
	var b strings.Builder
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractText(c))
	}
	return b.String()
}
