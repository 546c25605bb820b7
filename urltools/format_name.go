// Package urltools derives media properties from output URLs.
package urltools

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// FormatName returns the name of the muxer to use for the given output
// URL, or an empty string if it should be guessed by FFmpeg.
func FormatName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return FormatNameFromPath(rawURL)
	}
	switch strings.ToLower(u.Scheme) {
	case "file", "":
		return FormatNameFromPath(u.Path)
	case "rtmp", "rtmps":
		return "flv"
	case "srt", "udp", "tcp", "http", "https":
		return "mpegts"
	case "rtsp":
		return "rtsp"
	default:
		// e.g. a Windows drive letter parsed as a scheme
		return FormatNameFromPath(rawURL)
	}
}

func FormatNameFromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case slices.Contains([]string{".mp4", ".m4v", ".mov"}, ext):
		return "mp4"
	case slices.Contains([]string{".mkv", ".mk3d"}, ext):
		return "matroska"
	case ext == ".flv":
		return "flv"
	case slices.Contains([]string{".ts", ".mts", ".m2ts", ".mpeg", ".mpg"}, ext):
		return "mpegts"
	case ext == ".avi":
		return "avi"
	case ext == ".webm":
		return "webm"
	case ext == ".y4m":
		return "yuv4mpegpipe"
	default:
		return ""
	}
}

// IsFile returns true if the URL points to a local file.
func IsFile(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	switch strings.ToLower(u.Scheme) {
	case "rtmp", "rtmps", "srt", "udp", "tcp", "http", "https", "rtsp":
		return false
	default:
		return true
	}
}
