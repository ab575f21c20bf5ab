// Package filex contains file classification and formatting helpers shared
// by the CLI and the server.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Kind is a coarse file category derived from the file extension.
type Kind string

const (
	KindImage        Kind = "image"
	KindVideo        Kind = "video"
	KindAudio        Kind = "audio"
	KindArchive      Kind = "archive"
	KindSpreadsheet  Kind = "spreadsheet"
	KindPresentation Kind = "presentation"
	KindDocument     Kind = "document"
	KindCode         Kind = "code"
	KindOther        Kind = "other"
)

var kindByExt = map[string]Kind{}

func init() {
	register := func(kind Kind, exts ...string) {
		for _, e := range exts {
			kindByExt[e] = kind
		}
	}
	register(KindImage, "jpg", "jpeg", "png", "gif", "webp", "svg", "bmp", "ico")
	register(KindVideo, "mp4", "mov", "avi", "mkv", "webm", "flv")
	register(KindAudio, "mp3", "wav", "ogg", "flac", "aac", "m4a")
	register(KindArchive, "zip", "rar", "7z", "tar", "gz")
	register(KindSpreadsheet, "xls", "xlsx", "csv")
	register(KindPresentation, "ppt", "pptx", "key")
	register(KindDocument, "doc", "docx", "pdf", "txt", "rtf", "odt")
	register(KindCode, "js", "ts", "jsx", "tsx", "html", "css", "json", "py", "java", "c", "cpp", "go")
}

// KindOf classifies a file name by its extension.
func KindOf(fileName string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if k, ok := kindByExt[ext]; ok {
		return k
	}
	return KindOther
}

// IsImage reports whether the file name looks like an image.
func IsImage(fileName string) bool {
	return KindOf(fileName) == KindImage
}

// FormatSize renders a byte count as a short human string: "0 B", "1.5 KB",
// "12.0 MB". One decimal place, trailing ".0" kept to match card layout.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}

// FormatRelative renders how long ago t was relative to now:
// "just now", "5m ago", "3h ago", "2d ago", then a short date.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}

	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

// EnsureSubDir creates (if needed) and returns a subdirectory under the
// current working directory. Used for client download targets.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
