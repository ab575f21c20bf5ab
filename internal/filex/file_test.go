package filex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"photo.JPG", KindImage},
		{"clip.webm", KindVideo},
		{"note.m4a", KindAudio},
		{"backup.tar", KindArchive},
		{"data.csv", KindSpreadsheet},
		{"deck.pptx", KindPresentation},
		{"report.pdf", KindDocument},
		{"main.go", KindCode},
		{"mystery.bin", KindOther},
		{"noextension", KindOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.name), tt.name)
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.0 KB", FormatSize(1024))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "100.0 MB", FormatSize(100*1024*1024))
	assert.Equal(t, "2.0 GB", FormatSize(2*1024*1024*1024))
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", FormatRelative(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m ago", FormatRelative(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", FormatRelative(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", FormatRelative(now.Add(-48*time.Hour), now))
	assert.Equal(t, "Apr 1", FormatRelative(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Dec 31, 2022", FormatRelative(time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC), now))
}
