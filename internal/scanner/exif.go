package scanner

import (
	"os"
	"strings"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// exifTimeLayout is the fixed EXIF date format.
const exifTimeLayout = "2006:01:02 15:04:05"

// captureTags are tried in order.
var captureTags = []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"}

// CaptureTime returns the EXIF capture time of a JPEG, interpreted as UTC.
// ok is false when the file carries no usable timestamp.
func CaptureTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(f, nil, true)
	if err != nil {
		return time.Time{}, false
	}

	values := make(map[string]string, len(captureTags))
	for _, tag := range tags {
		if _, seen := values[tag.TagName]; seen {
			continue
		}
		if s, ok := tag.Value.(string); ok {
			values[tag.TagName] = s
		} else if tag.Formatted != "" {
			values[tag.TagName] = tag.Formatted
		}
	}

	for _, name := range captureTags {
		if t, ok := parseExifTime(values[name]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseExifTime(s string) (time.Time, bool) {
	s = strings.Trim(strings.TrimSpace(s), "\x00")
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(exifTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
