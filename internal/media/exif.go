package media

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

const exifTimeLayout = "2006:01:02 15:04:05"

// exifFieldOrder is the tag priority: when the photo was taken, when it was
// digitized, then the generic EXIF modification time.
var exifFieldOrder = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// imageCaptureTime reads the EXIF timestamp from an image file. A missing or
// unparsable EXIF block is not an error; the chain falls through.
func imageCaptureTime(path string, now time.Time) (time.Time, bool) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer file.Close()

	decoded, err := exif.Decode(file)
	if err != nil {
		return time.Time{}, false
	}

	for _, field := range exifFieldOrder {
		tag, err := decoded.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		ts, err := time.ParseInLocation(exifTimeLayout, strings.TrimSpace(strings.Trim(raw, "\x00")), time.Local)
		if err != nil {
			continue
		}
		if validCaptureTime(ts, now) {
			return ts, true
		}
	}
	return time.Time{}, false
}
