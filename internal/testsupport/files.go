package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile creates a file with the given contents, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteJPEGWithEXIF writes a minimal JPEG whose EXIF APP1 segment carries a
// DateTimeOriginal tag set to the given timestamp. The file contains no image
// data but is a valid target for EXIF decoding.
func WriteJPEGWithEXIF(t testing.TB, path string, taken time.Time) string {
	t.Helper()

	tiff := buildTIFFWithDateTimeOriginal(taken)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8}) // SOI
	payload := append([]byte("Exif\x00\x00"), tiff...)
	buf.Write([]byte{0xFF, 0xE1}) // APP1
	segLen := uint16(len(payload) + 2)
	buf.WriteByte(byte(segLen >> 8))
	buf.WriteByte(byte(segLen))
	buf.Write(payload)
	buf.Write([]byte{0xFF, 0xD9}) // EOI

	return WriteFile(t, path, buf.Bytes())
}

// buildTIFFWithDateTimeOriginal lays out a little-endian TIFF stream with
// IFD0 pointing at an Exif sub-IFD that holds one ASCII DateTimeOriginal tag.
func buildTIFFWithDateTimeOriginal(taken time.Time) []byte {
	const (
		ifd0Offset    = 8
		exifIFDOffset = ifd0Offset + 2 + 12 + 4
		valueOffset   = exifIFDOffset + 2 + 12 + 4
	)
	stamp := taken.Format("2006:01:02 15:04:05") + "\x00"

	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.WriteString("II")
	binary.Write(&buf, le, uint16(42))
	binary.Write(&buf, le, uint32(ifd0Offset))

	// IFD0: one entry pointing at the Exif sub-IFD (tag 0x8769, LONG).
	binary.Write(&buf, le, uint16(1))
	binary.Write(&buf, le, uint16(0x8769))
	binary.Write(&buf, le, uint16(4))
	binary.Write(&buf, le, uint32(1))
	binary.Write(&buf, le, uint32(exifIFDOffset))
	binary.Write(&buf, le, uint32(0)) // no next IFD

	// Exif IFD: one ASCII DateTimeOriginal entry (tag 0x9003).
	binary.Write(&buf, le, uint16(1))
	binary.Write(&buf, le, uint16(0x9003))
	binary.Write(&buf, le, uint16(2))
	binary.Write(&buf, le, uint32(len(stamp)))
	binary.Write(&buf, le, uint32(valueOffset))
	binary.Write(&buf, le, uint32(0))

	buf.WriteString(stamp)
	return buf.Bytes()
}

// WriteMP4WithCreationTime writes a minimal MP4 containing an mvhd atom with
// the given creation time. Only the moov/mvhd structure is populated.
func WriteMP4WithCreationTime(t testing.TB, path string, created time.Time) string {
	t.Helper()

	const mp4Epoch = 2082844800 // seconds between 1904-01-01 and 1970-01-01
	be := binary.BigEndian

	var mvhd bytes.Buffer
	binary.Write(&mvhd, be, uint32(108))
	mvhd.WriteString("mvhd")
	mvhd.Write([]byte{0, 0, 0, 0}) // version 0 + flags
	binary.Write(&mvhd, be, uint32(created.Unix()+mp4Epoch))
	binary.Write(&mvhd, be, uint32(created.Unix()+mp4Epoch))
	binary.Write(&mvhd, be, uint32(1000)) // timescale
	binary.Write(&mvhd, be, uint32(0))    // duration
	mvhd.Write(make([]byte, 108-mvhd.Len()))

	var buf bytes.Buffer
	binary.Write(&buf, be, uint32(16))
	buf.WriteString("ftyp")
	buf.WriteString("isom")
	binary.Write(&buf, be, uint32(0))

	binary.Write(&buf, be, uint32(8+mvhd.Len()))
	buf.WriteString("moov")
	buf.Write(mvhd.Bytes())

	return WriteFile(t, path, buf.Bytes())
}
