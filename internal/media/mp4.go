package media

import (
	"encoding/binary"
	"io"
	"os"
	"time"
)

// Seconds between the QuickTime epoch (1904-01-01) and the Unix epoch.
const mp4Epoch = 2082844800

// videoCaptureTime reads the creation time from the moov/mvhd atom of an
// MP4-family container. The moov atom may sit anywhere in the file.
func videoCaptureTime(path string, now time.Time) (time.Time, bool) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.Size() < 16 {
		return time.Time{}, false
	}
	fileSize := info.Size()

	moovOffset, moovSize, ok := findAtom(file, 0, fileSize, "moov")
	if !ok {
		return time.Time{}, false
	}
	mvhdOffset, _, ok := findAtom(file, moovOffset, moovOffset+moovSize, "mvhd")
	if !ok {
		return time.Time{}, false
	}

	ts, ok := readMvhdCreation(file, mvhdOffset)
	if !ok || !validCaptureTime(ts, now) {
		return time.Time{}, false
	}
	return ts, true
}

// findAtom scans sibling atoms in [start, end) and returns the payload offset
// and size of the first atom with the given type.
func findAtom(file *os.File, start, end int64, atomType string) (int64, int64, bool) {
	offset := start
	for offset+8 <= end {
		header := make([]byte, 8)
		if _, err := file.ReadAt(header, offset); err != nil {
			return 0, 0, false
		}
		size := int64(binary.BigEndian.Uint32(header[0:4]))
		typ := string(header[4:8])
		headerLen := int64(8)
		switch size {
		case 0:
			// Atom extends to the end of the enclosing box.
			size = end - offset
		case 1:
			ext := make([]byte, 8)
			if _, err := file.ReadAt(ext, offset+8); err != nil {
				return 0, 0, false
			}
			size = int64(binary.BigEndian.Uint64(ext))
			headerLen = 16
		}
		if size < headerLen || offset+size > end {
			return 0, 0, false
		}
		if typ == atomType {
			return offset + headerLen, size - headerLen, true
		}
		offset += size
	}
	return 0, 0, false
}

// readMvhdCreation decodes the creation_time field of an mvhd payload.
// Version 1 atoms carry 64-bit timestamps.
func readMvhdCreation(file *os.File, payloadOffset int64) (time.Time, bool) {
	if _, err := file.Seek(payloadOffset, io.SeekStart); err != nil {
		return time.Time{}, false
	}
	versionFlags := make([]byte, 4)
	if _, err := io.ReadFull(file, versionFlags); err != nil {
		return time.Time{}, false
	}

	var creation uint64
	if versionFlags[0] == 1 {
		buf := make([]byte, 8)
		if _, err := io.ReadFull(file, buf); err != nil {
			return time.Time{}, false
		}
		creation = binary.BigEndian.Uint64(buf)
	} else {
		buf := make([]byte, 4)
		if _, err := io.ReadFull(file, buf); err != nil {
			return time.Time{}, false
		}
		creation = uint64(binary.BigEndian.Uint32(buf))
	}

	// Zero or pre-epoch values mean the muxer never set a creation time.
	if creation < mp4Epoch {
		return time.Time{}, false
	}
	return time.Unix(int64(creation-mp4Epoch), 0).UTC(), true
}
