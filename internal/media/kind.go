package media

import (
	"path/filepath"
	"strings"
)

// Kind is the coarse media classification used for library layout.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindUnknown Kind = "unknown"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".tiff": {},
	".heic": {},
	".heif": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".m4v": {},
	".mov": {},
	".3gp": {},
	".mkv": {},
	".avi": {},
}

// mp4Extensions are the video containers whose creation time can be read from
// the moov/mvhd atom.
var mp4Extensions = map[string]struct{}{
	".mp4": {},
	".m4v": {},
	".mov": {},
	".3gp": {},
}

// KindForPath classifies a file by its extension, case-insensitively.
func KindForPath(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindUnknown
}
