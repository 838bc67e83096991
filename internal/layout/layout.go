// Package layout maps a file's classification to its relative destination
// inside the library. Resolution is pure: it never touches the filesystem.
package layout

import (
	"fmt"
	"path/filepath"
	"strings"

	"mediasort/internal/media"
	"mediasort/internal/services"
)

// Strategy selects the directory shape of the organized library.
type Strategy string

const (
	// ByTypeAndDate places files under <kind>/<year>/<month>/.
	ByTypeAndDate Strategy = "by-type-and-date"
	// ByTypeOnly places files under <kind>/.
	ByTypeOnly Strategy = "by-type-only"
	// FlatByDate places files under <year>-<month>/.
	FlatByDate Strategy = "flat-by-date"
)

// UnknownDir is the bucket for files that could not be classified or dated.
const UnknownDir = "unknown"

// ParseStrategy validates a configured layout name.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(value))) {
	case ByTypeAndDate:
		return ByTypeAndDate, nil
	case ByTypeOnly:
		return ByTypeOnly, nil
	case FlatByDate:
		return FlatByDate, nil
	default:
		return "", services.Wrap(services.ErrConfiguration, "layout", "parse",
			fmt.Sprintf("unknown strategy %q", value), nil)
	}
}

// Resolver computes destination paths relative to the library root.
type Resolver struct {
	strategy Strategy
	rename   bool
}

// NewResolver builds a Resolver for the given strategy. When rename is set,
// placed files get timestamp-derived names instead of their original ones.
func NewResolver(strategy Strategy, rename bool) *Resolver {
	return &Resolver{strategy: strategy, rename: rename}
}

// Resolve returns the destination path, relative to the library root, for a
// file with the given base name and attributes. Files without a usable kind
// or timestamp go to the unknown bucket with their name unchanged.
func (r *Resolver) Resolve(baseName string, attrs media.AttributeSet) string {
	if attrs.Kind == media.KindUnknown || !attrs.HasTimestamp() {
		return filepath.Join(UnknownDir, baseName)
	}

	var dir string
	switch r.strategy {
	case ByTypeOnly:
		dir = string(attrs.Kind)
	case FlatByDate:
		dir = attrs.CapturedAt.Format("2006-01")
	default:
		dir = filepath.Join(string(attrs.Kind), attrs.CapturedAt.Format("2006"), attrs.CapturedAt.Format("01"))
	}

	name := baseName
	if r.rename {
		name = renamedBase(baseName, attrs)
	}
	return filepath.Join(dir, name)
}

// renamedBase derives img_/vid_ names from the capture timestamp. A midnight
// timestamp usually means only the date was known, so the time part is
// dropped.
func renamedBase(baseName string, attrs media.AttributeSet) string {
	prefix := "img"
	if attrs.Kind == media.KindVideo {
		prefix = "vid"
	}

	stamp := attrs.CapturedAt.Format("20060102_150405")
	stamp = strings.TrimSuffix(stamp, "_000000")

	ext := strings.ToLower(filepath.Ext(baseName))
	return prefix + "_" + stamp + ext
}
