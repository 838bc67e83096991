// Package collision decides what to do when a destination path is already
// occupied. Identical content is detected by fingerprint; differing content
// gets a numeric suffix, with every candidate re-checked so the loop can
// still discover a duplicate parked under a suffixed name.
package collision

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mediasort/internal/fingerprint"
	"mediasort/internal/services"
)

// Action is the outcome of collision resolution.
type Action string

const (
	// Place means the destination is free.
	Place Action = "place"
	// SkipDuplicate means identical content already exists in the library.
	SkipDuplicate Action = "skip-duplicate"
	// RenameAndPlace means the file goes to a suffixed destination.
	RenameAndPlace Action = "rename-and-place"
	// Overwrite means identical content exists and policy replaces it.
	Overwrite Action = "overwrite"
)

// maxSuffix bounds the rename loop; past this the directory is pathological.
const maxSuffix = 10000

// Decision carries the chosen action and the final destination path.
type Decision struct {
	Action      Action
	Destination string
}

// Resolver applies the duplicate policy to occupied destinations.
type Resolver struct {
	overwrite bool
}

// NewResolver returns a Resolver. With overwrite set, identical duplicates
// replace the existing destination instead of being skipped.
func NewResolver(overwrite bool) *Resolver {
	return &Resolver{overwrite: overwrite}
}

// Resolve decides where the file with the given fingerprint can go when it
// wants the dest path. Dest must be absolute.
func (r *Resolver) Resolve(src fingerprint.Fingerprint, dest string) (Decision, error) {
	occupied, match, err := r.check(src, dest)
	if err != nil {
		return Decision{}, err
	}
	if !occupied {
		return Decision{Action: Place, Destination: dest}, nil
	}
	if match {
		if r.overwrite {
			return Decision{Action: Overwrite, Destination: dest}, nil
		}
		return Decision{Action: SkipDuplicate, Destination: dest}, nil
	}

	base, ext := splitName(dest)
	for i := 1; i <= maxSuffix; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		occupied, match, err := r.check(src, candidate)
		if err != nil {
			return Decision{}, err
		}
		if !occupied {
			return Decision{Action: RenameAndPlace, Destination: candidate}, nil
		}
		if match {
			return Decision{Action: SkipDuplicate, Destination: candidate}, nil
		}
	}
	return Decision{}, services.Wrap(services.ErrFilesystem, "collision", "resolve",
		fmt.Sprintf("no free name for %s after %d attempts", dest, maxSuffix), nil)
}

// check reports whether path is occupied and, if so, whether its content
// matches the source fingerprint.
func (r *Resolver) check(src fingerprint.Fingerprint, path string) (occupied bool, match bool, err error) {
	_, statErr := os.Stat(path)
	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return false, false, nil
		}
		return false, false, services.Wrap(services.ErrFilesystem, "collision", "stat", path, statErr)
	}

	existing, fpErr := fingerprint.Compute(path)
	if fpErr != nil {
		return false, false, services.Wrap(services.ErrFilesystem, "collision", "fingerprint", path, fpErr)
	}
	return true, src.Equal(existing), nil
}

func splitName(path string) (base, ext string) {
	ext = filepath.Ext(path)
	base = strings.TrimSuffix(path, ext)
	return base, ext
}
