package daemon

import (
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"mediasort/internal/logging"
)

// warnOnLowSpace compares the size of the pending input set against the free
// space on the output volume. Copy mode needs the full input size; move mode
// may need it too when input and output live on different filesystems, so the
// check always assumes the worst case. Failures here never block a run.
func (d *Daemon) warnOnLowSpace() {
	required, err := treeSize(d.cfg.Paths.InputDir)
	if err != nil || required == 0 {
		return
	}

	free, err := freeBytes(d.cfg.Paths.OutputDir)
	if err != nil {
		return
	}

	if free < required {
		d.logger.Warn("output volume may run out of space",
			logging.Int64("required_bytes", required),
			logging.Int64("free_bytes", free),
			logging.String(logging.FieldErrorHint, "free up space on the output volume before organizing"))
	}
}

func treeSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total, err
}

func freeBytes(dir string) (int64, error) {
	// The output directory may not exist before the first run. Walk up to
	// the nearest existing parent so Statfs has something to measure.
	probe := dir
	for {
		if _, err := os.Stat(probe); err == nil {
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(probe, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
