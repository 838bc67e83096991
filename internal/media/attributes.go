package media

import "time"

// TimestampSource records which part of the chain produced the capture time,
// so callers can tell authoritative metadata apart from fallbacks.
type TimestampSource string

const (
	SourceMetadata TimestampSource = "metadata"
	SourceFilename TimestampSource = "filename"
	SourceModTime  TimestampSource = "modtime"
)

// AttributeSet is the classification result for one file.
type AttributeSet struct {
	Kind       Kind
	CapturedAt time.Time
	Source     TimestampSource
}

// HasTimestamp reports whether any source in the chain produced a valid
// capture time.
func (a AttributeSet) HasTimestamp() bool {
	return !a.CapturedAt.IsZero()
}
