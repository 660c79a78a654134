package domain

import (
	"fmt"

	m "github.com/mouse-blink/gorald/internal/model"
)

// BuildError reports a directory the tree builder could not read.
type BuildError struct {
	Path m.Path
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ScanError reports a file the scanner could not analyze.
type ScanError struct {
	RuleKey string
	Path    m.Path
	Err     error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan of %s for %s failed: %v", e.Path, e.RuleKey, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// SegmentCrash reports a segment whose processing failed. The segment's
// files are left unrepaired for the rule.
type SegmentCrash struct {
	RuleKey     string
	Segment     int
	Description string
	Files       []m.Path
	Err         error
}

func (e *SegmentCrash) Error() string {
	return fmt.Sprintf("crash in segment %s: %v", e.Description, e.Err)
}

func (e *SegmentCrash) Unwrap() error { return e.Err }

// WriteError reports a file that could not be rendered or persisted.
type WriteError struct {
	Path m.Path
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
