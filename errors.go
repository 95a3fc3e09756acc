package ebml

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy this package reports. Callers should
// compare against these with errors.Is, not against the exact error value,
// since most are wrapped with positional context before being returned.
var (
	// ErrCorruptedFileData indicates a framing violation: a malformed VINT,
	// a child element whose declared size overruns its parent, or a
	// truncated element.
	ErrCorruptedFileData = errors.New("ebml: corrupted file data")

	// ErrCorruptedTagData indicates a leaf's payload violates its declared
	// data type (bad UTF-8, a float of the wrong length). Use errors.As
	// with a *CorruptedTagDataError target to recover the offending tag ID.
	ErrCorruptedTagData = errors.New("ebml: corrupted tag data")

	// ErrUnsupportedFeature indicates an indeterminate-size VINT, or a size
	// value too large to write as an 8-byte VINT, neither of which this
	// codec supports. A VINT wider than 8 bytes on input is reported as
	// ErrCorruptedFileData.
	ErrUnsupportedFeature = errors.New("ebml: unsupported feature")

	// ErrInvalidTagID indicates a Writer was given a tag ID with no valid
	// width marker: its highest set bit is not the marker bit of any 1- to
	// 8-byte VINT (so 0, and any ID of 2^57 or more, is rejected).
	ErrInvalidTagID = errors.New("ebml: invalid tag id")

	// ErrInconsistentTagNesting indicates a Writer was given a MasterEnd
	// event whose ID does not match the top of the open-master stack.
	ErrInconsistentTagNesting = errors.New("ebml: inconsistent tag nesting")

	// ErrOpenMastersOnFlush indicates Flush was called while one or more
	// masters were still open.
	ErrOpenMastersOnFlush = errors.New("ebml: open masters on flush")
)

// CorruptedTagDataError reports that the payload of tag ID carried a value
// inconsistent with its declared data type.
type CorruptedTagDataError struct {
	ID  uint64
	Msg string
}

func (e *CorruptedTagDataError) Error() string {
	return fmt.Sprintf("ebml: corrupted tag data for id 0x%X: %s", e.ID, e.Msg)
}

// Unwrap allows errors.Is(err, ErrCorruptedTagData) to succeed.
func (e *CorruptedTagDataError) Unwrap() error {
	return ErrCorruptedTagData
}

func corruptedTagData(id uint64, format string, args ...any) error {
	return &CorruptedTagDataError{ID: id, Msg: fmt.Sprintf(format, args...)}
}
