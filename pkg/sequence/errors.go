package sequence

import "errors"

var (
	// ErrEmptyRange is returned when an explicit range has end < start.
	ErrEmptyRange = errors.New("sequence: empty frame range")

	// ErrFolderNotFound is returned when the sequence folder does not exist.
	ErrFolderNotFound = errors.New("sequence: folder not found")

	// ErrEmptyDirectory is returned when the folder exists but contains no
	// matching image files.
	ErrEmptyDirectory = errors.New("sequence: no image files found")

	// ErrDecodeFailed marks a frame that failed to decode. It is recorded
	// per frame and logged, never returned from playback calls.
	ErrDecodeFailed = errors.New("sequence: frame decode failed")

	// ErrUsageOrder indicates configuration changed after a load started.
	// Reported and ignored, never fatal.
	ErrUsageOrder = errors.New("sequence: configuration must be set before load")

	// ErrIndexOutOfRange indicates a frame index outside the sequence, or
	// an attempt to finalize a load that discovered zero frames.
	ErrIndexOutOfRange = errors.New("sequence: frame index out of range")
)
