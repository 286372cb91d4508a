package sequence

import (
	"fmt"

	"github.com/user/imageseq/pkg/ports"
)

// resolveRange expands an explicit numeric range into one source path per
// frame: prefix + index + "." + ext, with the index zero-padded to digits
// when digits > 0. Nothing is read from disk; a missing file surfaces at
// decode time.
func resolveRange(prefix, ext string, start, end, digits int) ([]string, error) {
	if end < start {
		return nil, fmt.Errorf("%w: start %d, end %d", ErrEmptyRange, start, end)
	}

	paths := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		if digits > 0 {
			paths = append(paths, fmt.Sprintf("%s%0*d.%s", prefix, digits, i, ext))
		} else {
			paths = append(paths, fmt.Sprintf("%s%d.%s", prefix, i, ext))
		}
	}
	return paths, nil
}

// resolveFolder lists the matching files in folder through the filesystem
// port. The listing order is the playback order. A positive maxFrames bounds
// the number of frames discovered.
func resolveFolder(fs ports.FileSystem, folder, extFilter string, maxFrames int) ([]string, error) {
	exists, err := fs.Exists(folder)
	if err != nil {
		return nil, fmt.Errorf("stat folder %s: %w", folder, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}

	paths, err := fs.ListDir(folder, extFilter)
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", folder, err)
	}
	if maxFrames > 0 && len(paths) > maxFrames {
		paths = paths[:maxFrames]
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, folder)
	}
	return paths, nil
}
