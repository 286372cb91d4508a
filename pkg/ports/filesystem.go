package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// ListDir lists the files in folder in a deterministic sorted order.
	// When extFilter is non-empty only files with that extension are
	// returned. Directories are skipped. Returned paths include the folder.
	ListDir(folder, extFilter string) ([]string, error)
}
