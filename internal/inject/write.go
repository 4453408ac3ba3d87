package inject

import (
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
)

// WriteFileAtomic replaces path with data. The bytes go to a temporary file in the same
// directory which is then renamed over path, so readers see either the old or the new
// document. An existing file's permissions are kept.
func WriteFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".gameshelf-*.tmp")
	if err != nil {
		return ferrors.FileSystemError(err, "failed to create temporary file").WithContext("path", path).Build()
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return ferrors.FileSystemError(err, "failed to write temporary file").WithContext("path", path).Build()
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return ferrors.FileSystemError(err, "failed to set file mode").WithContext("path", path).Build()
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return ferrors.FileSystemError(err, "failed to close temporary file").WithContext("path", path).Build()
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return ferrors.FileSystemError(err, "failed to replace file").WithContext("path", path).Build()
	}
	return nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path inside the content root
	if err != nil {
		return "", ferrors.FileSystemError(err, "failed to read document").WithContext("path", path).Build()
	}
	return string(data), nil
}
