package content

import (
	"io/fs"
	"os"
)

// Order lists a directory. The order of the returned entries is the order games and items
// appear in everywhere downstream.
type Order func(dir string) ([]fs.DirEntry, error)

// ListingOrder returns entries in the order the filesystem reports them, without sorting.
// Authors control ordering through the directory itself.
func ListingOrder(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir) // #nosec G304 -- directory inside the content root
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return f.ReadDir(-1)
}

// NameOrder returns entries sorted by filename.
func NameOrder(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}
