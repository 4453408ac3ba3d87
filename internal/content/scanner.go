package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/logfields"
)

// ErrNotDirectory is returned when the content root is not a directory.
var ErrNotDirectory = errors.New("content root is not a directory")

// Options describes the on-disk layout of a content tree.
type Options struct {
	CoreFile      string
	Extension     string
	SettingsDir   string
	ExpansionsDir string
	Ignore        []string
	Order         Order
}

// DefaultOptions is the standard layout with filesystem listing order.
func DefaultOptions() Options {
	return Options{
		CoreFile:      "core.html",
		Extension:     ".html",
		SettingsDir:   "Settings",
		ExpansionsDir: "Expansions",
		Ignore:        []string{"node_modules", ".git", "index.html"},
		Order:         ListingOrder,
	}
}

// Scanner lists candidate game directories and the fragments inside their category folders.
type Scanner struct {
	opts   Options
	ignore map[string]struct{}
}

// NewScanner creates a Scanner. A nil Order falls back to ListingOrder.
func NewScanner(opts Options) *Scanner {
	if opts.Order == nil {
		opts.Order = ListingOrder
	}
	ignore := make(map[string]struct{}, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = struct{}{}
	}
	return &Scanner{opts: opts, ignore: ignore}
}

// Scan returns the names of the immediate subdirectories of root that are not ignored.
func (s *Scanner) Scan(root string) ([]string, error) {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return nil, ferrors.WrapError(fmt.Errorf("%s: %w", root, ErrNotDirectory), ferrors.CategoryFileSystem, "invalid content root").
			Fatal().WithContext("path", root).Build()
	}
	entries, err := s.opts.Order(root)
	if err != nil {
		return nil, ferrors.FileSystemError(err, "failed to list content root").WithContext("path", root).Build()
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, skip := s.ignore[e.Name()]; skip {
			slog.Debug("Ignoring directory", logfields.Path(e.Name()))
			continue
		}
		dirs = append(dirs, e.Name())
	}
	return dirs, nil
}

// HasCore reports whether dir contains the core document.
func (s *Scanner) HasCore(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, s.opts.CoreFile))
	return err == nil && !info.IsDir()
}

// ListItems returns the fragment filenames in dir. A missing folder yields no items.
func (s *Scanner) ListItems(dir string) ([]string, error) {
	entries, err := s.opts.Order(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ferrors.FileSystemError(err, "failed to list category folder").WithContext("path", dir).Build()
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), s.opts.Extension) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
