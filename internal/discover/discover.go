// Package discover enumerates the resource files under a resource root.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ManifestSuffix marks build-description files that live next to resources
// but are never resources themselves.
const ManifestSuffix = "CMakeLists.txt"

// Resource is a file found under the resource root.
type Resource struct {
	// RelPath is the slash-separated path relative to the root (e.g. "sub/a.txt").
	RelPath string
	// Path is the filesystem path used to read the file.
	Path string
	// ModTime is the file's last modification time at discovery.
	ModTime time.Time
	// Size is the file's size in bytes at discovery.
	Size int64
}

// Options controls which files are treated as resources.
type Options struct {
	// ExcludeSuffixes lists file-name suffixes to skip.
	ExcludeSuffixes []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ExcludeSuffixes: []string{ManifestSuffix},
	}
}

// ConfigurationError reports an unusable resource root.
type ConfigurationError struct {
	Root   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resource root %s: %s: %v", e.Root, e.Reason, e.Err)
	}

	return fmt.Sprintf("resource root %s: %s", e.Root, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Discover walks root recursively and returns its resource files in lexical
// walk order. The returned order is the only order used for a run; callers
// must not rediscover between the staleness check and emission.
func Discover(root string, opts Options) ([]Resource, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Root: root, Reason: "does not exist", Err: err}
		}

		return nil, &ConfigurationError{Root: root, Reason: "cannot stat", Err: err}
	}

	if !info.IsDir() {
		return nil, &ConfigurationError{Root: root, Reason: "is not a directory"}
	}

	var resources []Resource

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || opts.excluded(d.Name()) {
			return nil
		}

		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		// Symlinks to directories are not followed.
		if fi.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", path, err)
		}

		resources = append(resources, Resource{
			RelPath: filepath.ToSlash(rel),
			Path:    path,
			ModTime: fi.ModTime(),
			Size:    fi.Size(),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking resource root %s: %w", root, err)
	}

	return resources, nil
}

func (o Options) excluded(name string) bool {
	for _, suffix := range o.ExcludeSuffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}

// RelPaths returns the relative paths of resources, in order.
func RelPaths(resources []Resource) []string {
	paths := make([]string, len(resources))
	for i, r := range resources {
		paths[i] = r.RelPath
	}

	return paths
}
