// Package scanner discovers sky-probe measurements on disk and loads them.
//
// Discovery order is the order the filesystem walk produces: lexical by
// name for both ListIntervalDirs and FindProbeFiles. Callers must not read
// it as chronological order.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// ListIntervalDirs returns the absolute paths of the immediate
// subdirectories of root. Filesystem errors are returned unmodified.
func ListIntervalDirs(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: absRoot, Err: syscall.ENOTDIR}
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if isDirEntry(absRoot, entry) {
			dirs = append(dirs, filepath.Join(absRoot, entry.Name()))
		}
	}
	return dirs, nil
}

// FindProbeFiles walks dir recursively and returns every file named
// filename, in walk order.
func FindProbeFiles(dir string, filename string) ([]string, error) {
	if filename == "" {
		filename = ProbeFilename
	}

	// WalkDir does not descend into a symlinked root; a trailing separator
	// makes the lookup resolve it.
	walkRoot := dir
	if info, err := os.Lstat(dir); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		walkRoot = dir + string(filepath.Separator)
	}

	var matches []string
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if IsProbeFile(d, filename) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// LoadOrdered runs load on every path and returns the results in the
// order of paths, whatever order the workers finish in.
//
// Without SkipFailures the first error aborts the load and is returned.
// With SkipFailures every path gets a result and failures are carried in
// LoadResult.Error.
func LoadOrdered[T any](paths []string, options LoadOptions, load func(path string) (T, error)) ([]LoadResult[T], error) {
	results := make([]LoadResult[T], len(paths))
	tracker := NewProgressTracker(len(paths))
	startTime := time.Now()

	loadOne := func(i int) error {
		value, err := load(paths[i])
		tracker.Record(paths[i], err)
		results[i] = LoadResult[T]{Path: paths[i], Value: value, Error: err}
		if err != nil && !options.SkipFailures {
			return err
		}
		return nil
	}

	if options.MaxWorkers <= 1 {
		for i := range paths {
			if err := loadOne(i); err != nil {
				return nil, err
			}
		}
	} else {
		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(options.MaxWorkers)
		for i := range paths {
			if ctx.Err() != nil {
				break
			}
			i := i
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				return loadOne(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if options.DebugMode {
		tracker.LogCompletion(options.Label, startTime)
	}
	return results, nil
}
