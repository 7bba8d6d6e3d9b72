package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ProbeFilename is the file every probe directory holds
const ProbeFilename = "envmap.exr"

// IsProbeFile checks if a directory entry is a probe image named filename
func IsProbeFile(d fs.DirEntry, filename string) bool {
	return !d.IsDir() && d.Name() == filename
}

// isDirEntry reports whether entry is a directory, following symlinks
func isDirEntry(parent string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}
