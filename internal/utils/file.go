package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// HasExtension reports whether filename ends in exactly .ext. The match is
// case-sensitive, so LOGO.PNG does not match png.
func HasExtension(filename, ext string) bool {
	want := strings.TrimPrefix(ext, ".")
	return want != "" && filepath.Ext(filename) == "."+want
}

// ListFilesWithExtension lists files directly inside dir whose extension
// matches ext, sorted by name. Subdirectories are not descended. Symlinks
// are listed unless they point at a directory; a dangling link is listed
// too so the caller can report it.
func ListFilesWithExtension(fs afero.Fs, dir, ext string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !HasExtension(entry.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch mode := entry.Mode(); {
		case mode.IsRegular():
		case mode&os.ModeSymlink != 0:
			if target, err := fs.Stat(path); err == nil && !target.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// DirExists checks if a directory exists
func DirExists(fs afero.Fs, dirname string) bool {
	ok, err := afero.DirExists(fs, dirname)
	return err == nil && ok
}

// FileExists checks if a file exists and is not a directory
func FileExists(fs afero.Fs, filename string) bool {
	info, err := fs.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ResolveLink returns the file a symlink at path points to. Paths that are
// not symlinks, and filesystems without links, are returned unchanged.
func ResolveLink(fs afero.Fs, path string) (string, error) {
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	info, lstatCalled, err := lstater.LstatIfPossible(path)
	if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}
	// Only the OS filesystem shares its path namespace with filepath.
	if _, isOS := fs.(*afero.OsFs); !isOS {
		return path, nil
	}
	return filepath.EvalSymlinks(path)
}

// WriteFileAtomic writes data produced by write to a temporary file next to
// path and renames it over path. The existing file mode is kept. When path
// is a symlink the link target is replaced and the link itself survives.
func WriteFileAtomic(fs afero.Fs, path string, write func(f afero.File) error) (int64, error) {
	path, err := ResolveLink(fs, path)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve link: %w", err)
	}

	mode := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = fs.Remove(tmpName) }

	if err := write(tmp); err != nil {
		tmp.Close()
		cleanup()
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return 0, fmt.Errorf("failed to sync temp file: %w", err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		cleanup()
		return 0, fmt.Errorf("failed to stat temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := fs.Chmod(tmpName, mode); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return info.Size(), nil
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
