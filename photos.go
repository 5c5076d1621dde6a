package yore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IsJPEGFile reports whether path is a regular file, or a link to one, with a
// .jpg or .jpeg extension in any letter case.
func IsJPEGFile(path string) bool {
	if !hasJPEGExtension(path) {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FindJPEGs returns every JPEG file under root in lexical order.
// Entries that cannot be read are skipped; only an unreadable root is an error.
func FindJPEGs(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && IsJPEGFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("yore: failed to search %q for photos: %w", root, err)
	}

	return paths, nil
}

func hasJPEGExtension(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".jpg") || strings.EqualFold(ext, ".jpeg")
}
