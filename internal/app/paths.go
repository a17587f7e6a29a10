package app

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// listDocuments walks dir in lexical order and returns every regular file
// the reader supports. Hidden files and directories are skipped.
func listDocuments(dir string, supports func(name string) bool) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && supports(name) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// debugDumpPath returns where the normalized text of filename is written.
func debugDumpPath(debugDir, filename string) string {
	return filepath.Join(debugDir, filename+".txt")
}
