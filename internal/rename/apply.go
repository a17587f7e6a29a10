package rename

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Outcome describes what an effect did.
type Outcome int

const (
	Applied  Outcome = iota
	Unchanged        // source and target are the same path
	Conflict         // target exists; left untouched
	Planned          // dry run
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case Conflict:
		return "conflict"
	case Planned:
		return "planned"
	}
	return "unknown"
}

// Renamer moves files to derived names. It never overwrites.
type Renamer struct {
	Deriver Deriver
	DryRun  bool
}

// Rename moves path to its canonical name and returns the resulting path.
// On conflict, dry run, or missing fields the original path is returned.
func (r Renamer) Rename(path, date, title string) (string, Outcome, error) {
	target := r.Deriver.Target(path, date, title)
	if target == path {
		return path, Unchanged, nil
	}
	if exists(target) {
		return path, Conflict, nil
	}
	if r.DryRun {
		return path, Planned, nil
	}
	if err := os.Rename(path, target); err != nil {
		return path, Unchanged, fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return target, Applied, nil
}

// CopyNoClobber copies src into dir keeping its base name. An existing
// destination is left alone and reported as Conflict.
func CopyNoClobber(src, dir string, dryRun bool) (string, Outcome, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if exists(dst) {
		return dst, Conflict, nil
	}
	if dryRun {
		return dst, Planned, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dst, Unchanged, fmt.Errorf("mkdir assets: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return dst, Unchanged, err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return dst, Conflict, nil
		}
		return dst, Unchanged, err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return dst, Unchanged, fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	if err := out.Close(); err != nil {
		return dst, Unchanged, err
	}
	return dst, Applied, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
