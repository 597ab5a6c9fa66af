package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LinkMode selects how Materialize creates the numbered files.
type LinkMode int

const (
	// LinkAuto tries a symlink first and falls back to a copy.
	LinkAuto LinkMode = iota

	// LinkSymlink only creates symlinks.
	LinkSymlink

	// LinkCopy always copies.
	LinkCopy
)

// ParseLinkMode maps "auto", "symlink" or "copy" to a LinkMode.
func ParseLinkMode(s string) (LinkMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return LinkAuto, nil
	case "symlink":
		return LinkSymlink, nil
	case "copy":
		return LinkCopy, nil
	default:
		return LinkAuto, fmt.Errorf("unknown link mode %q", s)
	}
}

// LinkResult describes one materialized slot.
type LinkResult struct {
	Source string
	Target string
	Copied bool
}

// LinkName returns the file name used for slot (0-based) of a sequence:
// the 1-based slot padded to four digits, then the sanitized base name of
// source.
//
//	LinkName(0, "/music/Silent: Night.mp3") // "0001 - Silent_ Night.mp3"
func LinkName(slot int, source string) string {
	base := path.Base(strings.ReplaceAll(source, `\`, "/"))
	return fmt.Sprintf("%04d - %s", slot+1, SanitizeFileName(base))
}

// Materialize creates one numbered file per path in dir so that a plain
// alphabetical listing plays the sequence in order. Existing files with
// the same name are replaced. Relative sources are resolved against
// baseDir.
func Materialize(ctx context.Context, paths []string, dir, baseDir string, mode LinkMode) ([]LinkResult, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}

	results := make([]LinkResult, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		src := p
		if !filepath.IsAbs(src) && baseDir != "" {
			src = filepath.Join(baseDir, src)
		}
		target := filepath.Join(dir, LinkName(i, p))

		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return results, err
		}

		copied, err := link(ctx, src, target, mode)
		if err != nil {
			return results, fmt.Errorf("slot %d: %w", i, err)
		}
		results = append(results, LinkResult{Source: src, Target: target, Copied: copied})
	}

	return results, nil
}

func link(ctx context.Context, src, target string, mode LinkMode) (copied bool, err error) {
	if mode != LinkCopy {
		abs, err := filepath.Abs(src)
		if err != nil {
			return false, err
		}
		err = os.Symlink(abs, target)
		if err == nil || mode == LinkSymlink {
			return false, err
		}
	}
	return true, CopyFile(ctx, src, target)
}
