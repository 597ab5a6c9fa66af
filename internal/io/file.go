package ioutils

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidCharsRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDotsRe = regexp.MustCompile(`\.+$`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The copy stops early when ctx is cancelled.
//
// Example:
//
//	err := CopyFile(ctx, "/music/Silent Night.mp3", "/out/0001 - Silent Night.mp3")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, &ctxReader{ctx: ctx, r: sourceFile}); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// WriteFile writes data to path atomically.
//
// The data goes to a temporary file in the same directory, which is
// renamed over path once fully written. A failed write leaves any
// existing file at path untouched.
//
// Example:
//
//	err := WriteFile(ctx, "/music/christmas.m3u", []byte("#EXTM3U\n..."))
func WriteFile(ctx context.Context, path string, data []byte) error {
	return WriteFiles(ctx, PendingFile{Path: path, Data: data})
}

// PendingFile is one file of a WriteFiles batch.
type PendingFile struct {
	Path string
	Data []byte
}

// WriteFiles writes several files as one unit: every file is first
// written to a temporary file next to its target, and targets are only
// replaced once all temporary files were written. If a rename fails, the
// targets already renamed in this batch are removed again.
//
// Example:
//
//	err := WriteFiles(ctx,
//	    PendingFile{Path: "christmas.m3u", Data: playlist},
//	    PendingFile{Path: "dist.csv", Data: report})
func WriteFiles(ctx context.Context, files ...PendingFile) error {
	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			cleanup()
			return err
		}
		tmp, err := stage(f.Path, f.Data)
		if err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tmp)
	}

	for i, tmp := range temps {
		if err := os.Rename(tmp, files[i].Path); err != nil {
			for _, done := range files[:i] {
				os.Remove(done.Path)
			}
			cleanup()
			return err
		}
	}
	return nil
}

// stage writes data to a new temporary file beside path and returns its name.
func stage(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")     // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")           // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = invalidCharsRe.ReplaceAllString(name, "_")
	name = trailingDotsRe.ReplaceAllString(name, "")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
