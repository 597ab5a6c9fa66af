package playlist

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"golang.org/x/sync/errgroup"
)

// DefaultTagWorkers is the number of files read in parallel by a TagReader.
const DefaultTagWorkers = 8

// TagReader fills playlist entries from ID3 tags.
//
// Only the title and artist frames are parsed. Files that are missing,
// unreadable or untagged keep their file-name title, so reading tags never
// fails a run.
//
// Example:
//
//	reader := NewTagReader(DefaultTagWorkers)
//	entries, err := reader.Entries(ctx, "/music", paths)
type TagReader struct {
	workers int
}

// NewTagReader creates a TagReader reading at most workers files at once.
func NewTagReader(workers int) *TagReader {
	if workers < 1 {
		workers = DefaultTagWorkers
	}
	return &TagReader{workers: workers}
}

// Entries returns one entry per path, in order. Relative paths are opened
// against baseDir; entry paths stay as given. The only error returned is a
// cancelled context.
func (r *TagReader) Entries(ctx context.Context, baseDir string, paths []string) ([]Entry, error) {
	entries := EntriesFromPaths(paths)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range entries {
		if !hasID3(entries[i].Path) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			readTags(&entries[i], resolve(baseDir, entries[i].Path))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func hasID3(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), ".mp3")
}

// resolve joins relative paths onto baseDir.
func resolve(baseDir, p string) string {
	if baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// readTags overwrites the title and artist of e from the ID3 tag at path.
func readTags(e *Entry, path string) {
	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Title", "Artist"},
	})
	if err != nil {
		return
	}
	defer tag.Close()

	if title := strings.TrimSpace(tag.Title()); title != "" {
		e.Title = title
	}
	e.Artist = strings.TrimSpace(tag.Artist())
}
