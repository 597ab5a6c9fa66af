package playlist

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/playlist-spreader/internal/model"
)

// pathColumns are header names accepted for the path column, in priority order.
var pathColumns = []string{"path", "file", "filename", "location"}

const weightColumn = "weight"

// ReadTracks loads tracks from a file. .csv and .tsv files are read as
// tables; anything else as a list with one path per line.
//
// Records with a blank path are dropped. An empty result is not an error
// here; callers decide whether it is.
func ReadTracks(path string) ([]*model.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadTable(f, ',')
	case ".tsv":
		return ReadTable(f, '\t')
	default:
		return ReadList(f)
	}
}

// ReadTable reads delimited rows.
//
// When the first row names a path column (path, file, filename or
// location) it is a header, and an optional "weight" column supplies
// weights. Otherwise there is no header: column 0 is the path and column
// 1, if present, the weight.
func ReadTable(r io.Reader, comma rune) ([]*model.Track, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\ufeff")
	}

	pathCol, weightCol, isHeader := locateColumns(first)

	var tracks []*model.Track
	add := func(row []string) {
		if pathCol >= len(row) {
			return
		}
		p := strings.TrimSpace(row[pathCol])
		if p == "" {
			return
		}
		weight := model.DefaultWeight
		if weightCol >= 0 && weightCol < len(row) {
			weight = model.ParseWeight(row[weightCol])
		}
		tracks = append(tracks, model.NewTrack(p, weight, row))
	}

	if !isHeader {
		add(first)
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}
		add(row)
	}

	return tracks, nil
}

// locateColumns finds the path and weight columns of a header row.
func locateColumns(header []string) (pathCol, weightCol int, isHeader bool) {
	pathCol, weightCol = -1, -1

	names := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := names[name]; !dup {
			names[name] = i
		}
	}

	for _, candidate := range pathColumns {
		if i, ok := names[candidate]; ok {
			pathCol = i
			break
		}
	}
	if pathCol < 0 {
		return 0, 1, false
	}

	if i, ok := names[weightColumn]; ok {
		weightCol = i
	}
	return pathCol, weightCol, true
}

// ReadList reads one path per line, skipping blank lines and # comments
// such as M3U directives. Every track gets the default weight.
func ReadList(r io.Reader) ([]*model.Track, error) {
	var tracks []*model.Track

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for first := true; sc.Scan(); first = false {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tracks = append(tracks, model.NewTrack(line, model.DefaultWeight, []string{line}))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return tracks, nil
}
