package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/playlist-spreader/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathsAndWeights(tracks []*model.Track) ([]string, []float64) {
	paths := make([]string, len(tracks))
	weights := make([]float64, len(tracks))
	for i, t := range tracks {
		paths[i] = t.Path
		weights[i] = t.Weight
	}
	return paths, weights
}

func TestReadTable(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		comma       rune
		wantPaths   []string
		wantWeights []float64
	}{
		{
			name:        "header with weight",
			input:       "\ufeffTitle,Path,Weight\nx,/m/a.mp3,3\ny,/m/b.mp3,\nz,  ,4\nw,/m/c.mp3,-2\n",
			comma:       ',',
			wantPaths:   []string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"},
			wantWeights: []float64{3, 1, 1},
		},
		{
			name:        "header without weight",
			input:       "location\n/m/a.mp3\n/m/b.mp3\n",
			comma:       ',',
			wantPaths:   []string{"/m/a.mp3", "/m/b.mp3"},
			wantWeights: []float64{1, 1},
		},
		{
			name:        "no header",
			input:       "/m/a.mp3,2\n/m/b.mp3\n",
			comma:       ',',
			wantPaths:   []string{"/m/a.mp3", "/m/b.mp3"},
			wantWeights: []float64{2, 1},
		},
		{
			name:        "tab separated with quotes",
			input:       "file\tweight\n\"/m/Rock, Paper.mp3\"\t2.5\n",
			comma:       '\t',
			wantPaths:   []string{"/m/Rock, Paper.mp3"},
			wantWeights: []float64{2.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks, err := ReadTable(strings.NewReader(tt.input), tt.comma)
			require.NoError(t, err)

			paths, weights := pathsAndWeights(tracks)
			assert.Equal(t, tt.wantPaths, paths)
			assert.Equal(t, tt.wantWeights, weights)
		})
	}
}

func TestReadTable_KeepsOriginalRow(t *testing.T) {
	tracks, err := ReadTable(strings.NewReader("path,weight,comment\n/m/a.mp3,2,keep me\n"), ',')
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, []string{"/m/a.mp3", "2", "keep me"}, tracks[0].OriginalRow)
}

func TestReadTable_Empty(t *testing.T) {
	tracks, err := ReadTable(strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestReadList(t *testing.T) {
	input := "#EXTM3U\n#EXTINF:-1,Someone - Something\n/m/a.mp3\n\n   \n/m/b.mp3\r\n"

	tracks, err := ReadList(strings.NewReader(input))
	require.NoError(t, err)

	paths, weights := pathsAndWeights(tracks)
	assert.Equal(t, []string{"/m/a.mp3", "/m/b.mp3"}, paths)
	assert.Equal(t, []float64{1, 1}, weights)
}

func TestReadTracks(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("path,weight\n/m/a.mp3,2\n"), 0644))
	m3uPath := filepath.Join(dir, "in.m3u")
	require.NoError(t, os.WriteFile(m3uPath, []byte("#EXTM3U\n/m/a.mp3\n"), 0644))

	tracks, err := ReadTracks(csvPath)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 2.0, tracks[0].Weight)

	tracks, err = ReadTracks(m3uPath)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "/m/a.mp3", tracks[0].Path)

	_, err = ReadTracks(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
