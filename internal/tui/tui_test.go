package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/playlist-spreader/internal/config"
	"github.com/handiism/playlist-spreader/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_ToggleOptions(t *testing.T) {
	m := NewModel(nil, nil)
	assert.True(t, m.extended)
	assert.False(t, m.passThrough)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.True(t, m.passThrough)
	assert.False(t, m.extended)
	assert.True(t, m.verbose)
	assert.Empty(t, m.textInput.Value(), "option keys must not be typed into the input")
	assert.Contains(t, m.View(), "[×] Pass-through")
}

func TestModel_RunSettingsDropsShuffleOptionsInPassThrough(t *testing.T) {
	base := config.DefaultSettings()
	seed := int64(9)
	base.Seed = &seed
	base.DistributionReport = "dist.csv"

	m := NewModel(base, nil)
	m.passThrough = true

	s := m.runSettings()
	assert.NoError(t, s.Validate())
	assert.Nil(t, s.Seed)
	assert.Empty(t, s.DistributionReport)
	assert.Equal(t, "dist.csv", base.DistributionReport, "base settings are not modified")
}

func TestModel_VerboseFilter(t *testing.T) {
	m := NewModel(nil, nil)
	m.state = StateRunning
	m.events = make(chan pipeline.ProgressEvent)

	m = update(t, m, ProgressMsg{Event: pipeline.ProgressEvent{Message: "detail", Level: pipeline.LevelVerbose}})
	m = update(t, m, ProgressMsg{Event: pipeline.ProgressEvent{Message: "loaded", Level: pipeline.LevelInfo}})

	require.Len(t, m.logs, 1)
	assert.Equal(t, "loaded", m.logs[0].Message)
}

func TestModel_Run(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "list.m3u")
	require.NoError(t, os.WriteFile(input, []byte("/m/A/Silent Night.mp3\n/m/B/Jingle Bell Rock.mp3\n/m/C/Silent Night.mp3\n"), 0644))

	settings := config.DefaultSettings()
	seed := int64(4)
	settings.Seed = &seed
	settings.MinDistance = 1

	m := NewModel(settings, nil)
	m.textInput.SetValue(input)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateRunning, m.state)

	done := m.startRun()()
	for range m.events {
	}

	m = update(t, m, done)
	require.Equal(t, StateComplete, m.state, "error: %v", m.err)

	view := m.View()
	assert.Contains(t, view, "Playlist written")
	assert.Contains(t, view, "Seed: 4")
	assert.FileExists(t, strings.TrimSuffix(input, ".m3u")+".shuffled.m3u")
}

func TestModel_CancelKeepsErrorView(t *testing.T) {
	m := NewModel(nil, nil)
	m.state = StateRunning

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, RunDoneMsg{Summary: &pipeline.Summary{}})

	assert.Equal(t, StateError, m.state)
	assert.ErrorIs(t, m.err, errCancelled)
}
