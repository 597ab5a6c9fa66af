package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/handiism/playlist-spreader/internal/config"
	"github.com/handiism/playlist-spreader/internal/grouping"
	ioutils "github.com/handiism/playlist-spreader/internal/io"
	"github.com/handiism/playlist-spreader/internal/model"
	"github.com/handiism/playlist-spreader/internal/playlist"
	"github.com/handiism/playlist-spreader/internal/shuffle"
	"go.uber.org/zap"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a run progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ErrInputEmpty is returned when the input holds no usable track.
var ErrInputEmpty = errors.New("input contains no tracks")

// Summary describes a completed run.
type Summary struct {
	RunID string

	// Seed is the seed the shuffle used. SeedGiven is false when it was
	// picked at random. Both are zero in pass-through mode.
	Seed      uint64
	SeedGiven bool

	PassThrough bool
	InputTracks int

	// Grouping and Shuffle are nil in pass-through mode.
	Grouping *grouping.Result
	Shuffle  *shuffle.Result
	Audit    *shuffle.AuditReport

	Placements []model.Placement

	PlaylistPath     string
	DistributionPath string
}

// Runner executes shuffle runs with fixed settings.
//
// Example:
//
//	runner := NewRunner(settings, logger, func(e ProgressEvent) { fmt.Println(e.Message) })
//	summary, err := runner.Run(ctx, "christmas.csv", "")
type Runner struct {
	settings   *config.Settings
	logger     *zap.Logger
	tagReader  *playlist.TagReader
	onProgress func(ProgressEvent)
}

// NewRunner creates a Runner. A nil logger discards diagnostics and a nil
// onProgress discards progress events.
func NewRunner(settings *config.Settings, logger *zap.Logger, onProgress func(ProgressEvent)) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		settings:   settings,
		logger:     logger,
		tagReader:  playlist.NewTagReader(playlist.DefaultTagWorkers),
		onProgress: onProgress,
	}
}

// OutputPath returns the default playlist path for an input file:
// "<dir>/<stem>.shuffled<ext>".
func OutputPath(input string, format playlist.Format) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".shuffled" + format.Extension()
}

// Run reads input, groups and shuffles it (or passes it through), audits
// the result and writes the playlist to output, or to OutputPath(input)
// when output is empty. Nothing is written unless every step succeeds.
func (r *Runner) Run(ctx context.Context, input, output string) (*Summary, error) {
	if err := r.settings.Validate(); err != nil {
		return nil, err
	}

	s := r.settings
	sum := &Summary{RunID: uuid.NewString(), PassThrough: s.PassThrough}
	logger := r.logger.With(zap.String("run_id", sum.RunID))

	tracks, err := r.load(input)
	if err != nil {
		return nil, err
	}
	sum.InputTracks = len(tracks)

	if s.PassThrough {
		sum.Placements = shuffle.PassThrough(tracks, s.Count)
		r.progress(ProgressEvent{Message: fmt.Sprintf("Pass-through: keeping input order of %d tracks", len(sum.Placements)), Level: LevelInfo})
	} else {
		if err := r.shuffle(sum, tracks, logger); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := s.Format()
	if output == "" {
		output = OutputPath(input, format)
	}
	content, err := r.render(ctx, filepath.Dir(input), output, format, sum.Placements)
	if err != nil {
		return nil, err
	}

	var distribution []byte
	if sum.Shuffle != nil && s.DistributionReport != "" {
		var buf bytes.Buffer
		if err := playlist.WriteDistribution(&buf, sum.Shuffle.Distribution); err != nil {
			return nil, fmt.Errorf("rendering distribution report: %w", err)
		}
		distribution = buf.Bytes()
	}

	files := []ioutils.PendingFile{{Path: output, Data: []byte(content)}}
	if distribution != nil {
		files = append(files, ioutils.PendingFile{Path: s.DistributionReport, Data: distribution})
	}
	if err := ioutils.WriteFiles(ctx, files...); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	sum.PlaylistPath = output
	r.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %d entries to %s", len(sum.Placements), output), Level: LevelSuccess})
	if distribution != nil {
		sum.DistributionPath = s.DistributionReport
		r.progress(ProgressEvent{Message: fmt.Sprintf("Wrote distribution report to %s", s.DistributionReport), Level: LevelSuccess})
	}

	logger.Info("run complete",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("tracks", sum.InputTracks),
		zap.Int("placements", len(sum.Placements)),
		zap.Bool("pass_through", sum.PassThrough))

	return sum, nil
}

func (r *Runner) load(input string) ([]*model.Track, error) {
	tracks, err := playlist.ReadTracks(input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInputEmpty, input)
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d tracks from %s", len(tracks), input), Level: LevelInfo})
	return tracks, nil
}

func (r *Runner) shuffle(sum *Summary, tracks []*model.Track, logger *zap.Logger) error {
	s := r.settings

	sum.Grouping = r.group(tracks, logger)

	if s.Seed != nil {
		sum.Seed, sum.SeedGiven = uint64(*s.Seed), true
	} else {
		sum.Seed = shuffle.RandomSeed()
	}

	count := s.Count
	if count == 0 {
		count = len(tracks)
	}

	shuffler := shuffle.NewShuffler(shuffle.NewRand(sum.Seed), logger)
	res, err := shuffler.Shuffle(sum.Grouping.Tracks, s.MinDistance, count)
	if err != nil {
		return err
	}
	sum.Shuffle = res
	sum.Placements = res.Placements
	r.progress(ProgressEvent{Message: fmt.Sprintf("Shuffled %d slots (seed %d, min distance %d)", count, sum.Seed, s.MinDistance), Level: LevelInfo})

	for _, rel := range res.Relaxations {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Slot %d: placed %q after %d rejected draws", rel.Slot, rel.Title, rel.Attempts), Level: LevelWarning})
	}

	sum.Audit = shuffle.Audit(res.Placements, s.MinDistance)
	level := LevelSuccess
	if !sum.Audit.OK() {
		level = LevelWarning
	}
	r.progress(ProgressEvent{Message: "Audit: " + sum.Audit.Summary(), Level: level})
	if unexplained := sum.Audit.Unexplained(res.Relaxations); len(unexplained) > 0 {
		logger.Warn("violations without a matching relaxation", zap.Int("count", len(unexplained)))
	}

	if s.DistributionReport != "" && !s.SuppressDistribution {
		for _, st := range res.Distribution.Stats {
			r.progress(ProgressEvent{
				Message: fmt.Sprintf("%s: %d placements, expected %.3f, observed %.3f", st.Path, st.Count, st.Expected, st.Observed),
				Level:   LevelVerbose,
			})
		}
	}

	return nil
}

func (r *Runner) group(tracks []*model.Track, logger *zap.Logger) *grouping.Result {
	grouper := grouping.NewGrouper(logger,
		grouping.WithMaxExamples(r.settings.MaxReportExamples),
		grouping.WithVariantThreshold(r.settings.VariantThreshold))
	res := grouper.Group(tracks)

	r.progress(ProgressEvent{Message: fmt.Sprintf("Found %d titles, %d with more than one version", len(res.Groups), len(res.Report.Duplicates)), Level: LevelInfo})
	for _, line := range strings.Split(strings.TrimRight(res.Report.Format(), "\n"), "\n") {
		r.progress(ProgressEvent{Message: line, Level: LevelVerbose})
	}
	return res
}

// render builds the playlist text, reading tags first when enabled.
// Relative track paths are resolved against baseDir for tag reading.
func (r *Runner) render(ctx context.Context, baseDir, output string, format playlist.Format, placements []model.Placement) (string, error) {
	paths := model.Paths(placements)

	entries := playlist.EntriesFromPaths(paths)
	if r.settings.ReadTags {
		var err error
		entries, err = r.tagReader.Entries(ctx, baseDir, paths)
		if err != nil {
			return "", err
		}
	}

	name := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	creator := playlist.NewCreator(format, r.settings.M3UExtended)
	return creator.CreatePlaylist(name, entries), nil
}

// GroupReport groups the tracks of input without shuffling anything.
func (r *Runner) GroupReport(ctx context.Context, input string) (*grouping.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracks, err := r.load(input)
	if err != nil {
		return nil, err
	}
	return r.group(tracks, r.logger.With(zap.String("run_id", uuid.NewString()))), nil
}

// AuditPlaylist checks an existing playlist: its tracks are grouped and
// every pair of same-title entries closer than minDistance is reported.
func (r *Runner) AuditPlaylist(ctx context.Context, input string, minDistance int) (*shuffle.AuditReport, error) {
	if minDistance < 0 {
		return nil, fmt.Errorf("%w: min distance must not be negative, got %d", config.ErrInvalidConfiguration, minDistance)
	}
	res, err := r.GroupReport(ctx, input)
	if err != nil {
		return nil, err
	}

	placements := make([]model.Placement, len(res.Tracks))
	for i, t := range res.Tracks {
		placements[i] = model.Placement{Slot: i, Track: t}
	}

	report := shuffle.Audit(placements, minDistance)
	level := LevelSuccess
	if !report.OK() {
		level = LevelWarning
	}
	r.progress(ProgressEvent{Message: "Audit: " + report.Summary(), Level: level})
	for _, v := range report.Violations {
		r.progress(ProgressEvent{
			Message: fmt.Sprintf("%q at slots %d and %d (distance %d)", v.Title, v.First+1, v.Second+1, v.Distance),
			Level:   LevelVerbose,
		})
	}
	return report, nil
}

// Link materializes the playlist at input as numbered files in dir.
// Relative entries are resolved against the playlist's directory.
func (r *Runner) Link(ctx context.Context, input, dir string, mode ioutils.LinkMode) ([]ioutils.LinkResult, error) {
	tracks, err := r.load(input)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(tracks))
	for i, t := range tracks {
		paths[i] = t.Path
	}

	results, err := ioutils.Materialize(ctx, paths, dir, filepath.Dir(input), mode)
	if err != nil {
		return results, err
	}

	copied := 0
	for _, res := range results {
		if res.Copied {
			copied++
		}
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Created %d files in %s (%d copies)", len(results), dir, copied), Level: LevelSuccess})
	return results, nil
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
