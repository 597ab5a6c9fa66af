package grouping

import (
	"github.com/handiism/playlist-spreader/internal/model"
	"github.com/handiism/playlist-spreader/internal/title"
	"go.uber.org/zap"
)

const (
	// DefaultMaxExamples is the number of example file names listed per group.
	DefaultMaxExamples = 3

	// DefaultVariantThreshold is the Jaro-Winkler similarity above which two
	// distinct titles are reported as possible variants.
	DefaultVariantThreshold = 0.92
)

// Groups maps a canonical title to the tracks that share it, in input order.
type Groups map[string][]*model.NormalizedTrack

// Sizes returns the member count of every group.
func (g Groups) Sizes() title.KnownTitles {
	sizes := make(title.KnownTitles, len(g))
	for key, members := range g {
		sizes[key] = len(members)
	}
	return sizes
}

// Result is the outcome of grouping a track list.
type Result struct {
	// Tracks are the input tracks with their final titles, in input order.
	Tracks []*model.NormalizedTrack

	// Groups indexes Tracks by title.
	Groups Groups

	// Report summarizes Groups for display.
	Report *Report
}

// Grouper assigns canonical titles to tracks in two passes.
//
// The first pass resolves every track with nothing known. Its group sizes
// then bias the second pass, which is the one returned. No further passes
// are run.
//
// Example:
//
//	g := NewGrouper(logger, WithMaxExamples(5))
//	res := g.Group(tracks)
//	fmt.Print(res.Report.Format())
type Grouper struct {
	logger           *zap.Logger
	maxExamples      int
	variantThreshold float64
}

// Option configures a Grouper.
type Option func(*Grouper)

// WithMaxExamples sets how many file names each report group lists.
func WithMaxExamples(n int) Option {
	return func(g *Grouper) {
		if n >= 0 {
			g.maxExamples = n
		}
	}
}

// WithVariantThreshold sets the similarity for variant hints. 0 disables them.
func WithVariantThreshold(threshold float64) Option {
	return func(g *Grouper) {
		g.variantThreshold = threshold
	}
}

// NewGrouper creates a Grouper. A nil logger discards diagnostics.
func NewGrouper(logger *zap.Logger, opts ...Option) *Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Grouper{
		logger:           logger,
		maxExamples:      DefaultMaxExamples,
		variantThreshold: DefaultVariantThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Group resolves the title of every track.
func (g *Grouper) Group(tracks []*model.Track) *Result {
	provisional := make(title.KnownTitles)
	firstPass := make([]string, len(tracks))
	for i, track := range tracks {
		key := title.Resolve(track.Path, nil)
		firstPass[i] = key
		provisional[key]++
	}

	res := &Result{
		Tracks: make([]*model.NormalizedTrack, 0, len(tracks)),
		Groups: make(Groups),
	}

	changed := 0
	for i, track := range tracks {
		resolution := title.ResolveDetailed(track.Path, provisional)
		if resolution.Title != firstPass[i] {
			changed++
			g.logger.Debug("title re-resolved with known titles",
				zap.String("path", track.Path),
				zap.String("first_pass", firstPass[i]),
				zap.String("title", resolution.Title),
				zap.Stringer("method", resolution.Method))
		}

		nt := &model.NormalizedTrack{
			Path:   track.Path,
			Title:  resolution.Title,
			Source: track,
		}
		res.Tracks = append(res.Tracks, nt)
		res.Groups[nt.Title] = append(res.Groups[nt.Title], nt)
	}

	res.Report = buildReport(res, g.maxExamples, g.variantThreshold)

	g.logger.Info("grouped tracks",
		zap.Int("tracks", len(tracks)),
		zap.Int("groups", len(res.Groups)),
		zap.Int("variant_groups", len(res.Report.Duplicates)),
		zap.Int("re_resolved", changed))

	return res
}
