package shuffle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/handiism/playlist-spreader/internal/model"
	"go.uber.org/zap"
)

const (
	// DefaultMinDistance is the default number of slots between two
	// versions of the same song.
	DefaultMinDistance = 5

	// MaxAttempts is the number of consecutive rejected draws after which
	// the distance rule is waived for one placement.
	MaxAttempts = 100
)

var (
	// ErrNoTracks is returned when there is nothing to shuffle.
	ErrNoTracks = errors.New("no tracks to shuffle")

	// ErrInvalidCount is returned for a target count below 1.
	ErrInvalidCount = errors.New("target count must be at least 1")

	// ErrInvalidDistance is returned for a negative minimum distance.
	ErrInvalidDistance = errors.New("minimum distance must not be negative")
)

// NewRand returns the pseudo-random source used by a Shuffler.
// The same seed always yields the same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed returns a seed derived from the clock, for runs without an
// explicit seed. Callers should report it so the run can be repeated.
func RandomSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Relaxation records a placement made after MaxAttempts rejected draws,
// ignoring the distance rule.
type Relaxation struct {
	Slot     int
	Title    string
	Path     string
	Attempts int
}

// Result is the output of a shuffle run.
type Result struct {
	// Placements is the ordered output.
	Placements []model.Placement

	// Relaxations lists the placements that broke the distance rule.
	Relaxations []Relaxation

	// Distribution holds per-path placement statistics.
	Distribution *Distribution
}

// Shuffler draws weighted random tracks while keeping versions of the
// same song apart.
//
// A Shuffler is not safe for concurrent use: it owns its random source.
//
// Example:
//
//	s := NewShuffler(NewRand(42), logger)
//	res, err := s.Shuffle(tracks, DefaultMinDistance, len(tracks))
type Shuffler struct {
	rng         *rand.Rand
	logger      *zap.Logger
	maxAttempts int
}

// NewShuffler creates a Shuffler drawing from rng. A nil logger discards
// relaxation warnings.
func NewShuffler(rng *rand.Rand, logger *zap.Logger) *Shuffler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shuffler{
		rng:         rng,
		logger:      logger,
		maxAttempts: MaxAttempts,
	}
}

// Shuffle places count tracks. Tracks may repeat: draws are made with
// replacement in proportion to weight. A track is accepted only when its
// title was last placed at least minDistance slots earlier, unless more
// than MaxAttempts draws in a row were rejected.
func (s *Shuffler) Shuffle(tracks []*model.NormalizedTrack, minDistance, count int) (*Result, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if minDistance < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDistance, minDistance)
	}

	idx := BuildIndex(tracks)
	total := idx.Total()

	res := &Result{Placements: make([]model.Placement, 0, count)}
	lastUsed := make(map[string]int)
	slotsByPath := make(map[string][]int)
	attempts := 0

	for len(res.Placements) < count {
		track := tracks[idx.Lookup(s.rng.Float64()*total)]
		slot := len(res.Placements)

		last, seen := lastUsed[track.Title]
		eligible := !seen || slot-last >= minDistance

		if !eligible {
			if attempts <= s.maxAttempts {
				attempts++
				continue
			}
			res.Relaxations = append(res.Relaxations, Relaxation{
				Slot:     slot,
				Title:    track.Title,
				Path:     track.Path,
				Attempts: attempts,
			})
			s.logger.Warn("distance constraint relaxed",
				zap.Int("slot", slot),
				zap.String("title", track.Title),
				zap.String("path", track.Path),
				zap.Int("attempts", attempts),
				zap.Int("distance", slot-last))
		}

		res.Placements = append(res.Placements, model.Placement{Slot: slot, Track: track})
		lastUsed[track.Title] = slot
		slotsByPath[track.Path] = append(slotsByPath[track.Path], slot)
		attempts = 0
	}

	res.Distribution = newDistribution(tracks, total, count, slotsByPath)

	s.logger.Debug("shuffle complete",
		zap.Int("placements", count),
		zap.Int("relaxations", len(res.Relaxations)),
		zap.Int("min_distance", minDistance))

	return res, nil
}

// PassThrough returns tracks in input order, truncated to count when
// count is between 1 and len(tracks). Titles are left empty.
func PassThrough(tracks []*model.Track, count int) []model.Placement {
	n := len(tracks)
	if count > 0 && count < n {
		n = count
	}

	placements := make([]model.Placement, n)
	for i := 0; i < n; i++ {
		placements[i] = model.Placement{
			Slot:  i,
			Track: &model.NormalizedTrack{Path: tracks[i].Path, Source: tracks[i]},
		}
	}
	return placements
}
