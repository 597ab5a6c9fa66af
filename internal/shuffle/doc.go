// Package shuffle orders grouped tracks so that versions of the same
// song are spread out.
//
// # Weighted index
//
// Index holds cumulative weights and finds the track owning a random
// position by binary search, so weighted sampling needs no per-unit array:
//
//	idx := shuffle.NewIndex([]float64{3, 4, 3})
//	idx.Lookup(rng.Float64() * idx.Total())
//
// # Constrained shuffle
//
// Shuffler draws tracks by weight and rejects a draw when its title was
// placed fewer than minDistance slots ago. After MaxAttempts consecutive
// rejections the next draw is placed anyway and recorded as a Relaxation:
//
//	s := shuffle.NewShuffler(shuffle.NewRand(seed), logger)
//	res, err := s.Shuffle(grouped.Tracks, 5, 100)
//
// All randomness comes from the *rand.Rand given to NewShuffler, so a
// fixed seed reproduces the output exactly.
//
// # Audit
//
// Audit rescans an output sequence and lists same-title pairs that are
// too close. Every violation of a shuffle result maps to a Relaxation.
package shuffle
