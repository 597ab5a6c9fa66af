// Package model defines the core data structures shared by the
// playlist-spreader packages.
//
// # Track
//
// Track is an input record with a path and a relative play-weight:
//
//	track := model.NewTrack("/music/Brenda Lee/Rockin Around.mp3", model.ParseWeight("2"), row)
//
// # NormalizedTrack
//
// NormalizedTrack is a Track together with the canonical title derived
// from its file name by the title and grouping packages. Tracks that
// share a title are variants of the same song.
//
// # Placement
//
// Placement is one output slot produced by the shuffle:
//
//	for _, p := range result.Placements {
//	    fmt.Println(p.Slot, p.Track.Path)
//	}
package model
