// Package playlist reads track lists and writes the results of a
// shuffle run.
//
// # Input
//
// ReadTracks loads a CSV/TSV table or a plain list / M3U file:
//
//	tracks, err := playlist.ReadTracks("christmas.csv")
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := playlist.NewCreator(playlist.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("christmas", entries)
//
// Entries can be enriched from ID3 tags, read in parallel:
//
//	entries, err := playlist.NewTagReader(8).Entries(ctx, "/music", paths)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
//
// # Distribution Report
//
// WriteDistribution writes the per-track placement statistics of a
// shuffle as CSV.
package playlist
