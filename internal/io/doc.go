// Package ioutils provides file system utilities.
//
// # File Operations
//
//	// Write a playlist atomically
//	err := ioutils.WriteFile(ctx, "/music/christmas.m3u", content)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Materializing a Sequence
//
// Materialize turns a shuffled sequence into a directory of numbered
// symlinks (or copies) for players that only understand folders:
//
//	results, err := ioutils.Materialize(ctx, paths, "/out", "", ioutils.LinkAuto)
package ioutils
