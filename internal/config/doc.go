// Package config provides configuration management for playlist-spreader.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Validation of option combinations
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/spreader.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	if err := settings.Validate(); err != nil {
//	    // errors.Is(err, config.ErrInvalidConfiguration)
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Minimum same-title distance, output count and seed
//   - Pass-through mode
//   - Distribution report destination
//   - Playlist format and tag reading
//   - Group report detail
package config
