package main

import (
	"fmt"

	"github.com/handiism/playlist-spreader/internal/config"
	ioutils "github.com/handiism/playlist-spreader/internal/io"
	"github.com/handiism/playlist-spreader/internal/pipeline"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups <tracks>",
	Short: "Show which tracks are treated as versions of the same song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		res, err := pipeline.NewRunner(settings, logger, nil).GroupReport(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Print(res.Report.Format())
		return nil
	},
}

var auditStrict bool

var auditCmd = &cobra.Command{
	Use:   "audit <playlist>",
	Short: "Check an existing playlist for versions of a song placed too close together",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		report, err := pipeline.NewRunner(settings, logger, printProgress).AuditPlaylist(ctx, args[0], settings.MinDistance)
		if err != nil {
			return err
		}
		if auditStrict && !report.OK() {
			return fmt.Errorf("audit failed: %s", report.Summary())
		}
		return nil
	},
}

var linkMode string

var linkCmd = &cobra.Command{
	Use:   "link <playlist> <dir>",
	Short: "Create numbered links to the playlist entries in a directory",
	Long: `Link creates "0001 - <name>" symlinks (or copies) in <dir>, one per playlist
entry, so players that only sort by file name play the playlist in order.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := ioutils.ParseLinkMode(linkMode)
		if err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalidConfiguration, err)
		}

		ctx, cancel := signalContext()
		defer cancel()

		_, err = pipeline.NewRunner(config.DefaultSettings(), logger, printProgress).Link(ctx, args[0], args[1], mode)
		return err
	},
}

func init() {
	auditCmd.Flags().IntVarP(&minDistance, "min-distance", "d", 0, "Minimum slots between versions of the same song (default from config)")
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "Exit with an error when violations are found")

	linkCmd.Flags().StringVar(&linkMode, "mode", "auto", "How to create entries: auto, symlink or copy")
}
