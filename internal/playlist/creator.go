package playlist

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Format represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type Format int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Always starts with #EXTM3U; extended mode adds #EXTINF lines.
	FormatM3U Format = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// M3UHeader is the first line of every M3U playlist.
const M3UHeader = "#EXTM3U"

// ParseFormat maps a settings value (m3u, pls, wpl, zpl) to a Format.
// Unknown values yield FormatM3U and false.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m3u", "m3u8", "":
		return FormatM3U, true
	case "pls":
		return FormatPLS, true
	case "wpl":
		return FormatWPL, true
	case "zpl":
		return FormatZPL, true
	default:
		return FormatM3U, false
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// Entry is one line of a playlist.
type Entry struct {
	// Path is written verbatim.
	Path string

	// Title and Artist come from tags when available. Title falls back to
	// the file name without extension.
	Title  string
	Artist string

	// Duration is the length in seconds, -1 when unknown.
	Duration int
}

// Display returns "Artist - Title", or just the title without an artist.
func (e Entry) Display() string {
	if e.Artist == "" {
		return e.Title
	}
	return e.Artist + " - " + e.Title
}

// EntriesFromPaths builds entries without reading any file.
func EntriesFromPaths(paths []string) []Entry {
	entries := make([]Entry, len(paths))
	for i, p := range paths {
		entries[i] = Entry{Path: p, Title: stem(p), Duration: -1}
	}
	return entries
}

// stem returns the file name of p without directory and extension.
func stem(p string) string {
	base := path.Base(strings.ReplaceAll(p, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Creator generates playlist files in various formats.
//
// Example:
//
//	creator := NewCreator(FormatM3U, true)
//	content := creator.CreatePlaylist("Christmas", entries)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Chuck Berry - Run Rudolph Run
//	// /music/Chuck Berry/01 - Run Rudolph Run.mp3
type Creator struct {
	format   Format
	extended bool // For M3U: include EXTINF lines
}

// NewCreator creates a new Creator.
//
// extended only affects M3U output.
func NewCreator(format Format, extended bool) *Creator {
	return &Creator{
		format:   format,
		extended: extended,
	}
}

// Format returns the output format of the creator.
func (c *Creator) Format() Format {
	return c.format
}

// CreatePlaylist renders entries in order. name is used as the playlist
// title by formats that have one.
func (c *Creator) CreatePlaylist(name string, entries []Entry) string {
	switch c.format {
	case FormatPLS:
		return c.createPLS(entries)
	case FormatWPL:
		return c.createWPL(name, entries)
	case FormatZPL:
		return c.createZPL(name, entries)
	default:
		return c.createM3U(entries)
	}
}

// createM3U generates an M3U playlist:
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	/path/to/file.mp3
func (c *Creator) createM3U(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString(M3UHeader + "\n")

	for _, e := range entries {
		if c.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", e.Duration, e.Display()))
		}
		sb.WriteString(e.Path + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=/path/to/file.mp3
//	Title1=Artist - Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (c *Creator) createPLS(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.Path))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.Display()))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, e.Duration))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (c *Creator) createWPL(name string, entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(e.Path)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist with track metadata.
func (c *Creator) createZPL(name string, entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("    <meta name=\"Generator\" content=\"PlaylistSpreader\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		duration := 0
		if e.Duration > 0 {
			duration = int((time.Duration(e.Duration) * time.Second).Milliseconds())
		}
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(e.Path),
			escapeXML(e.Title),
			escapeXML(e.Artist),
			duration))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
