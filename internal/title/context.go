package title

import (
	"path"
	"strings"
	"unicode/utf8"
)

// contextDepth is how many directory segments, innermost first,
// contribute keywords.
const contextDepth = 2

// PathContext holds artist/album keywords derived from the directories
// containing a track.
type PathContext struct {
	// Keywords are directory names, innermost first.
	Keywords []string
}

// ExtractPathContext derives keywords from the last one or two directory
// segments of p. Both slash styles are accepted. A bare file name yields
// an empty context.
//
//	ExtractPathContext("/music/Chuck Berry/Christmas/01 - Run.mp3")
//	// Keywords: ["Christmas", "Chuck Berry"]
func ExtractPathContext(p string) PathContext {
	p = toSlash(p)
	dir := path.Dir(p)

	var segments []string
	for _, s := range strings.Split(dir, "/") {
		s = strings.TrimSpace(s)
		if s == "" || s == "." || s == ".." {
			continue
		}
		segments = append(segments, s)
	}

	ctx := PathContext{}
	for i := len(segments) - 1; i >= 0 && len(ctx.Keywords) < contextDepth; i-- {
		// Single letters are library index folders ("A/", "B/"), not names.
		if utf8.RuneCountInString(segments[i]) < 2 {
			continue
		}
		ctx.Keywords = append(ctx.Keywords, segments[i])
	}

	return ctx
}

// Overlaps reports whether part and any keyword contain one another,
// ignoring case.
func (c PathContext) Overlaps(part string) bool {
	part = strings.ToLower(strings.TrimSpace(part))
	if part == "" {
		return false
	}
	for _, kw := range c.Keywords {
		kw = strings.ToLower(kw)
		if strings.Contains(kw, part) || strings.Contains(part, kw) {
			return true
		}
	}
	return false
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
