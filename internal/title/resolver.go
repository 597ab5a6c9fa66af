package title

import (
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

// partSeparator splits a file name into artist/title/album parts.
const partSeparator = " - "

var (
	trackPrefixRe   = regexp.MustCompile(`(?i)^\s*(?:(?:disc|disk|cd)\s*\d+\s*[-._]?\s*)?\d{1,3}(?:[-.]\d{1,3})?(?:\s*[-._)]\s*|\s+)`)
	parenNumberRe   = regexp.MustCompile(`^\s*\(\d+\)\s*`)
	doubleSpaceRe   = regexp.MustCompile(`\s{2,}`)
	digitsOnlyRe    = regexp.MustCompile(`^\d+$`)
	leadingDigitsRe = regexp.MustCompile(`^\d+\s+`)
	discRefRe       = regexp.MustCompile(`(?i)^(?:disc|disk|cd)\s*\d+$`)
)

// KnownTitles maps canonical titles to the number of tracks already
// assigned to them.
type KnownTitles map[string]int

// Method records which rule picked the winning part.
type Method int

const (
	// MethodSinglePart means the file name had no separator.
	MethodSinglePart Method = iota

	// MethodFallbackLast means every part was filtered out and the last raw part was used.
	MethodFallbackLast

	// MethodSingleCandidate means exactly one part survived filtering.
	MethodSingleCandidate

	// MethodKnownTitle means a candidate matched an established title.
	MethodKnownTitle

	// MethodPairwise means two candidates were compared directly.
	MethodPairwise

	// MethodTournament means three or more candidates were reduced by tournament.
	MethodTournament
)

// String returns the method name used in debug logs.
func (m Method) String() string {
	switch m {
	case MethodSinglePart:
		return "single-part"
	case MethodFallbackLast:
		return "fallback-last"
	case MethodSingleCandidate:
		return "single-candidate"
	case MethodKnownTitle:
		return "known-title"
	case MethodPairwise:
		return "pairwise"
	case MethodTournament:
		return "tournament"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one path.
type Resolution struct {
	// Title is the canonical key.
	Title string

	// Parts are the raw file name parts after prefix stripping.
	Parts []string

	// Candidates are the parts that survived filtering.
	Candidates []string

	// Winner is the part Title was normalized from.
	Winner string

	// Method is the rule that chose Winner.
	Method Method
}

// Resolve returns the canonical song title for a track path.
//
// known biases the choice toward titles that other tracks already
// resolved to; pass nil when nothing is known yet.
//
//	Resolve("21 - Bryan Adams - Run Rudolph Run.mp3", nil) // "run rudolph run"
func Resolve(p string, known KnownTitles) string {
	return ResolveDetailed(p, known).Title
}

// ResolveDetailed is Resolve with the intermediate steps exposed.
func ResolveDetailed(p string, known KnownTitles) Resolution {
	name := cleanFileName(p)
	parts := strings.Split(name, partSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	res := Resolution{Parts: parts}

	if len(parts) == 1 {
		res.Winner = leadingDigitsRe.ReplaceAllString(parts[0], "")
		res.Method = MethodSinglePart
		res.Title = Normalize(res.Winner)
		return res
	}

	res.Candidates = filterParts(parts, ExtractPathContext(p))

	switch len(res.Candidates) {
	case 0:
		res.Winner = parts[len(parts)-1]
		res.Method = MethodFallbackLast
	case 1:
		res.Winner = res.Candidates[0]
		res.Method = MethodSingleCandidate
	default:
		if winner, ok := matchKnown(res.Candidates, known); ok {
			res.Winner = winner
			res.Method = MethodKnownTitle
		} else if len(res.Candidates) == 2 {
			res.Winner = ChooseWinnerFromTwoParts(res.Candidates[0], res.Candidates[1])
			res.Method = MethodPairwise
		} else {
			res.Winner = tournament(res.Candidates)
			res.Method = MethodTournament
		}
	}

	res.Title = Normalize(res.Winner)
	return res
}

// cleanFileName strips the directory, extension and any track/disc number
// prefix from p.
func cleanFileName(p string) string {
	base := path.Base(toSlash(p))
	if ext := path.Ext(base); isExtension(ext) {
		base = strings.TrimSuffix(base, ext)
	}

	base = trackPrefixRe.ReplaceAllString(base, "")
	base = parenNumberRe.ReplaceAllString(base, "")
	base = doubleSpaceRe.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	if digitsOnlyRe.MatchString(base) {
		return ""
	}
	return base
}

// isExtension rejects "extensions" that are really part of a title,
// such as the ". Vol 2" in "Hits Vol. 2".
func isExtension(ext string) bool {
	return len(ext) >= 2 && len(ext) <= 6 && !strings.ContainsAny(ext, " -_()")
}

// filterParts drops parts that cannot be the song title.
func filterParts(parts []string, ctx PathContext) []string {
	var candidates []string
	for _, part := range parts {
		switch {
		case part == "":
		case digitsOnlyRe.MatchString(part):
		case utf8.RuneCountInString(part) < 2:
		case discRefRe.MatchString(part):
		case !IsSongOpener(part) && ctx.Overlaps(part):
		default:
			candidates = append(candidates, part)
		}
	}
	return candidates
}

// matchKnown returns the candidate whose normalized form has the largest
// known group. Ties go to the earliest candidate.
func matchKnown(candidates []string, known KnownTitles) (string, bool) {
	best, bestSize := "", 0
	for _, c := range candidates {
		key := Normalize(c)
		if key == "" {
			continue
		}
		if size := known[key]; size > bestSize {
			best, bestSize = c, size
		}
	}
	return best, bestSize > 0
}

// tournament reduces candidates pairwise with doubling strides. The winner
// of each pair overwrites the left slot; unpaired slots advance unchanged.
func tournament(candidates []string) string {
	slots := make([]string, len(candidates))
	copy(slots, candidates)

	for stride := 1; stride < len(slots); stride *= 2 {
		for i := 0; i+stride < len(slots); i += 2 * stride {
			slots[i] = ChooseWinnerFromTwoParts(slots[i], slots[i+stride])
		}
	}
	return slots[0]
}

// ChooseWinnerFromTwoParts decides which of two file name parts is the
// song title. The right part wins when nothing else decides, since
// "Artist - Title" is the common layout.
func ChooseWinnerFromTwoParts(a, b string) string {
	aSong, bSong := IsSongOpener(a), IsSongOpener(b)
	aArtist, bArtist := LooksLikeNonSongOpener(a), LooksLikeNonSongOpener(b)
	aLen, bLen := utf8.RuneCountInString(a), utf8.RuneCountInString(b)

	switch {
	case aSong:
		return a
	case bSong:
		return b
	case aLen > bLen && !LooksLikeSongOpener(b) && !aArtist:
		return a
	case bLen > aLen && !LooksLikeSongOpener(a) && !bArtist:
		return b
	case aArtist && !bArtist:
		return b
	case bArtist && !aArtist:
		return a
	default:
		return b
	}
}
