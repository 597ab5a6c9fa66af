package title

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	creditRe        = regexp.MustCompile(`(?i)(?:\sby\s|\s(?:ft|feat|featuring)\b).*$`)
	parenRe         = regexp.MustCompile(`\([^)]*\)`)
	bracketRe       = regexp.MustCompile(`\[[^\]]*\]`)
	leadingNumRe    = regexp.MustCompile(`^\s*\d+(?:\s*[-._]+\s*|\s+)`)
	leadingParenRe  = regexp.MustCompile(`^\s*\(\d+\)\s*`)
	leadingDotRe    = regexp.MustCompile(`^\s*\.(?:\s+|$)`)
	connectorRe     = regexp.MustCompile(`[_\-:]+`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// Normalize turns a title fragment into a canonical lowercase key.
//
// The rules run in order, each on the previous result:
//  1. drop everything from a " by ", " ft" or " feat" credit onwards
//  2. drop (...) and [...] annotations
//  3. drop a leading track number
//  4. drop a leading lone "."
//  5. turn runs of _ - : into a space, collapse whitespace, trim
//  6. lowercase
//
// The key may be empty, e.g. for a fragment that was only a track number.
//
//	Normalize("Last Christmas (Remastered) ft. George Michael") // "last christmas"
func Normalize(text string) string {
	s := norm.NFC.String(text)

	s = creditRe.ReplaceAllString(s, "")

	s = parenRe.ReplaceAllString(s, "")
	s = bracketRe.ReplaceAllString(s, "")

	s = leadingNumRe.ReplaceAllString(s, "")
	s = leadingParenRe.ReplaceAllString(s, "")

	s = leadingDotRe.ReplaceAllString(s, "")

	s = connectorRe.ReplaceAllString(s, " ")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return strings.ToLower(s)
}
