package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// songOpeners are lowercase words that commonly start a song title. They
// match whole words only, so "santa" does not match "Santana".
var songOpeners = []string{
	"the", "a", "an", "i", "you", "your", "my", "me", "we",
	"it", "it's", "its", "all", "what", "when", "where", "how",
	"let", "o", "oh", "do", "don't", "this", "here", "there",
	"have", "last", "baby", "blue", "white", "silent", "holy",
	"little", "joy", "deck", "jingle", "merry", "happy", "santa",
	"winter", "snow", "frosty", "rudolph", "sleigh", "feliz",
	"mistletoe", "silver", "carol",
}

// songOpenerStems match as plain prefixes: "rockin" covers "rockin'",
// "christmas" covers "christmastime" and "i'" covers "i'm" and "i'll".
var songOpenerStems = []string{
	"rockin", "christmas", "xmas", "holiday", "i'",
}

// nonSongOpeners are artist names. They win over songOpeners, which is
// what keeps "The Ronettes" from reading as a title.
var nonSongOpeners = []string{
	"andy williams", "ariana grande", "bing crosby", "bobby helms",
	"brenda lee", "bryan adams", "burl ives", "chuck berry", "darlene love",
	"dean martin", "eartha kitt", "ella fitzgerald", "elvis", "frank sinatra",
	"gene autry", "john lennon", "johnny mathis", "jose feliciano",
	"josé feliciano", "judy garland", "justin bieber", "kelly clarkson",
	"louis armstrong", "mariah carey", "michael buble", "michael bublé",
	"nat king cole", "paul mccartney", "perry como", "taylor swift",
	"tony bennett", "wham", "babyface", "carole king", "santana",
	"snow patrol", "young the giant",
	"the beach boys", "the beatles", "the carpenters", "the drifters",
	"the jackson 5", "the pogues", "the ronettes", "the supremes",
	"the temptations", "the waitresses",
}

// LooksLikeSongOpener reports whether text starts with a common song-title
// leading word, ignoring case.
func LooksLikeSongOpener(text string) bool {
	return hasAnyWord(text, songOpeners) || hasAnyPrefix(text, songOpenerStems)
}

// LooksLikeNonSongOpener reports whether text starts with a known artist
// name, ignoring case.
func LooksLikeNonSongOpener(text string) bool {
	return hasAnyWord(text, nonSongOpeners)
}

// IsSongOpener is LooksLikeSongOpener with the artist list taking priority.
func IsSongOpener(text string) bool {
	return LooksLikeSongOpener(text) && !LooksLikeNonSongOpener(text)
}

// hasAnyWord is hasAnyPrefix where the prefix must end at a word boundary.
func hasAnyWord(text string, words []string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, w := range words {
		if !strings.HasPrefix(text, w) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[len(w):])
		if next == utf8.RuneError || !(unicode.IsLetter(next) || unicode.IsDigit(next)) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(text string, prefixes []string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, p := range prefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
