// Package title derives a canonical song identity from an arbitrarily
// formatted track path.
//
// # Normalization
//
// Normalize strips credits, annotations, track numbers and connector
// punctuation from a fragment and lowercases it:
//
//	title.Normalize("Jingle Bell Rock (Live) [2009]") // "jingle bell rock"
//
// # Resolution
//
// Resolve splits a file name on " - ", drops parts that are numbers,
// disc references or match the containing directories, then picks the
// part most likely to be the song title:
//
//	title.Resolve("/xmas/Chuck Berry/01 - Run Rudolph Run - Chuck Berry.mp3", nil)
//	// "run rudolph run"
//
// When several parts remain, a part whose normalized form is already a
// known title wins; otherwise the parts are compared with
// ChooseWinnerFromTwoParts, directly for two parts and through a fixed
// left-to-right tournament for more.
//
// All functions in this package are pure.
package title
