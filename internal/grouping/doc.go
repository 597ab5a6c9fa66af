// Package grouping assigns canonical song titles to a whole track list
// and reports which songs appear in several versions.
//
// # Two passes
//
// Titles depend on the other tracks in the run. The first pass resolves
// every path with no prior knowledge; its group sizes are then passed to
// the second pass, so a title that many files agree on can claim the
// matching fragment of a noisy file name:
//
//	g := grouping.NewGrouper(logger)
//	res := g.Group(tracks)
//	for title, members := range res.Groups {
//	    fmt.Println(title, len(members))
//	}
//
// # Report
//
// Result.Report lists every title with more than one track, largest
// first, and optionally pairs of titles that are nearly identical
// (Jaro-Winkler similarity). The report never changes the grouping.
package grouping
