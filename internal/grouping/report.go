package grouping

import (
	"cmp"
	"fmt"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// maxVariantHints caps the variant list of a report.
const maxVariantHints = 25

// minVariantLength skips short titles, which are similar to everything.
const minVariantLength = 4

// GroupSummary describes one title shared by several tracks.
type GroupSummary struct {
	Title    string
	Count    int
	Examples []string
}

// VariantHint is a pair of distinct titles that look alike.
type VariantHint struct {
	A, B       string
	Similarity float64
}

// Report is a presentation-only summary of a grouping run.
type Report struct {
	TrackCount int
	GroupCount int

	// Duplicates lists titles with more than one track, largest first.
	Duplicates []GroupSummary

	// Variants lists near-identical titles that were kept apart.
	Variants []VariantHint
}

func buildReport(res *Result, maxExamples int, threshold float64) *Report {
	r := &Report{
		TrackCount: len(res.Tracks),
		GroupCount: len(res.Groups),
	}

	for key, members := range res.Groups {
		if len(members) < 2 {
			continue
		}
		summary := GroupSummary{Title: key, Count: len(members)}
		for _, m := range members {
			if len(summary.Examples) >= maxExamples {
				break
			}
			summary.Examples = append(summary.Examples, path.Base(strings.ReplaceAll(m.Path, `\`, "/")))
		}
		r.Duplicates = append(r.Duplicates, summary)
	}

	slices.SortFunc(r.Duplicates, func(a, b GroupSummary) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})

	if threshold > 0 {
		r.Variants = findVariants(res.Groups, threshold)
	}

	return r
}

// findVariants compares titles that start with the same letter.
func findVariants(groups Groups, threshold float64) []VariantHint {
	buckets := make(map[rune][]string)
	for key := range groups {
		if utf8.RuneCountInString(key) < minVariantLength {
			continue
		}
		first, _ := utf8.DecodeRuneInString(key)
		buckets[first] = append(buckets[first], key)
	}

	var hints []VariantHint
	for _, keys := range buckets {
		slices.Sort(keys)
		for i := 0; i < len(keys); i++ {
			for j := i + 1; j < len(keys); j++ {
				sim, err := edlib.StringsSimilarity(keys[i], keys[j], edlib.JaroWinkler)
				if err != nil || float64(sim) < threshold {
					continue
				}
				hints = append(hints, VariantHint{A: keys[i], B: keys[j], Similarity: float64(sim)})
			}
		}
	}

	slices.SortFunc(hints, func(a, b VariantHint) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})

	if len(hints) > maxVariantHints {
		hints = hints[:maxVariantHints]
	}
	return hints
}

// Format renders the report as plain text.
//
// Example output:
//
//	42 tracks in 38 titles, 3 with variants
//	  3x "run rudolph run": 01 - Run Rudolph Run - Chuck Berry.mp3, ...
//	Possible variants:
//	  "jingle bell rock" ~ "jingle bells rock" (0.98)
func (r *Report) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d tracks in %d titles, %d with variants\n", r.TrackCount, r.GroupCount, len(r.Duplicates)))

	for _, d := range r.Duplicates {
		examples := strings.Join(d.Examples, ", ")
		if d.Count > len(d.Examples) {
			examples += ", ..."
		}
		sb.WriteString(fmt.Sprintf("  %dx %q: %s\n", d.Count, d.Title, examples))
	}

	if len(r.Variants) > 0 {
		sb.WriteString("Possible variants:\n")
		for _, v := range r.Variants {
			sb.WriteString(fmt.Sprintf("  %q ~ %q (%.2f)\n", v.A, v.B, v.Similarity))
		}
	}

	return sb.String()
}
