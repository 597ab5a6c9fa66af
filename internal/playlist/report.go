package playlist

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/handiism/playlist-spreader/internal/shuffle"
)

// DistributionHeader is the header row of a distribution report. The first
// column holds the track path despite its name.
var DistributionHeader = []string{
	"NormalizedTitle", "Count", "Expected", "Distribution",
	"FirstDelta", "LastDelta", "AverageDelta", "Indexes",
}

// WriteDistribution writes one CSV row per distinct input path. Deltas of
// paths that were never placed are left empty.
func WriteDistribution(w io.Writer, d *shuffle.Distribution) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(DistributionHeader); err != nil {
		return err
	}

	for _, st := range d.Stats {
		first, last := "", ""
		if st.Placed() {
			first = strconv.Itoa(st.FirstDelta)
			last = strconv.Itoa(st.LastDelta)
		}

		indexes := make([]string, len(st.Indexes))
		for i, idx := range st.Indexes {
			indexes[i] = strconv.Itoa(idx)
		}

		row := []string{
			st.Path,
			strconv.Itoa(st.Count),
			formatFloat(st.Expected),
			formatFloat(st.Observed),
			first,
			last,
			formatFloat(st.AverageDelta),
			strings.Join(indexes, " "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
