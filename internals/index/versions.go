package index

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "20060102"

// NextVersion bumps a `YYYYMMDD.seq` distribution version. The first
// build of a day (or a missing previous version) starts at `.0`, later
// builds of the same day increment the sequence. The fixed-width date
// part keeps versions string-sortable.
func NextVersion(prev string, now time.Time) string {
	date := now.Format(dateLayout)
	if prev == "" {
		return date + ".0"
	}

	major, minor, _ := strings.Cut(prev, ".")
	if major != date {
		return date + ".0"
	}

	seq, err := strconv.Atoi(minor)
	if err != nil {
		seq = -1
	}
	return date + "." + strconv.Itoa(seq+1)
}
