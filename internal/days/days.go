package days

import (
    "strings"
    "time"
)

// DefaultBaseURL is the NRC reading-room archive holding the 1999 daily
// power reactor status reports.
const DefaultBaseURL = "https://www.nrc.gov/reading-rm/doc-collections/event-status/reactor-status/1999"

// ForYear returns every calendar day of the year, in order, at midnight UTC.
func ForYear(year int) []time.Time {
    d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
    out := make([]time.Time, 0, 366)
    for d.Year() == year {
        out = append(out, d)
        d = d.AddDate(0, 0, 1)
    }
    return out
}

// URL derives the report page address for one day. Pages are named
// YYYYMMDDps.html under the archive base.
func URL(base string, d time.Time) string {
    return strings.TrimRight(base, "/") + "/" + d.Format("20060102") + "ps.html"
}
