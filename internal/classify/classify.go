package classify

import (
    "fmt"
    "strings"
    "time"

    "github.com/nukewatch/reactorstatus/internal/htmltable"
)

// Record is one classified reactor-status row tagged with its report date.
// Reason may be empty; Unit and Power are never empty once a record exists.
type Record struct {
    Date   time.Time
    Unit   string
    Power  string
    Reason string
}

// PSV renders the record as a pipe-delimited line, no trailing newline.
// A literal pipe inside a field would corrupt the format, so pipes are
// replaced with a space rather than escaped.
func (r Record) PSV() string {
    d := fmt.Sprintf("%d/%d/%d", int(r.Date.Month()), r.Date.Day(), r.Date.Year())
    return d + "|" + safeField(r.Unit) + "|" + safeField(r.Power) + "|" + safeField(r.Reason)
}

func safeField(s string) string {
    return strings.TrimSpace(strings.ReplaceAll(s, "|", " "))
}

// Document classifies every table in document order and concatenates the
// results. A page may legitimately yield records from several tables, or
// none at all (holiday placeholder pages have no status table).
func Document(reportDate time.Time, tables []htmltable.Table) []Record {
    var out []Record
    for _, t := range tables {
        out = append(out, Table(reportDate, t)...)
    }
    return out
}

// Table locates the header row, resolves the unit/power/reason columns, and
// emits one record per qualifying data row. Structural variation (no header,
// missing required columns, rows too short to cover them) yields fewer or
// zero records, never an error.
func Table(reportDate time.Time, table htmltable.Table) []Record {
    headerIdx := -1
    var headers []string
    for i, row := range table {
        lowered := make([]string, len(row))
        for j, c := range row {
            lowered[j] = strings.ToLower(htmltable.Normalize(c))
        }
        if isHeaderRow(lowered) {
            headerIdx = i
            headers = lowered
            break
        }
    }
    if headerIdx < 0 {
        return nil
    }

    unitIdx := findColumn(headers, func(h string) bool {
        return h == "unit" || strings.HasPrefix(h, "unit ")
    })
    // Compound labels like "power(%)" occupy a single cell, so any
    // power-prefixed label counts.
    powerIdx := findColumn(headers, func(h string) bool {
        return strings.HasPrefix(h, "power")
    })
    reasonIdx := findColumn(headers, func(h string) bool {
        if h == "reason" {
            return true
        }
        return strings.Contains(h, "reason") && strings.Contains(h, "comment")
    })
    if unitIdx < 0 || powerIdx < 0 {
        return nil
    }

    var out []Record
    for _, row := range table[headerIdx+1:] {
        if unitIdx >= len(row) || powerIdx >= len(row) {
            continue
        }
        unit := htmltable.Normalize(row[unitIdx])
        power := htmltable.Normalize(row[powerIdx])
        reason := ""
        if reasonIdx >= 0 && reasonIdx < len(row) {
            reason = htmltable.Normalize(row[reasonIdx])
        }
        // Repeated headers and spacer rows echo the "Unit" label or leave
        // the unit blank.
        if unit == "" || strings.EqualFold(unit, "unit") {
            continue
        }
        out = append(out, Record{Date: reportDate, Unit: unit, Power: power, Reason: reason})
    }
    return out
}

// isHeaderRow reports whether a lowered, normalized row names both required
// columns. Any row containing a literal "unit" cell and a power-prefixed
// cell qualifies; the first such row in the table wins.
func isHeaderRow(lowered []string) bool {
    var hasUnit, hasPower bool
    for _, c := range lowered {
        if c == "unit" {
            hasUnit = true
        }
        if strings.HasPrefix(c, "power") {
            hasPower = true
        }
    }
    return hasUnit && hasPower
}

// findColumn returns the index of the first header cell the matcher accepts,
// or -1 when no column matches.
func findColumn(headers []string, match func(string) bool) int {
    for i, h := range headers {
        if match(h) {
            return i
        }
    }
    return -1
}
