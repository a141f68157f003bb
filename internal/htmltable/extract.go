package htmltable

import (
    "bytes"
    "strings"

    "golang.org/x/net/html"
)

// Table is an ordered grid of normalized cell text, outer slice rows in
// document order. Rows may be ragged; callers must index defensively.
type Table [][]string

// capture is the in-progress state for one open <table>. Nested tables get
// their own capture so each table surfaces independently in the result.
type capture struct {
    rows    Table
    row     []string
    cellBuf strings.Builder
    inRow   bool
    inCell  bool
}

// Extract reconstructs every <table> in the document as a grid of cell
// strings in a single forward pass over the token stream. A nested table is
// finalized as its own entry in the result the moment its closing tag is
// seen, so inner tables precede the table that contains them. Malformed
// markup never fails the scan: unmatched end tags are ignored and whatever
// was captured before end-of-input is returned.
func Extract(input []byte) []Table {
    z := html.NewTokenizer(bytes.NewReader(input))

    var (
        tables []Table
        stack  []*capture
    )
    top := func() *capture { return stack[len(stack)-1] }

    for {
        switch z.Next() {
        case html.ErrorToken:
            // EOF, or a read error on truly unreadable input. Either way the
            // scan is done; unclosed structures are abandoned best-effort.
            return tables

        case html.StartTagToken, html.SelfClosingTagToken:
            name, _ := z.TagName()
            switch string(name) {
            case "table":
                stack = append(stack, &capture{})
            case "tr":
                if len(stack) > 0 {
                    c := top()
                    c.inRow = true
                    c.row = nil
                }
            case "td", "th":
                if len(stack) > 0 && top().inRow {
                    c := top()
                    c.inCell = true
                    c.cellBuf.Reset()
                }
            case "br", "p":
                // Soft word separator so tokens split across line or
                // paragraph breaks do not merge.
                if len(stack) > 0 && top().inCell {
                    top().cellBuf.WriteByte(' ')
                }
            }

        case html.EndTagToken:
            name, _ := z.TagName()
            switch string(name) {
            case "td", "th":
                if len(stack) > 0 && top().inCell {
                    c := top()
                    c.inCell = false
                    c.row = append(c.row, Normalize(c.cellBuf.String()))
                    c.cellBuf.Reset()
                }
            case "tr":
                if len(stack) > 0 && top().inRow {
                    c := top()
                    c.inRow = false
                    if hasContent(c.row) {
                        c.rows = append(c.rows, c.row)
                    }
                    c.row = nil
                }
            case "table":
                if len(stack) > 0 {
                    c := top()
                    stack = stack[:len(stack)-1]
                    if len(c.rows) > 0 {
                        tables = append(tables, c.rows)
                    }
                }
            }

        case html.TextToken:
            // Raw text accumulates verbatim; normalization happens once at
            // cell close rather than incrementally.
            if len(stack) > 0 && top().inCell {
                top().cellBuf.Write(z.Text())
            }
        }
    }
}

// Normalize collapses every whitespace run to a single space and trims the
// ends. The classifier applies the same rule when comparing header labels.
func Normalize(s string) string {
    return strings.Join(strings.Fields(s), " ")
}

func hasContent(row []string) bool {
    for _, c := range row {
        if strings.TrimSpace(c) != "" {
            return true
        }
    }
    return false
}
