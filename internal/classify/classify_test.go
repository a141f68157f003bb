package classify

import (
    "reflect"
    "testing"
    "time"

    "github.com/nukewatch/reactorstatus/internal/htmltable"
)

var march15 = time.Date(1999, time.March, 15, 0, 0, 0, 0, time.UTC)

func TestTable_SingleDataRow(t *testing.T) {
    table := htmltable.Table{
        {"Unit", "Power(%)", "Reason"},
        {"1", "100", "None"},
    }
    recs := Table(march15, table)
    if len(recs) != 1 {
        t.Fatalf("expected 1 record, got %d", len(recs))
    }
    r := recs[0]
    if r.Unit != "1" || r.Power != "100" || r.Reason != "None" {
        t.Fatalf("unexpected record: %+v", r)
    }
}

func TestTable_CompoundReasonCommentLabelResolves(t *testing.T) {
    table := htmltable.Table{
        {"Unit", "Power", "Reason/Comment"},
        {"Unit 2", "0", "Refueling Outage"},
    }
    recs := Table(march15, table)
    if len(recs) != 1 {
        t.Fatalf("expected 1 record, got %d", len(recs))
    }
    if recs[0].Reason != "Refueling Outage" {
        t.Fatalf("expected reason resolved, got %q", recs[0].Reason)
    }
}

func TestTable_NoUnitColumnYieldsNothing(t *testing.T) {
    table := htmltable.Table{
        {"Plant", "Power", "Reason/Comment"},
        {"Browns Ferry 2", "100", ""},
    }
    if recs := Table(march15, table); len(recs) != 0 {
        t.Fatalf("expected no records without a unit header, got %v", recs)
    }
}

func TestTable_NoHeaderRowYieldsNothing(t *testing.T) {
    table := htmltable.Table{
        {"Browns Ferry 2", "100"},
        {"Salem 1", "0"},
    }
    if recs := Table(march15, table); len(recs) != 0 {
        t.Fatalf("expected no records without a header row, got %v", recs)
    }
}

func TestTable_ShortRowSkippedOthersSurvive(t *testing.T) {
    table := htmltable.Table{
        {"Unit", "Power", "Reason/Comment"},
        {"Only one cell"},
        {"Salem 1", "97", "N/A"},
    }
    recs := Table(march15, table)
    if len(recs) != 1 {
        t.Fatalf("one bad row must not abort the table: got %d records", len(recs))
    }
    if recs[0].Unit != "Salem 1" {
        t.Fatalf("unexpected surviving record: %+v", recs[0])
    }
}

func TestTable_HeaderEchoAndBlankUnitSkipped(t *testing.T) {
    table := htmltable.Table{
        {"Unit", "Power", "Reason/Comment"},
        {"UNIT", "Power", "Reason/Comment"},
        {"", "88", "spacer row"},
        {"Vogtle 1", "88", ""},
    }
    recs := Table(march15, table)
    if len(recs) != 1 || recs[0].Unit != "Vogtle 1" {
        t.Fatalf("expected only the real data row, got %v", recs)
    }
}

func TestTable_MissingReasonCellTreatedAsEmpty(t *testing.T) {
    table := htmltable.Table{
        {"Unit", "Power", "Reason/Comment"},
        {"Oconee 3", "100"},
    }
    recs := Table(march15, table)
    if len(recs) != 1 {
        t.Fatalf("row covering unit and power must classify, got %d", len(recs))
    }
    if recs[0].Reason != "" {
        t.Fatalf("expected empty reason, got %q", recs[0].Reason)
    }
}

func TestDocument_ConcatenatesTablesInOrder(t *testing.T) {
    tables := []htmltable.Table{
        {
            {"Unit", "Power", "Reason/Comment"},
            {"Region I Unit 1", "100", ""},
        },
        {
            {"Notes"},
            {"legend only"},
        },
        {
            {"Unit", "Power", "Reason/Comment"},
            {"Region II Unit 1", "75", "Coastdown"},
        },
    }
    recs := Document(march15, tables)
    if len(recs) != 2 {
        t.Fatalf("expected 2 records across tables, got %d", len(recs))
    }
    if recs[0].Unit != "Region I Unit 1" || recs[1].Unit != "Region II Unit 1" {
        t.Fatalf("records out of document order: %v", recs)
    }
}

func TestDocument_EndToEndSerialization(t *testing.T) {
    doc := []byte(`<html><body><table>
      <tr><th>Unit</th><th>Power</th><th>Reason/Comment</th></tr>
      <tr><td>Unit 1</td><td>97</td><td>N/A</td></tr>
      <tr><td>Unit 2</td><td>0</td><td>Refueling Outage</td></tr>
    </table></body></html>`)

    recs := Document(march15, htmltable.Extract(doc))
    want := []string{
        "3/15/1999|Unit 1|97|N/A",
        "3/15/1999|Unit 2|0|Refueling Outage",
    }
    if len(recs) != len(want) {
        t.Fatalf("expected %d records, got %d", len(want), len(recs))
    }
    for i, w := range want {
        if got := recs[i].PSV(); got != w {
            t.Fatalf("line %d: got %q, want %q", i, got, w)
        }
    }
}

func TestDocument_Idempotent(t *testing.T) {
    doc := []byte(`<table><tr><th>Unit</th><th>Power</th></tr>
      <tr><td>Ginna</td><td>100</td></tr></table>`)

    first := Document(march15, htmltable.Extract(doc))
    second := Document(march15, htmltable.Extract(doc))
    if !reflect.DeepEqual(first, second) {
        t.Fatalf("classification is not idempotent: %v vs %v", first, second)
    }
}

func TestPSV_ScrubsDelimiter(t *testing.T) {
    r := Record{
        Date:   march15,
        Unit:   "Unit|1",
        Power:  "100",
        Reason: "manual|trip",
    }
    if got, want := r.PSV(), "3/15/1999|Unit 1|100|manual trip"; got != want {
        t.Fatalf("got %q, want %q", got, want)
    }
}

func TestPSV_DateNotZeroPadded(t *testing.T) {
    r := Record{Date: time.Date(1999, time.January, 2, 0, 0, 0, 0, time.UTC), Unit: "U", Power: "1"}
    if got, want := r.PSV(), "1/2/1999|U|1|"; got != want {
        t.Fatalf("got %q, want %q", got, want)
    }
}
