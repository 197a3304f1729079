package checker

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// encodeShiftJIS converts UTF-8 fixture text to the wire encoding.
func encodeShiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	data, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return data
}

// fixtureLine renders one CSV line of width cells with the given
// overrides. Values must not need quoting.
func fixtureLine(width int, cells map[int]string) string {
	rec := make([]string, width)
	for i, v := range cells {
		rec[i] = v
	}
	return strings.Join(rec, ",")
}

func headerLine() string {
	cells := make([]string, 38)
	for i := range cells {
		cells[i] = "h"
	}
	return strings.Join(cells, ",")
}

func TestCheckEndToEnd(t *testing.T) {
	c := newTestChecker(t)
	cfg := c.Config()

	lines := []string{
		headerLine(),
		// clean record
		fixtureLine(38, map[int]string{
			cfg.StoreNameColumn:     "新宿店",
			cfg.StoreCodeColumn:     "Z00001",
			cfg.AmountColumn:        "4000",
			cfg.MandatoryDateColumn: "2024/05/01 10:00:00",
			cfg.SecondaryDateColumn: "2024/05/01 18:30:00",
		}),
		// financial hit
		fixtureLine(38, map[int]string{
			cfg.StoreNameColumn:     "渋谷店",
			cfg.SlipNumberColumn:    "S-042",
			cfg.StoreCodeColumn:     "Z00014",
			cfg.AmountColumn:        "4000",
			cfg.MandatoryDateColumn: "2024/05/01 11:00:00",
			cfg.SecondaryDateColumn: "2024/05/01 11:00:00",
		}),
		// date mismatch
		fixtureLine(38, map[int]string{
			cfg.StoreNameColumn:     "池袋店",
			cfg.StoreCodeColumn:     "Z00014",
			cfg.AmountColumn:        "3000",
			cfg.MandatoryDateColumn: "2024/05/01 23:00:00",
			cfg.SecondaryDateColumn: "2024/05/02 01:00:00",
		}),
	}
	data := encodeShiftJIS(t, strings.Join(lines, "\n")+"\n")

	res, err := c.Check(data)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if res.DataRecords != 3 {
		t.Errorf("DataRecords = %d, want 3", res.DataRecords)
	}
	if res.PhysicalLines != 4 {
		t.Errorf("PhysicalLines = %d, want 4", res.PhysicalLines)
	}

	if len(res.Financial) != 1 {
		t.Fatalf("got %d financial issues, want 1", len(res.Financial))
	}
	fin := res.Financial[0]
	if fin.PhysicalLine != 3 {
		t.Errorf("financial PhysicalLine = %d, want 3", fin.PhysicalLine)
	}
	if fin.StoreName != "渋谷店" || fin.SlipNumber != "S-042" || fin.Amount != "4000" {
		t.Errorf("financial issue = %+v", fin)
	}

	if len(res.Dates.Issues) != 1 {
		t.Fatalf("got %d date issues, want 1", len(res.Dates.Issues))
	}
	mismatch := res.Dates.Issues[0]
	if mismatch.Kind != KindDateMismatch {
		t.Errorf("Kind = %q, want %q", mismatch.Kind, KindDateMismatch)
	}
	if mismatch.RecordNumber != 3 {
		t.Errorf("RecordNumber = %d, want 3 (header excluded)", mismatch.RecordNumber)
	}
	if mismatch.PhysicalLine != 4 {
		t.Errorf("PhysicalLine = %d, want 4", mismatch.PhysicalLine)
	}
	if mismatch.Severity != SeverityWarn {
		t.Errorf("Severity = %q, want WARN", mismatch.Severity)
	}
}

func TestCheckHeaderExcluded(t *testing.T) {
	c := newTestChecker(t)
	cfg := c.Config()

	// A header row that would trip both rules if it were data.
	header := fixtureLine(38, map[int]string{
		cfg.StoreCodeColumn:     "Z00014",
		cfg.AmountColumn:        "9999",
		cfg.MandatoryDateColumn: "not a date",
	})
	data := encodeShiftJIS(t, header+"\n")

	res, err := c.Check(data)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.DataRecords != 0 {
		t.Errorf("DataRecords = %d, want 0", res.DataRecords)
	}
	if res.HasFindings() {
		t.Errorf("header-only file produced findings: %+v", res)
	}
	if res.PhysicalLines != 1 {
		t.Errorf("PhysicalLines = %d, want 1", res.PhysicalLines)
	}
}

func TestCheckBlankLineIsEmptyDataRecord(t *testing.T) {
	c := newTestChecker(t)

	// Line 2 is blank: it counts as data record 1 with every cell
	// empty, and the a,b record keeps its editor line number.
	res, err := c.Check([]byte("h1,h2\n\na,b\n"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if res.DataRecords != 2 {
		t.Errorf("DataRecords = %d, want 2", res.DataRecords)
	}
	if res.PhysicalLines != 3 {
		t.Errorf("PhysicalLines = %d, want 3", res.PhysicalLines)
	}

	if len(res.Dates.Issues) != 4 {
		t.Fatalf("got %d date issues %v, want 4", len(res.Dates.Issues), res.Dates.Issues)
	}

	blank := res.Dates.Issues[0]
	if blank.RecordNumber != 1 || blank.PhysicalLine != 2 {
		t.Errorf("blank record issue at record %d line %d, want record 1 line 2",
			blank.RecordNumber, blank.PhysicalLine)
	}
	if blank.Kind != KindMandatoryDateInvalid || blank.Severity != SeverityError {
		t.Errorf("blank record: Kind/Severity = %q/%q, want COL9 ERROR", blank.Kind, blank.Severity)
	}
	if res.Dates.Issues[1].Kind != KindSecondaryDateEmpty || res.Dates.Issues[1].PhysicalLine != 2 {
		t.Errorf("blank record secondary issue = %+v", res.Dates.Issues[1])
	}

	next := res.Dates.Issues[2]
	if next.RecordNumber != 2 || next.PhysicalLine != 3 {
		t.Errorf("a,b record issue at record %d line %d, want record 2 line 3",
			next.RecordNumber, next.PhysicalLine)
	}
}

func TestCheckEmptyInput(t *testing.T) {
	c := newTestChecker(t)
	res, err := c.Check(nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.DataRecords != 0 || res.PhysicalLines != 0 || res.HasFindings() {
		t.Errorf("empty input: %+v", res)
	}
}

func TestCheckCounterInvariants(t *testing.T) {
	c := newTestChecker(t)
	cfg := c.Config()

	lines := []string{headerLine()}
	cases := []map[int]string{
		{cfg.MandatoryDateColumn: "2024/05/01 10:00:00", cfg.SecondaryDateColumn: "2024/05/01 10:00:00"},
		{cfg.MandatoryDateColumn: "2024/05/01 10:00:00", cfg.SecondaryDateColumn: ""},
		{cfg.MandatoryDateColumn: "nope", cfg.SecondaryDateColumn: "also nope"},
		{cfg.MandatoryDateColumn: "2024/05/01 10:00:00", cfg.SecondaryDateColumn: "2024/06/01 10:00:00"},
	}
	for _, cells := range cases {
		lines = append(lines, fixtureLine(38, cells))
	}
	data := encodeShiftJIS(t, strings.Join(lines, "\n")+"\n")

	res, err := c.Check(data)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if got := res.Dates.MandatoryOK + res.Dates.SecondaryOK; res.Dates.CheckedCells != got {
		t.Errorf("CheckedCells = %d, want %d", res.Dates.CheckedCells, got)
	}

	var errs, warns int
	for _, issue := range res.Dates.Issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarn:
			warns++
		}
	}
	if res.Dates.Errors != errs {
		t.Errorf("Errors = %d, issue list has %d", res.Dates.Errors, errs)
	}
	if res.Dates.Warnings != warns {
		t.Errorf("Warnings = %d, issue list has %d", res.Dates.Warnings, warns)
	}
}

func TestCheckByteCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileBytes = 10
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Check([]byte("aaaaaaaaaaaaaaaaaaaa"))
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("err = %v, want *LimitError", err)
	}
	if limitErr.Kind != LimitFileBytes {
		t.Errorf("Kind = %q, want %q", limitErr.Kind, LimitFileBytes)
	}

	// Exactly at the ceiling passes.
	if _, err := c.Check([]byte("a,b\nc,d\nx\n")); err != nil {
		t.Errorf("at-ceiling input failed: %v", err)
	}
}

func TestCheckLineCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPhysicalLines = 2
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Check([]byte("h\na\n")); err != nil {
		t.Errorf("at-ceiling input failed: %v", err)
	}

	_, err = c.Check([]byte("h\na\nb\n"))
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("err = %v, want *LimitError", err)
	}
	if limitErr.Kind != LimitPhysicalLines {
		t.Errorf("Kind = %q, want %q", limitErr.Kind, LimitPhysicalLines)
	}
}

func TestCheckDecodeError(t *testing.T) {
	c := newTestChecker(t)

	// 0x80 is not a valid Shift_JIS lead or single byte.
	_, err := c.Check([]byte{'a', ',', 0x80, '\n'})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
	if decodeErr.Encoding != "Shift_JIS" {
		t.Errorf("Encoding = %q, want Shift_JIS", decodeErr.Encoding)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Encoding = "no-such-encoding"
	if _, err := New(cfg); err == nil {
		t.Error("New accepted unknown encoding")
	}

	cfg = DefaultConfig()
	cfg.DatePattern = "(["
	if _, err := New(cfg); err == nil {
		t.Error("New accepted invalid date pattern")
	}
}
