package checker

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RecordReader streams logical CSV records while tracking physical line
// numbers. A quoted cell may legally contain line breaks, so logical
// records and physical lines are not 1:1; downstream reporting uses
// editor-visible line numbers, which is what RecordPosition carries.
//
// encoding/csv silently skips blank physical lines. The legacy checker
// treats a blank line as a data record whose cells are all empty, and
// line numbers must keep matching what a text editor shows, so blank
// lines are reconstructed and yielded as empty records at their own
// line, trailing ones included.
//
// The sequence is finite, single-pass and not restartable. A fatal
// condition (malformed CSV, line ceiling crossed) terminates iteration
// and is reported by Err, never as a sentinel record.
//
// Usage mirrors the usual scanner shape:
//
//	rr := NewRecordReader(r, maxLines)
//	for rr.Next() {
//	    rec, pos := rr.Record(), rr.Position()
//	    ...
//	}
//	if err := rr.Err(); err != nil { ... }
type RecordReader struct {
	csv      *csv.Reader
	counter  *lineCounter
	maxLines int

	record []string
	pos    RecordPosition
	lines  int
	index  int
	err    error

	pendingBlanks int
	held          []string
	heldStart     int
	eof           bool
}

// NewRecordReader wraps r with the export file dialect: comma
// separated, double-quote quoting, variable record width, tolerant of
// stray quotes. maxLines <= 0 disables the ceiling.
func NewRecordReader(r io.Reader, maxLines int) *RecordReader {
	counter := &lineCounter{r: r}
	cr := csv.NewReader(counter)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &RecordReader{csv: cr, counter: counter, maxLines: maxLines}
}

// Next advances to the next logical record. It returns false at end of
// input or on a fatal condition; the two cases are told apart by Err.
//
// The line ceiling is enforced here, per record boundary: a multi-line
// cell can cross the ceiling mid-record and the whole record is then
// rejected before it is yielded.
func (r *RecordReader) Next() bool {
	if r.err != nil {
		return false
	}

	for {
		if r.pendingBlanks > 0 {
			r.pendingBlanks--
			return r.emit(nil, r.lines+1)
		}
		if r.held != nil {
			rec, start := r.held, r.heldStart
			r.held = nil
			return r.emit(rec, start)
		}
		if r.eof {
			// encoding/csv never surfaces trailing blank lines; the
			// byte counter still saw them.
			if total := r.counter.total(); total > r.lines {
				r.pendingBlanks = total - r.lines
				continue
			}
			return false
		}

		rec, err := r.csv.Read()
		if err == io.EOF {
			r.eof = true
			continue
		}
		if err != nil {
			r.err = fmt.Errorf("read record %d: %w", r.index+1, err)
			return false
		}

		start, _ := r.csv.FieldPos(0)
		if skipped := start - r.lines - 1; skipped > 0 {
			// Blank lines were skipped before this record; replay
			// them first and hold the record back.
			r.pendingBlanks = skipped
			r.held = rec
			r.heldStart = start
			continue
		}
		return r.emit(rec, start)
	}
}

// emit yields rec at the given start line, enforcing the ceiling.
// A nil rec stands for one blank physical line and becomes an empty
// record.
func (r *RecordReader) emit(rec []string, start int) bool {
	end := start + embeddedBreaks(rec)
	r.lines = end
	r.index++

	if r.maxLines > 0 && r.lines > r.maxLines {
		r.err = &LimitError{
			Kind:   LimitPhysicalLines,
			Limit:  int64(r.maxLines),
			Actual: int64(r.lines),
		}
		return false
	}

	if rec == nil {
		rec = []string{}
	}
	r.record = rec
	r.pos = RecordPosition{Index: r.index, StartLine: start, EndLine: end}
	return true
}

// Record returns the current record. Valid only after Next reported
// true; the slice is reused-safe (encoding/csv allocates per record).
func (r *RecordReader) Record() []string { return r.record }

// Position returns the current record's physical location.
func (r *RecordReader) Position() RecordPosition { return r.pos }

// Lines returns the running total of physical lines consumed.
func (r *RecordReader) Lines() int { return r.lines }

// Err returns the fatal condition that stopped iteration, or nil after
// a clean end of input.
func (r *RecordReader) Err() error { return r.err }

// embeddedBreaks counts line breaks inside the record's cells.
// encoding/csv normalizes CRLF pairs inside quoted cells to "\n", so
// counting "\n" covers both terminator styles.
func embeddedBreaks(rec []string) int {
	n := 0
	for _, cell := range rec {
		n += strings.Count(cell, "\n")
	}
	return n
}

// lineCounter counts physical lines as bytes flow into the CSV layer,
// so lines encoding/csv never surfaces as records still count.
type lineCounter struct {
	r        io.Reader
	newlines int
	seen     bool
	lastNL   bool
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.seen = true
		for _, b := range p[:n] {
			if b == '\n' {
				c.newlines++
			}
		}
		c.lastNL = p[n-1] == '\n'
	}
	return n, err
}

// total reports the editor-visible line count of everything read so
// far. Exact once the underlying reader hit EOF; a final line without
// a terminator still counts.
func (c *lineCounter) total() int {
	if !c.seen {
		return 0
	}
	if c.lastNL {
		return c.newlines
	}
	return c.newlines + 1
}
