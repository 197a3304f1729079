package checker

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
)

// Checker is the single-pass validator. Construct once with New and
// reuse freely; Check holds no state between calls.
type Checker struct {
	cfg         Config
	enc         encoding.Encoding
	datePattern *regexp.Regexp
}

// New builds a Checker from cfg, resolving the encoding label and
// compiling the date pattern up front so Check cannot fail on
// configuration.
func New(cfg Config) (*Checker, error) {
	enc, err := resolveEncoding(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("checker config: %w", err)
	}

	pattern, err := regexp.Compile(cfg.DatePattern)
	if err != nil {
		return nil, fmt.Errorf("checker config: date pattern: %w", err)
	}

	return &Checker{cfg: cfg, enc: enc, datePattern: pattern}, nil
}

// Config returns the configuration the Checker was built with.
func (c *Checker) Config() Config { return c.cfg }

// Check validates one export file and returns the collected findings.
//
// The first logical record is the header: it advances physical-line
// accounting but is excluded from data record numbering and from rule
// evaluation. Findings never abort the pass. The two fatal conditions
// (*DecodeError, *LimitError) abort it with no partial Result.
func (c *Checker) Check(data []byte) (*Result, error) {
	if c.cfg.MaxFileBytes > 0 && int64(len(data)) > c.cfg.MaxFileBytes {
		return nil, &LimitError{
			Kind:   LimitFileBytes,
			Limit:  c.cfg.MaxFileBytes,
			Actual: int64(len(data)),
		}
	}

	text, err := c.decode(data)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	rr := NewRecordReader(strings.NewReader(text), c.cfg.MaxPhysicalLines)

	for rr.Next() {
		rec, pos := rr.Record(), rr.Position()

		if pos.Index == 1 {
			continue // header
		}

		res.DataRecords++
		c.applyAmountRule(rec, pos, res)
		c.applyDateRule(rec, pos, res.DataRecords, res)
	}
	if err := rr.Err(); err != nil {
		return nil, err
	}

	res.PhysicalLines = rr.Lines()
	return res, nil
}
