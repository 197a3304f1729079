package checker

import "fmt"

// The validator has exactly two fatal conditions. Both abort the run
// with no partial result; everything else is a collected finding.

// DecodeError reports input bytes that are not valid for the configured
// encoding.
type DecodeError struct {
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input is not valid %s: %v", e.Encoding, e.Err)
	}
	return fmt.Sprintf("input is not valid %s", e.Encoding)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// LimitKind names the ceiling a LimitError crossed.
type LimitKind string

const (
	LimitPhysicalLines LimitKind = "physical_lines"
	LimitFileBytes     LimitKind = "file_bytes"
)

// LimitError reports input exceeding a configured ceiling. The line
// ceiling is checked per record boundary, so Actual may exceed Limit by
// more than one when a multi-line cell crosses it.
type LimitError struct {
	Kind   LimitKind
	Limit  int64
	Actual int64
}

func (e *LimitError) Error() string {
	switch e.Kind {
	case LimitPhysicalLines:
		return fmt.Sprintf("input has %d physical lines, limit is %d", e.Actual, e.Limit)
	case LimitFileBytes:
		return fmt.Sprintf("input is %d bytes, limit is %d", e.Actual, e.Limit)
	}
	return fmt.Sprintf("input exceeds %s limit: %d > %d", e.Kind, e.Actual, e.Limit)
}
