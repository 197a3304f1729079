package checker

import "time"

// Result is the complete outcome of one validation run. It is built by
// the single forward pass and immutable once Check returns. A Result
// only exists for successful runs; fatal conditions return an error and
// no Result.
type Result struct {
	FileName string `json:"fileName,omitempty"`

	Financial []FinancialIssue `json:"financial"`
	Dates     DateSummary      `json:"dates"`

	// DataRecords counts logical records excluding the header.
	DataRecords int `json:"dataRecords"`

	// PhysicalLines is the total physical line count of the input,
	// header included.
	PhysicalLines int `json:"physicalLines"`

	Duration time.Duration `json:"-"`
}

// HasFindings reports whether any rule produced an issue.
func (r *Result) HasFindings() bool {
	return len(r.Financial) > 0 || len(r.Dates.Issues) > 0
}

// addFinancial appends an amount rule hit in encounter order.
func (r *Result) addFinancial(issue FinancialIssue) {
	r.Financial = append(r.Financial, issue)
}

// addDateIssue appends a date finding and keeps the severity counters
// in sync with the issue list.
func (r *Result) addDateIssue(issue DateIssue) {
	switch issue.Severity {
	case SeverityError:
		r.Dates.Errors++
	case SeverityWarn:
		r.Dates.Warnings++
	}
	r.Dates.Issues = append(r.Dates.Issues, issue)
}

// countMandatoryValid records a mandatory date cell that parsed.
func (r *Result) countMandatoryValid() {
	r.Dates.MandatoryOK++
	r.Dates.CheckedCells++
}

// countSecondaryValid records a secondary date cell that parsed.
func (r *Result) countSecondaryValid() {
	r.Dates.SecondaryOK++
	r.Dates.CheckedCells++
}
