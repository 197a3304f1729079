package checker

// Severity classifies a date finding. ERROR marks data the business
// considers impossible; WARN marks data a human must look at.
type Severity string

const (
	SeverityError Severity = "ERROR"
	SeverityWarn  Severity = "WARN"
)

// IssueKind tags a date finding. The values keep the identifiers of the
// legacy checker so exported reports stay diffable against it.
type IssueKind string

const (
	KindMandatoryDateInvalid IssueKind = "COL9_MISSING_OR_INVALID"
	KindSecondaryDateEmpty   IssueKind = "COL17_EMPTY"
	KindSecondaryDateInvalid IssueKind = "COL17_INVALID"
	KindDateMismatch         IssueKind = "DATE_MISMATCH"
)

// RecordPosition locates one logical CSV record in the physical source
// text. Index is 1-based over logical records (the header is record 1).
// StartLine and EndLine are 1-based physical line numbers as a text
// editor would show them; EndLine > StartLine exactly when a quoted
// cell contains embedded line breaks.
type RecordPosition struct {
	Index     int
	StartLine int
	EndLine   int
}

// FinancialIssue is one hit of the amount rule. Immutable once
// appended; ordered by discovery.
type FinancialIssue struct {
	PhysicalLine int    `json:"physicalLine"`
	StoreName    string `json:"storeName"`
	SlipNumber   string `json:"slipNumber"`
	Amount       string `json:"amount"`
}

// DateIssue is one finding of the date rule. RecordNumber is the
// 1-based count of data records (header excluded), independent of
// physical lines. Both date cells are carried verbatim (trimmed) for
// audit.
type DateIssue struct {
	RecordNumber  int       `json:"recordNumber"`
	PhysicalLine  int       `json:"physicalLine"`
	Severity      Severity  `json:"severity"`
	Kind          IssueKind `json:"kind"`
	MandatoryDate string    `json:"mandatoryDate"`
	SecondaryDate string    `json:"secondaryDate"`
	Note          string    `json:"note"`
}

// DateSummary aggregates the date rule over one run. The counters are
// maintained alongside Issues and always equal the corresponding
// cardinalities: Errors/Warnings match the severity-filtered issue
// counts, CheckedCells = MandatoryOK + SecondaryOK.
type DateSummary struct {
	CheckedCells int         `json:"checkedCells"`
	MandatoryOK  int         `json:"mandatoryOk"`
	SecondaryOK  int         `json:"secondaryOk"`
	Warnings     int         `json:"warnings"`
	Errors       int         `json:"errors"`
	Issues       []DateIssue `json:"issues"`
}
