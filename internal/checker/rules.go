package checker

import (
	"fmt"
	"strings"
	"time"
)

// Finding notes shown to the operators, kept verbatim from the legacy
// checker so the review workflow reads the same.
const (
	noteMandatoryInvalid = "9列目に yyyy/mm/dd hh:mm:ss が必要です（業務上あり得ないデータ）。"
	noteSecondaryEmpty   = "17列目が空です（要確認）。NULLの場合もあり得るため人間確認が必要です。"
	noteSecondaryInvalid = "17列目が日付形式ではありません（要確認）。"
)

// dateOnlyLayout formats the date portion for mismatch comparison.
const dateOnlyLayout = "2006/01/02"

// cell returns the trimmed cell at index i, or "" when the record is
// too short. Records carry no fixed arity; a short record is data, not
// an error.
func cell(rec []string, i int) string {
	if i >= 0 && i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// applyAmountRule flags records where the flagged store code carries an
// amount outside the allowed set. Records without an amount column are
// skipped silently: the rule needs the record to be at least that wide.
func (c *Checker) applyAmountRule(rec []string, pos RecordPosition, res *Result) {
	if len(rec) <= c.cfg.AmountColumn {
		return
	}

	code := cell(rec, c.cfg.StoreCodeColumn)
	amount := cell(rec, c.cfg.AmountColumn)
	if code != c.cfg.FlaggedStoreCode || c.cfg.amountAllowed(amount) {
		return
	}

	res.addFinancial(FinancialIssue{
		PhysicalLine: pos.StartLine,
		StoreName:    cell(rec, c.cfg.StoreNameColumn),
		SlipNumber:   cell(rec, c.cfg.SlipNumberColumn),
		Amount:       amount,
	})
}

// applyDateRule evaluates the mandatory and secondary date cells.
// recordNo is the 1-based data record number (header excluded).
//
// The mandatory cell must be a well-formed, calendar-valid timestamp;
// anything else is an ERROR. The secondary cell is advisory: empty or
// invalid is a WARN, and when both cells parse their date portions must
// agree (time of day is ignored). No comparison happens when the
// mandatory cell is invalid.
func (c *Checker) applyDateRule(rec []string, pos RecordPosition, recordNo int, res *Result) {
	mandatory := cell(rec, c.cfg.MandatoryDateColumn)
	secondary := cell(rec, c.cfg.SecondaryDateColumn)

	issue := DateIssue{
		RecordNumber:  recordNo,
		PhysicalLine:  pos.StartLine,
		MandatoryDate: mandatory,
		SecondaryDate: secondary,
	}

	mandatoryAt, mandatoryOK := c.parseDateTime(mandatory)
	if mandatoryOK {
		res.countMandatoryValid()
	} else {
		issue.Severity = SeverityError
		issue.Kind = KindMandatoryDateInvalid
		issue.Note = noteMandatoryInvalid
		res.addDateIssue(issue)
	}

	if secondary == "" {
		issue.Severity = SeverityWarn
		issue.Kind = KindSecondaryDateEmpty
		issue.Note = noteSecondaryEmpty
		res.addDateIssue(issue)
		return
	}

	secondaryAt, ok := c.parseDateTime(secondary)
	if !ok {
		issue.Severity = SeverityWarn
		issue.Kind = KindSecondaryDateInvalid
		issue.Note = noteSecondaryInvalid
		res.addDateIssue(issue)
		return
	}
	res.countSecondaryValid()

	if !mandatoryOK {
		return
	}

	d9 := mandatoryAt.Format(dateOnlyLayout)
	d17 := secondaryAt.Format(dateOnlyLayout)
	if d9 != d17 {
		issue.Severity = SeverityWarn
		issue.Kind = KindDateMismatch
		issue.Note = fmt.Sprintf("9列目(%s) と 17列目(%s) の日付が一致しません（要確認）。", d9, d17)
		res.addDateIssue(issue)
	}
}

// parseDateTime validates a date cell: lexical shape first, then a
// strict calendar parse. A correctly shaped but impossible date
// (2024/02/30) fails exactly like a malformed one; the legacy system
// does not distinguish the two.
func (c *Checker) parseDateTime(s string) (time.Time, bool) {
	if !c.datePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(c.cfg.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
