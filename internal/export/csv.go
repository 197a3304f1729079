// Package export serializes issue collections to downloadable CSV.
//
// Output is UTF-8 with bare line-feed terminators and a fixed header
// row per table, matching what the downstream review workflow expects.
// The header strings are kept in Japanese, same as the legacy tool.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ktsuji/csvchecker/internal/checker"
)

var financialHeader = []string{"行番号(物理行)", "店舗名", "伝票番号", "金額(38列目)"}

var dateIssueHeader = []string{"レコード番号", "開始物理行(参考)", "重要度", "種別", "9列目", "17列目", "補足"}

// WriteFinancialIssues writes the amount rule findings as CSV.
func WriteFinancialIssues(w io.Writer, issues []checker.FinancialIssue) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(financialHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, issue := range issues {
		row := []string{
			strconv.Itoa(issue.PhysicalLine),
			issue.StoreName,
			issue.SlipNumber,
			issue.Amount,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDateIssues writes the date rule findings as CSV.
func WriteDateIssues(w io.Writer, issues []checker.DateIssue) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(dateIssueHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, issue := range issues {
		row := []string{
			strconv.Itoa(issue.RecordNumber),
			strconv.Itoa(issue.PhysicalLine),
			string(issue.Severity),
			string(issue.Kind),
			issue.MandatoryDate,
			issue.SecondaryDate,
			issue.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FinancialIssuesBytes renders the financial table in memory, for
// download handlers.
func FinancialIssuesBytes(issues []checker.FinancialIssue) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFinancialIssues(&buf, issues); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DateIssuesBytes renders the date issue table in memory.
func DateIssuesBytes(issues []checker.DateIssue) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDateIssues(&buf, issues); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
