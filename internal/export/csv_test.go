package export

import (
	"strings"
	"testing"

	"github.com/ktsuji/csvchecker/internal/checker"
)

func TestWriteFinancialIssues(t *testing.T) {
	issues := []checker.FinancialIssue{
		{PhysicalLine: 3, StoreName: "渋谷店", SlipNumber: "S-042", Amount: "4000"},
		{PhysicalLine: 9, StoreName: "新宿店", SlipNumber: "S-100", Amount: "1200"},
	}

	data, err := FinancialIssuesBytes(issues)
	if err != nil {
		t.Fatalf("FinancialIssuesBytes: %v", err)
	}

	want := "行番号(物理行),店舗名,伝票番号,金額(38列目)\n" +
		"3,渋谷店,S-042,4000\n" +
		"9,新宿店,S-100,1200\n"
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}

func TestWriteFinancialIssuesEmpty(t *testing.T) {
	data, err := FinancialIssuesBytes(nil)
	if err != nil {
		t.Fatalf("FinancialIssuesBytes: %v", err)
	}
	if got := string(data); got != "行番号(物理行),店舗名,伝票番号,金額(38列目)\n" {
		t.Errorf("empty table = %q, want header only", got)
	}
}

func TestWriteDateIssues(t *testing.T) {
	issues := []checker.DateIssue{
		{
			RecordNumber:  2,
			PhysicalLine:  3,
			Severity:      checker.SeverityError,
			Kind:          checker.KindMandatoryDateInvalid,
			MandatoryDate: "bogus",
			SecondaryDate: "2024/05/01 10:00:00",
			Note:          "9列目に yyyy/mm/dd hh:mm:ss が必要です（業務上あり得ないデータ）。",
		},
	}

	data, err := DateIssuesBytes(issues)
	if err != nil {
		t.Fatalf("DateIssuesBytes: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "レコード番号,開始物理行(参考),重要度,種別,9列目,17列目,補足" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2,3,ERROR,COL9_MISSING_OR_INVALID,bogus,2024/05/01 10:00:00,") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteDateIssuesQuotesEmbeddedCommas(t *testing.T) {
	issues := []checker.DateIssue{
		{RecordNumber: 1, PhysicalLine: 2, Severity: checker.SeverityWarn,
			Kind: checker.KindSecondaryDateEmpty, Note: "note, with comma"},
	}

	data, err := DateIssuesBytes(issues)
	if err != nil {
		t.Fatalf("DateIssuesBytes: %v", err)
	}
	if !strings.Contains(string(data), `"note, with comma"`) {
		t.Errorf("comma in note not quoted: %q", data)
	}
}
