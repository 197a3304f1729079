package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ktsuji/csvchecker/internal/checker"
	"github.com/ktsuji/csvchecker/internal/config"
	"github.com/ktsuji/csvchecker/internal/export"
)

var (
	profilePath string
	outDir      string
	strict      bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file.csv> [file.csv ...]",
	Short: "Run the validation rules against export files",
	Long: `check reads Shift_JIS CSV exports, runs the amount and date rules,
and prints a summary per file. Each file is an independent run. With
--out-dir the findings are also written as CSV tables.

Exit codes:
  0  all files checked, no fatal error (findings may exist)
  1  fatal error (decode failure, size or line ceiling), or any
     finding when --strict is set`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed bool
		for _, path := range args {
			if err := runCheck(path); err != nil {
				if len(args) == 1 {
					return err
				}
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed = true
			}
		}
		if failed {
			return errors.New("one or more files failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&profilePath, "profile", "", "YAML profile overriding the validation rules")
	checkCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "directory to write the findings CSVs into")
	checkCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any finding exists")
}

func runCheck(path string) error {
	cfg := checker.DefaultConfig()
	if profilePath != "" {
		var err error
		cfg, err = config.LoadProfile(profilePath)
		if err != nil {
			return err
		}
	}

	c, err := checker.New(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	res, err := c.Check(data)
	if err != nil {
		return err
	}
	res.FileName = filepath.Base(path)

	printSummary(res)

	if outDir != "" {
		if err := writeFindings(res); err != nil {
			return err
		}
	}

	if strict && res.HasFindings() {
		return fmt.Errorf("findings present: %d financial, %d date errors, %d warnings",
			len(res.Financial), res.Dates.Errors, res.Dates.Warnings)
	}
	return nil
}

func printSummary(res *checker.Result) {
	fmt.Printf("File:              %s\n", res.FileName)
	fmt.Printf("Data records:      %d\n", res.DataRecords)
	fmt.Printf("Physical lines:    %d\n", res.PhysicalLines)
	fmt.Printf("Financial issues:  %d\n", len(res.Financial))
	fmt.Printf("Date checks:       %d cells (%d mandatory OK, %d secondary OK)\n",
		res.Dates.CheckedCells, res.Dates.MandatoryOK, res.Dates.SecondaryOK)
	fmt.Printf("Date errors:       %d\n", res.Dates.Errors)
	fmt.Printf("Date warnings:     %d\n", res.Dates.Warnings)

	for _, issue := range res.Financial {
		fmt.Printf("  [FINANCIAL] line %d: %s / %s / amount %s\n",
			issue.PhysicalLine, issue.StoreName, issue.SlipNumber, issue.Amount)
	}
	for _, issue := range res.Dates.Issues {
		fmt.Printf("  [%s] record %d (line %d): %s\n",
			issue.Severity, issue.RecordNumber, issue.PhysicalLine, issue.Note)
	}
}

func writeFindings(res *checker.Result) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	base := strings.TrimSuffix(res.FileName, filepath.Ext(res.FileName))

	finPath := filepath.Join(outDir, base+"_financial_issues.csv")
	fin, err := os.Create(finPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", finPath, err)
	}
	defer fin.Close()
	if err := export.WriteFinancialIssues(fin, res.Financial); err != nil {
		return err
	}

	datePath := filepath.Join(outDir, base+"_date_issues.csv")
	dates, err := os.Create(datePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", datePath, err)
	}
	defer dates.Close()
	if err := export.WriteDateIssues(dates, res.Dates.Issues); err != nil {
		return err
	}

	fmt.Printf("Findings written to %s\n", outDir)
	return nil
}
