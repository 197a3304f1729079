package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ktsuji/csvchecker/internal/checker"
	"github.com/ktsuji/csvchecker/internal/export"
	"github.com/ktsuji/csvchecker/internal/logging"
	"github.com/ktsuji/csvchecker/internal/trivia"
)

// handleIndex serves the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleHealth reports liveness and the number of in-flight checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":       "ok",
		"activeChecks": s.service.ActiveChecks(),
	})
}

// handleCheck accepts a multipart upload and runs the validation.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Check.MaxFileBytes
	// Allow multipart overhead on top of the file ceiling
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read file")
		return
	}

	logger := logging.WithFields(r.Context(), "file", header.Filename, "size", len(data))
	logger.Info("check started")

	run, err := s.service.Check(r.Context(), header.Filename, data)
	if err != nil {
		s.writeCheckError(w, r, err)
		return
	}

	logger.Info("check finished",
		"run_id", run.ID,
		"records", run.Result.DataRecords,
		"financial_issues", len(run.Result.Financial),
		"date_errors", run.Result.Dates.Errors,
		"date_warnings", run.Result.Dates.Warnings,
	)

	writeJSON(w, run)
}

// writeCheckError maps validation failures to HTTP statuses.
func (s *Server) writeCheckError(w http.ResponseWriter, r *http.Request, err error) {
	var decodeErr *checker.DecodeError
	var limitErr *checker.LimitError

	switch {
	case errors.As(err, &decodeErr):
		writeError(w, r, http.StatusUnprocessableEntity, decodeErr.Error())
	case errors.As(err, &limitErr):
		writeError(w, r, http.StatusRequestEntityTooLarge, limitErr.Error())
	case errors.Is(err, checker.ErrTooManyChecks):
		w.Header().Set("Retry-After", "10")
		writeError(w, r, http.StatusServiceUnavailable, "server busy, try again shortly")
	default:
		writeError(w, r, http.StatusInternalServerError, "check failed")
	}
}

// handleResult returns a finished run by ID.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	run, ok := s.service.Get(chi.URLParam(r, "runID"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "run not found or expired")
		return
	}
	writeJSON(w, run)
}

// handleFinancialCSV serves the amount rule findings as a CSV download.
func (s *Server) handleFinancialCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := s.service.Get(chi.URLParam(r, "runID"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "run not found or expired")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("financial_issues_%s.csv", timestamp)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := export.WriteFinancialIssues(w, run.Result.Financial); err != nil {
		logging.FromContext(r.Context()).Error("csv write failed", "error", err)
	}
}

// handleDateIssuesCSV serves the date rule findings as a CSV download.
func (s *Server) handleDateIssuesCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := s.service.Get(chi.URLParam(r, "runID"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "run not found or expired")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("date_issues_%s.csv", timestamp)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := export.WriteDateIssues(w, run.Result.Dates.Issues); err != nil {
		logging.FromContext(r.Context()).Error("csv write failed", "error", err)
	}
}

// handleToday returns the day's blurb shown next to the results.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	info := trivia.Today(time.Now())
	writeJSON(w, map[string]any{
		"info": info,
		"text": info.Format(),
	})
}
