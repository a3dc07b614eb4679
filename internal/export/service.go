package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/pdftext/internal/repository"
)

// Service is a tiny façade over the run repository that produces XLSX bytes
// for history exports.
type Service struct {
	runs   repository.RunRepository
	logger *slog.Logger
}

func NewService(runs repository.RunRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{runs: runs, logger: logger}
}

// ExportRunsXLSX returns an XLSX workbook (as bytes) listing every recorded
// run, oldest first.
func (s *Service) ExportRunsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	runs, err := s.runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Runs"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Run ID",
		"Started",
		"Source",
		"Output",
		"Languages",
		"Pages",
		"Failed Pages",
		"Status",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range runs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.ID.String())
		write(2, r.StartedAt.Format(time.RFC3339))
		write(3, r.SourcePath)
		write(4, r.OutputPath)
		write(5, r.Languages)
		write(6, r.Pages)
		write(7, r.FailedPages)
		write(8, string(r.Status))
		write(9, truncate(r.ErrorMessage, 140))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 38) // uuid
	_ = f.SetColWidth(sheet, "B", "B", 22) // timestamp
	_ = f.SetColWidth(sheet, "C", "D", 48) // paths
	_ = f.SetColWidth(sheet, "I", "I", 48) // error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(runs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
