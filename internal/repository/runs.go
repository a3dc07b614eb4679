package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/pdftext/constants"
)

// Run is one recorded extraction invocation.
type Run struct {
	ID           uuid.UUID
	SourcePath   string
	OutputPath   string
	Languages    string
	Pages        int
	FailedPages  int
	Status       constants.RunStatus
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

type RunRepository interface {
	Record(ctx context.Context, run Run) error
	List(ctx context.Context) ([]Run, error)
}

type runRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRunRepository(db *sql.DB, log *slog.Logger) RunRepository {
	if log == nil {
		log = slog.Default()
	}
	return &runRepo{db: db, log: log}
}

func (r *runRepo) Record(ctx context.Context, run Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs
			(id, source_path, output_path, languages, pages, failed_pages, status, error_message, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.SourcePath,
		run.OutputPath,
		run.Languages,
		run.Pages,
		run.FailedPages,
		string(run.Status),
		run.ErrorMessage,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		r.log.Error("run record failed", "run_id", run.ID, "err", err)
		return fmt.Errorf("record run: %w", err)
	}
	r.log.Info("run recorded", "run_id", run.ID, "status", run.Status, "pages", run.Pages)
	return nil
}

func (r *runRepo) List(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_path, output_path, languages, pages, failed_pages, status, error_message, started_at, finished_at
		FROM runs ORDER BY started_at`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var id, status, started, finished string
		if err := rows.Scan(&id, &run.SourcePath, &run.OutputPath, &run.Languages,
			&run.Pages, &run.FailedPages, &status, &run.ErrorMessage, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		run.Status = constants.RunStatus(status)
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", started, err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finished, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
