package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
)

// StoreImpl implements the HistoryStore interface.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &StoreImpl{} // Compile-time check

// NewStore creates a new HistoryStore with the specified backend.
// The none backend returns a store where every operation is a no-op.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &StoreImpl{backend: schema.NoneBackend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := createRunsTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}
	return &StoreImpl{db: db, backend: backend}, nil
}

// createRunsTable applies the first migration directly so a fresh database
// works without running "history migrate".
func createRunsTable(db *sql.DB, backend schema.DatabaseBackend) error {
	query, err := migrationsFS.ReadFile(fmt.Sprintf("migrations/%s/000001_create_runs.up.sql", backend))
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(query)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}
	return nil
}

func (s *StoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// BeginRun creates a new run record and returns its unique ID.
func (s *StoreImpl) BeginRun(info schema.RunInfo) (int64, error) {
	if s.disabled() {
		return 0, nil
	}

	params, err := json.Marshal(info.Parameters)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal run parameters: %w", err)
	}

	quoted := contract.QuoteIdent(runsTable, s.backend)
	args := []any{string(info.Kind), info.Title, info.Source, formatTime(info.StartTime, s.backend), string(params)}

	var runID int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (chart_kind, title, source, start_time, parameters) VALUES ($1, $2, $3, $4, $5) RETURNING run_id`, quoted)
		err = s.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (chart_kind, title, source, start_time, parameters) VALUES (?, ?, ?, ?, ?)`, quoted)
		var result sql.Result
		result, err = s.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (s *StoreImpl) EndRun(runID int64, outcome schema.RunOutcome) error {
	if s.disabled() {
		return nil
	}

	quoted := contract.QuoteIdent(runsTable, s.backend)
	row := s.db.QueryRow(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quoted, placeholder(s.backend, 1)), runID)
	startTime, err := s.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := outcome.EndTime.Sub(startTime).Milliseconds()

	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, rows_read = %s, categories = %s, output_path = %s WHERE run_id = %s`,
		quoted,
		placeholder(s.backend, 1), placeholder(s.backend, 2), placeholder(s.backend, 3),
		placeholder(s.backend, 4), placeholder(s.backend, 5), placeholder(s.backend, 6))
	_, err = s.db.Exec(query, formatTime(outcome.EndTime, s.backend), durationMs, outcome.RowsRead, outcome.Categories, outcome.OutputPath, runID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *StoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	if s.disabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultHistoryLimit
	}

	query := fmt.Sprintf(`SELECT run_id, chart_kind, title, source, start_time, end_time, run_duration_ms, rows_read, categories, output_path, parameters
		FROM %s ORDER BY run_id DESC LIMIT %s`, contract.QuoteIdent(runsTable, s.backend), placeholder(s.backend, 1))
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		switch s.backend {
		case schema.SQLiteBackend:
			var startStr string
			var endStr *string
			if err := rows.Scan(&record.RunID, &record.ChartKind, &record.Title, &record.Source, &startStr, &endStr,
				&record.RunDurationMs, &record.RowsRead, &record.Categories, &record.OutputPath, &record.Parameters); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			if record.StartTime, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&record.RunID, &record.ChartKind, &record.Title, &record.Source, &record.StartTime, &record.EndTime,
				&record.RunDurationMs, &record.RowsRead, &record.Categories, &record.OutputPath, &record.Parameters); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (s *StoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	quoted := contract.QuoteIdent(runsTable, s.backend)
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	status.TableSizes[runsTable] = int64(status.TotalRuns)
	if status.TotalRuns == 0 {
		return status, nil
	}

	row := s.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", quoted))
	if err := row.Scan(&status.LastRunID); err != nil {
		return status, fmt.Errorf("failed to get last run id: %w", err)
	}
	lastTime, err := s.scanTime(s.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoted)))
	if err != nil {
		return status, fmt.Errorf("failed to get last run time: %w", err)
	}
	status.LastRunTime = lastTime

	oldestTime, err := s.scanTime(s.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoted)))
	if err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}
	status.OldestRunTime = oldestTime

	row = s.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(rows_read), 0) FROM %s", quoted))
	if err := row.Scan(&status.TotalRowsRead); err != nil {
		return status, fmt.Errorf("failed to get total rows read: %w", err)
	}
	return status, nil
}

// Clear removes every run record.
func (s *StoreImpl) Clear() error {
	if s.disabled() {
		return nil
	}
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", contract.QuoteIdent(runsTable, s.backend))); err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// scanTime reads a start_time or end_time column, which SQLite stores as text.
func (s *StoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if s.backend == schema.SQLiteBackend {
		var str string
		if err := row.Scan(&str); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, str)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}
