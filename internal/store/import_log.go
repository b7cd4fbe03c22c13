package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// CreateImportLog inserts a processing entry and returns its id
func (s *Store) CreateImportLog(log *model.ImportLog) (int64, error) {
	if log.StartedAt.IsZero() {
		log.StartedAt = time.Now()
	}
	if log.Status == "" {
		log.Status = model.ImportStatusProcessing
	}
	res, err := s.db.Exec(`
		INSERT INTO import_logs (workbook_id, filename, source, sheet, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, log.WorkbookID, log.Filename, string(log.Source), log.Sheet, log.Status, log.StartedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	log.ID = id
	return id, nil
}

// CompleteImportLog stores the outcome of a load
func (s *Store) CompleteImportLog(log *model.ImportLog) error {
	now := time.Now()
	log.CompletedAt = &now
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			workbook_id = ?,
			sheet = ?,
			total_rows = ?,
			kept_rows = ?,
			dropped_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = ?
		WHERE id = ?
	`, log.WorkbookID, log.Sheet, log.TotalRows, log.KeptRows, log.DroppedRows,
		log.Status, log.ErrorMessage, now.UTC(), log.ID)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ListImportLogs most recent first; limit <= 0 means 50
func (s *Store) ListImportLogs(limit int) ([]model.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, workbook_id, filename, source, sheet, total_rows, kept_rows,
			dropped_rows, status, error_message, started_at, completed_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	logs := []model.ImportLog{}
	for rows.Next() {
		l, err := scanImportLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// LastImportLog most recent entry, nil when there is none
func (s *Store) LastImportLog() (*model.ImportLog, error) {
	row := s.db.QueryRow(`
		SELECT id, workbook_id, filename, source, sheet, total_rows, kept_rows,
			dropped_rows, status, error_message, started_at, completed_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT 1
	`)
	l, err := scanImportLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanImportLog(row scanner) (model.ImportLog, error) {
	var (
		l         model.ImportLog
		source    string
		completed sql.NullTime
	)
	err := row.Scan(&l.ID, &l.WorkbookID, &l.Filename, &source, &l.Sheet, &l.TotalRows,
		&l.KeptRows, &l.DroppedRows, &l.Status, &l.ErrorMessage, &l.StartedAt, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, err
		}
		return l, fmt.Errorf("failed to scan import log: %w", err)
	}
	l.Source = model.ImportSource(source)
	if completed.Valid {
		t := completed.Time
		l.CompletedAt = &t
	}
	return l, nil
}
