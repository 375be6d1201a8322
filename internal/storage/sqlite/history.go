package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/courtside/internal/domain"
)

// ListOptions filters ListApplications. Zero values match everything.
type ListOptions struct {
	Kind    domain.SlotKind
	Outcome domain.ApplicationOutcome
	// Limit caps the number of rows; 0 means no limit.
	Limit int
}

// RecordApplication stores rec and returns its generated ID.
func (s *Store) RecordApplication(ctx context.Context, rec domain.ApplicationRecord) (int64, error) {
	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (slot_id, kind, title, outcome, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SlotID, string(rec.Kind), rec.Title, string(rec.Outcome), rec.Message, utcString(rec.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: record application: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: read inserted id: %w", err)
	}
	return id, nil
}

// GetApplication returns the record with the given id.
func (s *Store) GetApplication(ctx context.Context, id int64) (domain.ApplicationRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slot_id, kind, title, outcome, message, created_at FROM applications WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ApplicationRecord{}, fmt.Errorf("sqlite storage: get application: %w: id %d", ErrRecordNotFound, id)
	}
	if err != nil {
		return domain.ApplicationRecord{}, fmt.Errorf("sqlite storage: get application: %w", err)
	}
	return rec, nil
}

// ListApplications returns the matching records, newest first.
func (s *Store) ListApplications(ctx context.Context, opts ListOptions) ([]domain.ApplicationRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(opts.Kind))
	}
	if opts.Outcome != "" {
		where = append(where, "outcome = ?")
		args = append(args, string(opts.Outcome))
	}

	query := `SELECT id, slot_id, kind, title, outcome, message, created_at FROM applications`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list applications: %w", err)
	}
	defer rows.Close()

	var records []domain.ApplicationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: scan application: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: iterate applications: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (domain.ApplicationRecord, error) {
	var (
		rec       domain.ApplicationRecord
		kind      string
		outcome   string
		createdAt string
	)
	if err := row.Scan(&rec.ID, &rec.SlotID, &kind, &rec.Title, &outcome, &rec.Message, &createdAt); err != nil {
		return domain.ApplicationRecord{}, err
	}
	rec.Kind = domain.SlotKind(kind)
	rec.Outcome = domain.ApplicationOutcome(outcome)
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.ApplicationRecord{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = ts
	return rec, nil
}

func validateRecord(rec domain.ApplicationRecord) error {
	if rec.SlotID <= 0 {
		return fmt.Errorf("sqlite storage: %w: slot id must be positive", ErrInvalidRecord)
	}
	if !rec.Kind.IsValid() {
		return fmt.Errorf("sqlite storage: %w: kind %q", ErrInvalidRecord, rec.Kind)
	}
	switch rec.Outcome {
	case domain.OutcomeApplied, domain.OutcomeDuplicate, domain.OutcomeFailed:
	default:
		return fmt.Errorf("sqlite storage: %w: outcome %q", ErrInvalidRecord, rec.Outcome)
	}
	return nil
}
