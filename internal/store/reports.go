package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Report kinds.
const (
	KindWeek  = "week"
	KindMonth = "month"
)

// createdAtLayout is fixed width so text order matches time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("not found")

// Report is an archived report.
type Report struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	TargetDate string          `json:"target_date"`
	SpecHash   string          `json:"spec_hash"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SaveReport archives r. ID and CreatedAt are assigned when empty.
// Returns the stored report.
func (s *Store) SaveReport(ctx context.Context, r Report) (Report, error) {
	if r.Kind != KindWeek && r.Kind != KindMonth {
		return Report{}, fmt.Errorf("save report: unknown kind %q", r.Kind)
	}
	if !json.Valid(r.Payload) {
		return Report{}, fmt.Errorf("save report: payload is not valid JSON")
	}
	if r.ID == "" {
		r.ID = s.ids.Generate()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.clock.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, kind, target_date, spec_hash, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Kind,
		r.TargetDate,
		r.SpecHash,
		string(r.Payload),
		r.CreatedAt.Format(createdAtLayout),
	)
	if err != nil {
		return Report{}, fmt.Errorf("save report: %w", err)
	}
	return r, nil
}

// GetReport returns the report with the given ID, or ErrNotFound.
func (s *Store) GetReport(ctx context.Context, id string) (Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, target_date, spec_hash, payload, created_at
		FROM reports
		WHERE id = ?
	`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Report{}, fmt.Errorf("get report %s: %w", id, err)
	}
	return r, nil
}

// ListFilter narrows ListReports. Zero values match everything.
type ListFilter struct {
	Kind  string
	Limit int
}

// ListReports returns archived reports, newest first.
func (s *Store) ListReports(ctx context.Context, f ListFilter) ([]Report, error) {
	query := `
		SELECT id, kind, target_date, spec_hash, payload, created_at
		FROM reports`
	var args []any
	if f.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, f.Kind)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (Report, error) {
	var r Report
	var payload, created string
	if err := row.Scan(&r.ID, &r.Kind, &r.TargetDate, &r.SpecHash, &payload, &created); err != nil {
		return Report{}, err
	}
	t, err := time.Parse(createdAtLayout, created)
	if err != nil {
		return Report{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	r.CreatedAt = t
	r.Payload = json.RawMessage(payload)
	return r, nil
}
