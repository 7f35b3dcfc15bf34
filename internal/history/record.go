package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"
)

// Direction names a conversion direction.
type Direction string

const (
	EquationToTable Direction = "equation-to-table"
	TableToEquation Direction = "table-to-equation"
)

// Record is one logged conversion.
type Record struct {
	Seq            int64     `json:"seq"`
	ID             string    `json:"id"`
	Direction      Direction `json:"direction"`
	InputPath      string    `json:"input_path"`
	GroupCount     int       `json:"group_count"`
	TermCount      int       `json:"term_count"`
	EquationHash   string    `json:"equation_hash"`
	EquationLength int       `json:"equation_length"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRecord builds a record for an equation; ID, Seq and CreatedAt are
// assigned by Append.
func NewRecord(dir Direction, inputPath, equation string, groups, terms int) Record {
	return Record{
		Direction:      dir,
		InputPath:      inputPath,
		GroupCount:     groups,
		TermCount:      terms,
		EquationHash:   EquationHash(equation),
		EquationLength: utf8.RuneCountInString(equation),
	}
}

// Append inserts rec and returns it with ID, Seq and CreatedAt filled in.
// A caller-supplied ID is kept.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = s.ids.Generate()
	}
	rec.CreatedAt = s.clock().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions
		(id, direction, input_path, group_count, term_count, equation_hash, equation_length, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		string(rec.Direction),
		rec.InputPath,
		rec.GroupCount,
		rec.TermCount,
		rec.EquationHash,
		rec.EquationLength,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Record{}, fmt.Errorf("append record: %w", err)
	}

	rec.Seq, err = res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("append record: %w", err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns every record. Returns an empty slice (not nil) if there are none.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT seq, id, direction, input_path, group_count, term_count, equation_hash, equation_length, created_at
		FROM conversions
		ORDER BY seq DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}

	return records, nil
}

// FindByHash returns every record whose equation hash matches, oldest first.
func (s *Store) FindByHash(ctx context.Context, hash string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, direction, input_path, group_count, term_count, equation_hash, equation_length, created_at
		FROM conversions
		WHERE equation_hash = ?
		ORDER BY seq ASC
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("query conversions by hash: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var direction, createdAt string
	if err := rows.Scan(
		&rec.Seq,
		&rec.ID,
		&direction,
		&rec.InputPath,
		&rec.GroupCount,
		&rec.TermCount,
		&rec.EquationHash,
		&rec.EquationLength,
		&createdAt,
	); err != nil {
		return Record{}, fmt.Errorf("scan conversion: %w", err)
	}

	rec.Direction = Direction(direction)
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = t
	return rec, nil
}
