package leads

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresSheet persists the lead sheet in a lead_rows table with an explicit
// position column. Append and Resort each run in their own transaction, which
// makes the single-writer guarantee the original host provided for free an
// explicit property of this store.
type PostgresSheet struct {
	db db
}

// NewPostgresSheet initializes a sheet backed by a pgx pool.
func NewPostgresSheet(db db) *PostgresSheet {
	if db == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresSheet{db: db}
}

// Append inserts rec at the next position and returns its sheet row index
// (header row counts as 1).
func (s *PostgresSheet) Append(ctx context.Context, rec *Record) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("leads: begin append: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var position int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM lead_rows`,
	).Scan(&position); err != nil {
		return 0, fmt.Errorf("leads: next position: %w", err)
	}

	background := ""
	if IsPremium(rec.Budget) {
		background = HighlightColor
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO lead_rows (id, position, ts, name, phone, event_date, guest_count, budget, venue, font_family, background)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.New(),
		position,
		rec.Timestamp,
		rec.Name,
		rec.Phone,
		rec.EventDate,
		rec.GuestCount,
		rec.Budget,
		rec.Venue,
		FontFamily,
		background,
	); err != nil {
		return 0, fmt.Errorf("leads: insert row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("leads: commit append: %w", err)
	}

	return position + 1, nil
}

// Rows returns all data rows ordered by position.
func (s *PostgresSheet) Rows(ctx context.Context) ([]Row, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("leads: begin rows: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT ts, name, phone, event_date, guest_count, budget, venue, font_family, background
		FROM lead_rows
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("leads: select rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(
			&r.Cells[ColTimestamp],
			&r.Cells[ColName],
			&r.Cells[ColPhone],
			&r.Cells[ColEventDate],
			&r.Cells[ColGuestCount],
			&r.Cells[ColBudget],
			&r.Cells[ColVenue],
			&r.FontFamily,
			&r.Background,
		); err != nil {
			return nil, fmt.Errorf("leads: scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: iterate rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("leads: commit rows: %w", err)
	}
	return out, nil
}

// Resort rewrites positions ordered by the raw budget string descending,
// tie-broken by the timestamp string descending. The database collation
// decides "descending" here, same as the sheet engine did originally.
func (s *PostgresSheet) Resort(ctx context.Context) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("leads: begin resort: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM lead_rows`).Scan(&count); err != nil {
		return fmt.Errorf("leads: count rows: %w", err)
	}
	if count <= 1 {
		return tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, `
		WITH ranked AS (
			SELECT id, ROW_NUMBER() OVER (ORDER BY budget DESC, ts DESC) AS rn
			FROM lead_rows
		)
		UPDATE lead_rows SET position = ranked.rn
		FROM ranked
		WHERE lead_rows.id = ranked.id
	`); err != nil {
		return fmt.Errorf("leads: resort rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("leads: commit resort: %w", err)
	}
	return nil
}

var _ Sheet = (*PostgresSheet)(nil)
