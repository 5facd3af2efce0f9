package leads

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Row is one persisted line of the lead sheet, formatting included.
type Row struct {
	Cells      [ColumnCount]string
	FontFamily string
	Background string
}

// Sheet is the append-only, position-ordered store backing the lead log.
// Append returns the sheet row index of the new row; the header occupies
// row 1, so the first data row is 2.
type Sheet interface {
	Append(ctx context.Context, rec *Record) (int, error)
	Rows(ctx context.Context) ([]Row, error)
	Resort(ctx context.Context) error
}

// MemorySheet keeps the lead sheet in memory behind a mutex. The lock spans
// both Append and Resort so a resort never observes a row mid-write.
type MemorySheet struct {
	mu   sync.RWMutex
	rows []Row
}

// NewMemorySheet creates an empty in-memory sheet.
func NewMemorySheet() *MemorySheet {
	return &MemorySheet{}
}

// Append adds rec as the last row, stamping the uniform font and the gold
// highlight for premium budgets.
func (s *MemorySheet) Append(ctx context.Context, rec *Record) (int, error) {
	row := Row{
		Cells:      rec.Cells(),
		FontFamily: FontFamily,
	}
	if IsPremium(rec.Budget) {
		row.Background = HighlightColor
	}

	s.mu.Lock()
	s.rows = append(s.rows, row)
	index := len(s.rows) + 1
	s.mu.Unlock()

	return index, nil
}

// Rows returns a copy of all data rows in current sheet order.
func (s *MemorySheet) Rows(ctx context.Context) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// Resort reorders all data rows by raw budget string descending, then
// timestamp descending. This is a plain string sort, not the classifier's
// ranking; the two happen to agree for the current tier labels.
func (s *MemorySheet) Resort(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rows) <= 1 {
		return nil
	}

	sort.SliceStable(s.rows, func(i, j int) bool {
		bi, bj := s.rows[i].Cells[ColBudget], s.rows[j].Cells[ColBudget]
		if bi != bj {
			return strings.Compare(bi, bj) > 0
		}
		return strings.Compare(s.rows[i].Cells[ColTimestamp], s.rows[j].Cells[ColTimestamp]) > 0
	})
	return nil
}

var _ Sheet = (*MemorySheet)(nil)
