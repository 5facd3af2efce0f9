package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

type recordingNotifier struct {
	calls []Record
}

func (n *recordingNotifier) Notify(_ context.Context, rec *Record) {
	n.calls = append(n.calls, *rec)
}

func postLead(t *testing.T, h *Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.Intake(w, req)
	return w
}

func TestIntake_Success(t *testing.T) {
	sheet := NewMemorySheet()
	notifier := &recordingNotifier{}
	handler := NewHandler(sheet, notifier, nil, nil, logging.Default())

	rec := Record{
		Timestamp:  "25/12/2024, 6:30:05 pm",
		Name:       "Asha Rao",
		Phone:      "9876543210",
		EventDate:  "2025-02-14",
		GuestCount: "100-300",
		Budget:     "₹2L - ₹5L",
		Venue:      "Kohima",
	}
	body, _ := json.Marshal(rec)

	w := postLead(t, handler, string(body), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result != "success" {
		t.Fatalf("expected success result, got %q", resp.Result)
	}
	if resp.Data == nil || resp.Data.Name != "Asha Rao" {
		t.Fatalf("expected normalized record echoed back, got %+v", resp.Data)
	}

	rows, _ := sheet.Rows(context.Background())
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.calls))
	}
}

func TestIntake_MalformedPayload(t *testing.T) {
	sheet := NewMemorySheet()
	notifier := &recordingNotifier{}
	handler := NewHandler(sheet, notifier, nil, nil, logging.Default())

	w := postLead(t, handler, "{", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result != "error" || resp.Error == "" {
		t.Fatalf("expected error envelope, got %+v", resp)
	}

	rows, _ := sheet.Rows(context.Background())
	if len(rows) != 0 {
		t.Fatalf("expected zero rows after parse failure, got %d", len(rows))
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("expected zero notifications after parse failure, got %d", len(notifier.calls))
	}
}

func TestIntake_MissingFieldsNormalizedToEmpty(t *testing.T) {
	sheet := NewMemorySheet()
	handler := NewHandler(sheet, nil, nil, nil, logging.Default())

	w := postLead(t, handler, `{"name":"Sparse Lead"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	rows, _ := sheet.Rows(context.Background())
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}

	cells := rows[0].Cells
	if cells[ColTimestamp] == "" {
		t.Error("expected server-side timestamp fallback, got empty")
	}
	for _, col := range []int{ColPhone, ColEventDate, ColGuestCount, ColBudget, ColVenue} {
		if cells[col] != "" {
			t.Errorf("expected column %d empty, got %q", col, cells[col])
		}
	}
}

type failingSheet struct{}

func (failingSheet) Append(context.Context, *Record) (int, error) { return 0, errors.New("boom") }
func (failingSheet) Rows(context.Context) ([]Row, error)          { return nil, errors.New("boom") }
func (failingSheet) Resort(context.Context) error                 { return errors.New("boom") }

func TestIntake_SheetFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	handler := NewHandler(failingSheet{}, notifier, nil, nil, logging.Default())

	w := postLead(t, handler, `{"name":"Doomed"}`, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result != "error" {
		t.Fatalf("expected error result, got %q", resp.Result)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("expected no notification when append fails, got %d", len(notifier.calls))
	}
}

func TestIntake_ResubmissionWithoutGuardDuplicates(t *testing.T) {
	sheet := NewMemorySheet()
	notifier := &recordingNotifier{}
	handler := NewHandler(sheet, notifier, nil, nil, logging.Default())

	body := `{"name":"Repeat","budget":"₹10L+"}`
	postLead(t, handler, body, nil)
	postLead(t, handler, body, nil)

	rows, _ := sheet.Rows(context.Background())
	if len(rows) != 2 {
		t.Fatalf("expected duplicate row without guard, got %d rows", len(rows))
	}
	if len(notifier.calls) != 2 {
		t.Fatalf("expected duplicate email without guard, got %d", len(notifier.calls))
	}
}

type mapGuard struct {
	seen map[string]bool
	err  error
}

func (g *mapGuard) FirstSeen(_ context.Context, key string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

func TestIntake_GuardSuppressesDuplicate(t *testing.T) {
	sheet := NewMemorySheet()
	notifier := &recordingNotifier{}
	guard := &mapGuard{seen: map[string]bool{}}
	handler := NewHandler(sheet, notifier, guard, nil, logging.Default())

	body := `{"name":"Repeat","budget":"₹10L+"}`
	headers := map[string]string{SubmissionIDHeader: "sub-1"}

	first := postLead(t, handler, body, headers)
	second := postLead(t, handler, body, headers)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected both submissions acknowledged, got %d and %d", first.Code, second.Code)
	}

	var resp Response
	if err := json.NewDecoder(second.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Duplicate {
		t.Fatal("expected duplicate flag on second submission")
	}

	rows, _ := sheet.Rows(context.Background())
	if len(rows) != 1 {
		t.Fatalf("expected one row with guard enabled, got %d", len(rows))
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected one email with guard enabled, got %d", len(notifier.calls))
	}
}

func TestIntake_GuardErrorDoesNotDropLead(t *testing.T) {
	sheet := NewMemorySheet()
	guard := &mapGuard{err: errors.New("redis down")}
	handler := NewHandler(sheet, nil, guard, nil, logging.Default())

	w := postLead(t, handler, `{"name":"Guarded"}`, map[string]string{SubmissionIDHeader: "sub-2"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected lead accepted despite guard error, got %d", w.Code)
	}

	rows, _ := sheet.Rows(context.Background())
	if len(rows) != 1 {
		t.Fatalf("expected row persisted despite guard error, got %d", len(rows))
	}
}

func TestIntake_PremiumLeadEndToEnd(t *testing.T) {
	sheet := NewMemorySheet()
	notifier := &recordingNotifier{}
	handler := NewHandler(sheet, notifier, nil, nil, logging.Default())

	body := `{"name":"Test Client","phone":"9876543210","eventDate":"2024-12-25","guestCount":"300-500","budget":"₹10L+","venue":"Dimapur"}`
	w := postLead(t, handler, body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	rows, _ := sheet.Rows(context.Background())
	if len(rows) != 1 {
		t.Fatalf("expected one appended row, got %d", len(rows))
	}
	if rows[0].Background != HighlightColor {
		t.Errorf("expected gold highlight, got %q", rows[0].Background)
	}
	if rows[0].Cells[ColVenue] != "Dimapur" {
		t.Errorf("expected venue preserved, got %q", rows[0].Cells[ColVenue])
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.calls))
	}
	if notifier.calls[0].Budget != "₹10L+" {
		t.Errorf("expected premium budget passed to notifier, got %q", notifier.calls[0].Budget)
	}
}
