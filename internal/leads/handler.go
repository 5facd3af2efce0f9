package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/adlweddings/wedding-lead-platform/internal/observability/metrics"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

// SubmissionIDHeader carries the client-generated idempotency key, when the
// optional duplicate guard is enabled.
const SubmissionIDHeader = "X-Submission-Id"

// Notifier sends the new-lead email. Implementations are best-effort: they
// log and swallow their own failures, so Intake never blocks on them.
type Notifier interface {
	Notify(ctx context.Context, rec *Record)
}

// DedupGuard remembers submission IDs. FirstSeen reports whether key is new;
// a storage error counts as first-seen so a flaky guard never drops leads.
type DedupGuard interface {
	FirstSeen(ctx context.Context, key string) (bool, error)
}

// Response is the intake envelope: result is "success" or "error".
type Response struct {
	Result    string  `json:"result"`
	Data      *Record `json:"data,omitempty"`
	Error     string  `json:"error,omitempty"`
	Duplicate bool    `json:"duplicate,omitempty"`
}

// Handler handles HTTP requests for leads
type Handler struct {
	sheet    Sheet
	notifier Notifier
	guard    DedupGuard
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates a new leads handler. notifier, guard and m may be nil.
func NewHandler(sheet Sheet, notifier Notifier, guard DedupGuard, m *metrics.LeadMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sheet:    sheet,
		notifier: notifier,
		guard:    guard,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Intake handles POST /leads requests.
func (h *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	var rec Record

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&rec); err != nil {
		h.logger.Error("failed to decode lead payload", "error", err)
		h.metrics.ObserveLead("error")
		writeJSON(w, http.StatusBadRequest, Response{Result: "error", Error: err.Error()})
		return
	}

	rec.Normalize(h.now)

	if h.guard != nil {
		if key := strings.TrimSpace(r.Header.Get(SubmissionIDHeader)); key != "" {
			first, err := h.guard.FirstSeen(r.Context(), key)
			if err != nil {
				h.logger.Warn("dedup guard unavailable", "error", err)
			} else if !first {
				h.logger.Info("duplicate submission ignored", "submission_id", key)
				h.metrics.ObserveLead("duplicate")
				writeJSON(w, http.StatusOK, Response{Result: "success", Data: &rec, Duplicate: true})
				return
			}
		}
	}

	index, err := h.sheet.Append(r.Context(), &rec)
	if err != nil {
		h.logger.Error("failed to append lead row", "error", err)
		h.metrics.ObserveLead("error")
		writeJSON(w, http.StatusInternalServerError, Response{Result: "error", Error: err.Error()})
		return
	}

	h.logger.Info("lead appended", "row", index, "name", rec.Name, "budget", rec.Budget)
	h.metrics.ObserveLead("success")

	if h.notifier != nil {
		h.notifier.Notify(r.Context(), &rec)
	}

	writeJSON(w, http.StatusOK, Response{Result: "success", Data: &rec})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
