// Package api exposes the ledger computations as a read-only JSON API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/ledgererror"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/performance"
	"fjacquet/lendtrack/internal/report"
	"fjacquet/lendtrack/internal/service"
	"fjacquet/lendtrack/internal/timeseries"

	"github.com/gorilla/mux"
)

// Handler serves the API endpoints.
type Handler struct {
	ledger *service.LedgerService
	logger logging.Logger
	now    func() time.Time
}

// NewHandler creates a Handler. now supplies the current instant for
// requests that do not pass one.
func NewHandler(ledger *service.LedgerService, logger logging.Logger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{ledger: ledger, logger: logger, now: now}
}

// TotalsResponse is the body of the totals endpoint.
type TotalsResponse struct {
	report.ObligationTotals
	AsOf time.Time `json:"as_of"`
}

// PerformanceResponse is the body of the contact performance endpoint.
type PerformanceResponse struct {
	Contacts []performance.Performance `json:"contacts"`
	Timely   []performance.Performance `json:"timely"`
	Delayed  []performance.Performance `json:"delayed"`
}

// ChartResponse is the body of the chart endpoint.
type ChartResponse struct {
	Start       time.Time              `json:"start"`
	End         time.Time              `json:"end"`
	Granularity timeseries.Granularity `json:"granularity"`
	Buckets     []timeseries.Bucket    `json:"buckets"`
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Totals returns the totals and pending figures of one obligation.
func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.instant(r, "as_of", h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}

	totals, err := h.ledger.Totals([]string{mux.Vars(r)["id"]}, models.ObligationFilter{}, asOf)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, TotalsResponse{ObligationTotals: totals[0], AsOf: asOf})
}

// Transactions returns the totals of every obligation matching the type,
// status, contact, start and end query parameters. contact may repeat.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.instant(r, "as_of", h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}

	q := r.URL.Query()
	filter, err := models.NewObligationFilter(q.Get("type"), q.Get("status"), q["contact"], q.Get("start"), q.Get("end"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	totals, err := h.ledger.Totals(nil, filter, asOf)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, totals)
}

// History returns the activities of the whole ledger matching the contact,
// start and end query parameters, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := models.NewActivityFilter(q["contact"], q.Get("start"), q.Get("end"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	feed, err := h.ledger.History(filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, feed)
}

// Activities returns the activities of one obligation, newest first.
func (h *Handler) Activities(w http.ResponseWriter, r *http.Request) {
	acts, err := h.ledger.Activities(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, acts)
}

// Chart aggregates the ledger over a range given either as start/end or
// as a preset.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	frame, err := h.frame(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	buckets, err := h.ledger.Chart(frame)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ChartResponse{
		Start: frame.Start, End: frame.End, Granularity: frame.Granularity, Buckets: buckets,
	})
}

// Contacts lists the contacts eligible for new obligations.
func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.ledger.EligibleContacts()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, contacts)
}

// Performance returns every contact's score plus the rankings.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	scores, ranking, err := h.ledger.Performance()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, PerformanceResponse{
		Contacts: scores, Timely: ranking.Timely, Delayed: ranking.Delayed,
	})
}

// Summary returns the dashboard.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.instant(r, "as_of", h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}

	d, err := h.ledger.Dashboard(asOf)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

func (h *Handler) frame(r *http.Request) (timeseries.Frame, error) {
	q := r.URL.Query()

	g := timeseries.Month
	if raw := q.Get("granularity"); raw != "" {
		parsed, err := timeseries.ParseGranularity(raw)
		if err != nil {
			return timeseries.Frame{}, &ledgererror.ValidationError{Field: "granularity", Value: raw, Reason: err.Error()}
		}
		g = parsed
	}

	if raw := q.Get("preset"); raw != "" {
		p, err := timeseries.ParsePreset(raw)
		if err != nil {
			return timeseries.Frame{}, &ledgererror.ValidationError{Field: "preset", Value: raw, Reason: err.Error()}
		}
		return h.ledger.ResolvePreset(p, g, h.now())
	}

	if q.Get("start") == "" || q.Get("end") == "" {
		return timeseries.Frame{}, &ledgererror.ValidationError{Field: "start/end", Reason: "both are required unless a preset is given"}
	}
	start, err := h.instant(r, "start", time.Time{})
	if err != nil {
		return timeseries.Frame{}, err
	}
	end, err := dateutils.ParseRangeEnd(q.Get("end"), time.UTC)
	if err != nil {
		return timeseries.Frame{}, &ledgererror.ValidationError{Field: "end", Value: q.Get("end"), Reason: err.Error()}
	}
	if start.After(end) {
		return timeseries.Frame{}, &ledgererror.ValidationError{Field: "start", Value: q.Get("start"), Reason: "must not be after end"}
	}
	return timeseries.Frame{Start: start, End: end, Granularity: g}, nil
}

// instant parses a date query parameter, returning fallback when absent.
func (h *Handler) instant(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := dateutils.ParseDate(raw, time.UTC)
	if err != nil {
		return time.Time{}, &ledgererror.ValidationError{Field: name, Value: raw, Reason: err.Error()}
	}
	return t, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Warn("Failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var notFound *ledgererror.NotFoundError
	var invalid *ledgererror.ValidationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
	default:
		h.logger.WithError(err).Error("Request failed")
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
