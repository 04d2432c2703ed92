// Package service answers ledger questions against the persisted snapshot.
// It loads the snapshot once per call, resolves the interest convention and
// hands explicit inputs to the pure computation packages.
package service

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/lendtrack/internal/dashboard"
	"fjacquet/lendtrack/internal/interest"
	"fjacquet/lendtrack/internal/ledger"
	"fjacquet/lendtrack/internal/ledgererror"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/performance"
	"fjacquet/lendtrack/internal/report"
	"fjacquet/lendtrack/internal/store"
	"fjacquet/lendtrack/internal/timeseries"
)

// LedgerService combines the snapshot store with the computations.
type LedgerService struct {
	store      store.SnapshotStore
	aggregator *timeseries.Aggregator
	dashboard  *dashboard.Builder
	fallback   models.Convention
	logger     logging.Logger
}

// NewLedgerService creates a LedgerService. fallback is the convention used
// when the snapshot does not record one.
func NewLedgerService(st store.SnapshotStore, aggregator *timeseries.Aggregator,
	builder *dashboard.Builder, fallback models.Convention, logger logging.Logger) *LedgerService {
	return &LedgerService{
		store:      st,
		aggregator: aggregator,
		dashboard:  builder,
		fallback:   fallback,
		logger:     logger.WithField(logging.FieldComponent, "LedgerService"),
	}
}

func (s *LedgerService) load() (*store.Snapshot, models.Convention, error) {
	snap, err := s.store.Load()
	if err != nil {
		return nil, "", fmt.Errorf("loading ledger: %w", err)
	}
	return snap, snap.Convention(s.fallback), nil
}

// Convention returns the convention in effect.
func (s *LedgerService) Convention() (models.Convention, error) {
	_, conv, err := s.load()
	return conv, err
}

// SetConvention switches the stored convention, converting every rate, and
// persists the result. It returns the previous convention.
func (s *LedgerService) SetConvention(to models.Convention) (models.Convention, error) {
	snap, from, err := s.load()
	if err != nil {
		return "", err
	}

	// Pin the convention in effect so the conversion starts from it
	snap.Settings.InterestCalculation = from
	switched, err := store.SwitchConvention(*snap, to)
	if err != nil {
		return from, err
	}
	if err := s.store.Save(&switched); err != nil {
		return from, fmt.Errorf("saving ledger: %w", err)
	}

	s.logger.Info("Switched interest convention",
		logging.F("from", from.String()),
		logging.F(logging.FieldConvention, to.String()),
		logging.F(logging.FieldCount, len(switched.Transactions)))
	return from, nil
}

// Totals returns the totals of the given obligations, or of all of them
// when ids is empty, keeping those that match f. Contacts in f may be given
// by id or by name.
func (s *LedgerService) Totals(ids []string, f models.ObligationFilter, now time.Time) ([]report.ObligationTotals, error) {
	snap, conv, err := s.load()
	if err != nil {
		return nil, err
	}
	if f.ContactIDs, err = resolveContacts(snap.Contacts, f.ContactIDs); err != nil {
		return nil, err
	}

	obligations := snap.Transactions
	if len(ids) > 0 {
		obligations = make([]models.Obligation, 0, len(ids))
		for _, id := range ids {
			o, err := snap.Obligation(id)
			if err != nil {
				return nil, err
			}
			obligations = append(obligations, o)
		}
	}
	obligations = models.FilterObligations(obligations, f)

	totals := make([]report.ObligationTotals, 0, len(obligations))
	for _, o := range obligations {
		totals = append(totals, report.ObligationTotals{
			ID:          o.ID,
			Direction:   o.Direction,
			ContactName: models.ContactName(snap.Contacts, o.ContactID),
			Currency:    o.Currency,
			Rate:        interest.FormatRate(o.InterestRate, conv),
			Breakdown:   ledger.Totals(o, conv, now),
			Pending:     ledger.PendingFor(o, conv, now),
		})
	}
	return totals, nil
}

// History returns every activity matching f across the ledger, newest
// first. Contacts in f may be given by id or by name.
func (s *LedgerService) History(f models.ActivityFilter) ([]dashboard.RecentActivity, error) {
	snap, _, err := s.load()
	if err != nil {
		return nil, err
	}
	if f.ContactIDs, err = resolveContacts(snap.Contacts, f.ContactIDs); err != nil {
		return nil, err
	}

	feed := dashboard.Activities(snap.Transactions, snap.Contacts, f)
	s.logger.Debug("Filtered activity history", logging.F(logging.FieldCount, len(feed)))
	return feed, nil
}

// resolveContacts maps contact references to ids. A reference is an id or
// a case-insensitive name; a name shared by several contacts selects all
// of them.
func resolveContacts(contacts []models.Contact, refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if c, ok := models.FindContact(contacts, ref); ok {
			ids = append(ids, c.ID)
			continue
		}
		found := false
		for _, c := range contacts {
			if strings.EqualFold(c.Name, strings.TrimSpace(ref)) {
				ids = append(ids, c.ID)
				found = true
			}
		}
		if !found {
			return nil, &ledgererror.NotFoundError{Kind: "contact", ID: ref}
		}
	}
	return ids, nil
}

// Chart aggregates the whole ledger over frame.
func (s *LedgerService) Chart(frame timeseries.Frame) ([]timeseries.Bucket, error) {
	snap, _, err := s.load()
	if err != nil {
		return nil, err
	}

	buckets := s.aggregator.Aggregate(snap.Transactions, frame)
	s.logger.Debug("Aggregated chart",
		logging.F(logging.FieldGranularity, string(frame.Granularity)),
		logging.F(logging.FieldCount, len(buckets)))
	return buckets, nil
}

// ResolvePreset turns a preset into a frame, looking at the ledger data
// for the all-time range.
func (s *LedgerService) ResolvePreset(p timeseries.Preset, g timeseries.Granularity, now time.Time) (timeseries.Frame, error) {
	snap, _, err := s.load()
	if err != nil {
		return timeseries.Frame{}, err
	}
	start, end, err := timeseries.ResolvePreset(p, now, snap.Transactions)
	if err != nil {
		return timeseries.Frame{}, err
	}
	return timeseries.Frame{Start: start, End: end, Granularity: g}, nil
}

// Performance scores every contact and ranks them.
func (s *LedgerService) Performance() ([]performance.Performance, dashboard.Ranking, error) {
	snap, _, err := s.load()
	if err != nil {
		return nil, dashboard.Ranking{}, err
	}
	scores := performance.Score(snap.Contacts, snap.Transactions)
	return scores, dashboard.RankContacts(scores, s.dashboard.Options().RankingLimit), nil
}

// Pending lists the obligations with long-pending interest.
func (s *LedgerService) Pending(now time.Time) ([]dashboard.PendingItem, error) {
	snap, conv, err := s.load()
	if err != nil {
		return nil, err
	}
	opts := s.dashboard.Options()
	return dashboard.PendingInterest(snap.Transactions, snap.Contacts, conv, now,
		opts.PendingMinMonths, opts.PendingLimit), nil
}

// Dashboard builds the full overview.
func (s *LedgerService) Dashboard(now time.Time) (dashboard.Dashboard, error) {
	snap, conv, err := s.load()
	if err != nil {
		return dashboard.Dashboard{}, err
	}
	return s.dashboard.Build(snap.Transactions, snap.Contacts, conv, now), nil
}

// EligibleContacts lists the contacts that may take part in a new
// obligation.
func (s *LedgerService) EligibleContacts() ([]models.Contact, error) {
	snap, _, err := s.load()
	if err != nil {
		return nil, err
	}
	return models.EligibleContacts(snap.Contacts), nil
}

// Activities returns the activities of one obligation, newest first.
func (s *LedgerService) Activities(id string) ([]models.Activity, error) {
	snap, _, err := s.load()
	if err != nil {
		return nil, err
	}
	o, err := snap.Obligation(id)
	if err != nil {
		return nil, err
	}
	return o.ActivitiesByRecency(), nil
}
