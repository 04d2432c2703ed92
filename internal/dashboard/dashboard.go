// Package dashboard assembles the overview figures shown on the landing
// screen from the engine's results.
package dashboard

import (
	"sort"
	"time"

	"fjacquet/lendtrack/internal/ledger"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/performance"

	"github.com/shopspring/decimal"
)

// Options bounds the lists shown on the dashboard.
type Options struct {
	PendingMinMonths int
	PendingLimit     int
	RankingLimit     int
	RecentLimit      int
}

// DefaultOptions returns the limits used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		PendingMinMonths: 10,
		PendingLimit:     5,
		RankingLimit:     10,
		RecentLimit:      5,
	}
}

// Summary holds the headline metrics.
type Summary struct {
	TotalLent     decimal.Decimal `json:"total_lent"`
	TotalBorrowed decimal.Decimal `json:"total_borrowed"`
	OpenCount     int             `json:"active_transactions"`
	NetBalance    decimal.Decimal `json:"net_balance"`
}

// Summarize sums principal by direction and counts obligations that are
// not completed.
func Summarize(obligations []models.Obligation) Summary {
	s := Summary{TotalLent: decimal.Zero, TotalBorrowed: decimal.Zero}
	for _, o := range obligations {
		if o.IsLending() {
			s.TotalLent = s.TotalLent.Add(o.Principal)
		} else {
			s.TotalBorrowed = s.TotalBorrowed.Add(o.Principal)
		}
		if o.IsOpen() {
			s.OpenCount++
		}
	}
	s.NetBalance = s.TotalLent.Sub(s.TotalBorrowed)
	return s
}

// PendingItem is an open obligation with interest left to collect.
type PendingItem struct {
	Obligation      models.Obligation `json:"transaction"`
	ContactName     string            `json:"contact_name"`
	PendingMonths   int               `json:"pending_months"`
	PendingInterest decimal.Decimal   `json:"pending_interest"`
}

// PendingInterest lists open obligations with at least minMonths of unpaid
// interest, longest pending first, truncated to limit entries.
func PendingInterest(obligations []models.Obligation, contacts []models.Contact,
	conv models.Convention, now time.Time, minMonths, limit int) []PendingItem {
	items := make([]PendingItem, 0)
	for _, o := range obligations {
		if !o.IsOpen() {
			continue
		}
		p := ledger.PendingFor(o, conv, now)
		if p.Months < minMonths {
			continue
		}
		items = append(items, PendingItem{
			Obligation:      o,
			ContactName:     models.ContactName(contacts, o.ContactID),
			PendingMonths:   p.Months,
			PendingInterest: p.Interest,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PendingMonths > items[j].PendingMonths
	})
	return truncate(items, limit)
}

// Ranking splits scored contacts into the most and least punctual payers.
type Ranking struct {
	Timely  []performance.Performance `json:"timely"`
	Delayed []performance.Performance `json:"delayed"`
}

// RankContacts keeps contacts with at least one lending obligation, orders
// them by average delay and takes limit entries from each end. Ties keep
// their input order among the timely and the reverse among the delayed.
func RankContacts(scores []performance.Performance, limit int) Ranking {
	ranked := make([]performance.Performance, 0, len(scores))
	for _, s := range scores {
		if s.TotalLendingObligations > 0 {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageDelayDays.LessThan(ranked[j].AverageDelayDays)
	})

	reversed := make([]performance.Performance, len(ranked))
	for i, s := range ranked {
		reversed[len(ranked)-1-i] = s
	}

	return Ranking{
		Timely:  truncate(ranked, limit),
		Delayed: truncate(reversed, limit),
	}
}

// RecentActivity is an activity with the obligation it belongs to.
type RecentActivity struct {
	Activity      models.Activity `json:"activity"`
	TransactionID string          `json:"transaction_id"`
	ContactName   string          `json:"contact_name"`
	Currency      string          `json:"currency"`
}

// RecentActivities returns the newest activities across all obligations.
func RecentActivities(obligations []models.Obligation, contacts []models.Contact, limit int) []RecentActivity {
	return truncate(Activities(obligations, contacts, models.ActivityFilter{}), limit)
}

// Activities returns every activity matching f across all obligations,
// newest first.
func Activities(obligations []models.Obligation, contacts []models.Contact, f models.ActivityFilter) []RecentActivity {
	feed := make([]RecentActivity, 0)
	for _, o := range obligations {
		for _, a := range o.Activities {
			if !f.Match(o, a) {
				continue
			}
			feed = append(feed, RecentActivity{
				Activity:      a,
				TransactionID: o.ID,
				ContactName:   models.ContactName(contacts, o.ContactID),
				Currency:      o.Currency,
			})
		}
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Activity.CreatedAt.After(feed[j].Activity.CreatedAt)
	})
	return feed
}

// Dashboard is the full overview.
type Dashboard struct {
	Summary Summary          `json:"summary"`
	Pending []PendingItem    `json:"pending_interest"`
	Ranking Ranking          `json:"ranking"`
	Recent  []RecentActivity `json:"recent_activities"`
}

// Builder computes dashboards with fixed limits.
type Builder struct {
	opts   Options
	logger logging.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options, logger logging.Logger) *Builder {
	return &Builder{opts: opts, logger: logger}
}

// Options returns the limits the builder applies.
func (b *Builder) Options() Options {
	return b.opts
}

// Build computes every dashboard section for the given snapshot.
func (b *Builder) Build(obligations []models.Obligation, contacts []models.Contact,
	conv models.Convention, now time.Time) Dashboard {
	d := Dashboard{
		Summary: Summarize(obligations),
		Pending: PendingInterest(obligations, contacts, conv, now, b.opts.PendingMinMonths, b.opts.PendingLimit),
		Ranking: RankContacts(performance.Score(contacts, obligations), b.opts.RankingLimit),
		Recent:  RecentActivities(obligations, contacts, b.opts.RecentLimit),
	}

	b.logger.WithFields(
		logging.F(logging.FieldCount, len(obligations)),
		logging.F(logging.FieldConvention, conv.String()),
	).Debug("Built dashboard")
	return d
}

func truncate[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
