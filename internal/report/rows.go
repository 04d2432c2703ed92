package report

import (
	"strconv"

	"fjacquet/lendtrack/internal/dashboard"
	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/ledger"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/performance"
	"fjacquet/lendtrack/internal/timeseries"
)

// ObligationTotals is the totals view of one obligation.
type ObligationTotals struct {
	ID          string           `json:"id"`
	Direction   models.Direction `json:"type"`
	ContactName string           `json:"contact_name"`
	Currency    string           `json:"currency"`
	Rate        string           `json:"rate"`
	ledger.Breakdown
	ledger.Pending
}

// BucketRow is one CSV line of the chart data.
type BucketRow struct {
	Period             string `csv:"Period"`
	Label              string `csv:"Label"`
	LendingPrincipal   string `csv:"LendingPrincipal"`
	BorrowingPrincipal string `csv:"BorrowingPrincipal"`
	LendingPayments    string `csv:"LendingPayments"`
	BorrowingPayments  string `csv:"BorrowingPayments"`
	CumulativeNet      string `csv:"CumulativeNet"`
}

// BucketRows flattens buckets for tabular output.
func BucketRows(buckets []timeseries.Bucket, g timeseries.Granularity) []BucketRow {
	rows := make([]BucketRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, BucketRow{
			Period:             b.Period.Format("2006-01-02T15:04:05Z07:00"),
			Label:              timeseries.Label(g, b.Period),
			LendingPrincipal:   b.LendingPrincipal.StringFixed(2),
			BorrowingPrincipal: b.BorrowingPrincipal.StringFixed(2),
			LendingPayments:    b.LendingPayments.StringFixed(2),
			BorrowingPayments:  b.BorrowingPayments.StringFixed(2),
			CumulativeNet:      b.CumulativeNet.StringFixed(2),
		})
	}
	return rows
}

// TotalsRow is one CSV line of the totals report.
type TotalsRow struct {
	ID              string `csv:"ID"`
	Type            string `csv:"Type"`
	Contact         string `csv:"Contact"`
	Currency        string `csv:"Currency"`
	Rate            string `csv:"Rate"`
	Principal       string `csv:"Principal"`
	Interest        string `csv:"Interest"`
	Total           string `csv:"Total"`
	Paid            string `csv:"Paid"`
	Remaining       string `csv:"Remaining"`
	PendingMonths   int    `csv:"PendingMonths"`
	PendingInterest string `csv:"PendingInterest"`
}

// TotalsRows flattens obligation totals for tabular output.
func TotalsRows(totals []ObligationTotals) []TotalsRow {
	rows := make([]TotalsRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, TotalsRow{
			ID:              t.ID,
			Type:            string(t.Direction),
			Contact:         t.ContactName,
			Currency:        t.Currency,
			Rate:            t.Rate,
			Principal:       t.Principal.StringFixed(2),
			Interest:        t.Breakdown.Interest.StringFixed(2),
			Total:           t.Total.StringFixed(2),
			Paid:            t.Paid.StringFixed(2),
			Remaining:       t.Remaining.StringFixed(2),
			PendingMonths:   t.Months,
			PendingInterest: t.Pending.Interest.StringFixed(2),
		})
	}
	return rows
}

// PendingRow is one CSV line of the pending-interest list.
type PendingRow struct {
	ID              string `csv:"ID"`
	Contact         string `csv:"Contact"`
	StartDate       string `csv:"StartDate"`
	PendingMonths   int    `csv:"PendingMonths"`
	PendingInterest string `csv:"PendingInterest"`
}

// PendingRows flattens the pending-interest list, amounts shown with
// their currency.
func PendingRows(items []dashboard.PendingItem) []PendingRow {
	rows := make([]PendingRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, PendingRow{
			ID:              it.Obligation.ID,
			Contact:         it.ContactName,
			StartDate:       dateutils.ToISODate(it.Obligation.StartDate),
			PendingMonths:   it.PendingMonths,
			PendingInterest: models.NewMoney(it.PendingInterest, it.Obligation.Currency).String(),
		})
	}
	return rows
}

// PerformanceRow is one CSV line of the contact performance report.
type PerformanceRow struct {
	ContactID         string `csv:"ContactID"`
	Name              string `csv:"Name"`
	LendingCount      int    `csv:"LendingTransactions"`
	Payments          int    `csv:"Payments"`
	OnTimePayments    int    `csv:"OnTimePayments"`
	AverageDelayDays  string `csv:"AverageDelayDays"`
	PunctualityStatus string `csv:"Status"`
}

// PerformanceRows flattens scorer output.
func PerformanceRows(scores []performance.Performance) []PerformanceRow {
	rows := make([]PerformanceRow, 0, len(scores))
	for _, p := range scores {
		status := "On time"
		if !p.IsTimely() {
			status = p.AverageDelayDays.Round(0).String() + " days delay"
		}
		rows = append(rows, PerformanceRow{
			ContactID:         p.Contact.ID,
			Name:              p.Contact.Name,
			LendingCount:      p.TotalLendingObligations,
			Payments:          p.Payments,
			OnTimePayments:    p.OnTimePayments,
			AverageDelayDays:  p.AverageDelayDays.StringFixed(2),
			PunctualityStatus: status,
		})
	}
	return rows
}

// SummaryRow is one metric of the dashboard summary.
type SummaryRow struct {
	Metric string `csv:"Metric"`
	Value  string `csv:"Value"`
}

// SummaryRows lists the headline metrics in display currency.
func SummaryRows(s dashboard.Summary, currency string) []SummaryRow {
	return []SummaryRow{
		{Metric: "Total Lent", Value: models.NewMoney(s.TotalLent, currency).Display()},
		{Metric: "Total Borrowed", Value: models.NewMoney(s.TotalBorrowed, currency).Display()},
		{Metric: "Net Balance", Value: models.NewMoney(s.NetBalance, currency).Display()},
		{Metric: "Active Transactions", Value: strconv.Itoa(s.OpenCount)},
	}
}

// ContactRow is one CSV line of the contact list.
type ContactRow struct {
	ID      string `csv:"ID"`
	Name    string `csv:"Name"`
	Phone   string `csv:"Phone"`
	Address string `csv:"Address"`
}

// ContactRows flattens contacts for tabular output.
func ContactRows(contacts []models.Contact) []ContactRow {
	rows := make([]ContactRow, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, ContactRow{ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address})
	}
	return rows
}

// ActivityRow is one CSV line of an activity feed.
type ActivityRow struct {
	Date          string `csv:"Date"`
	TransactionID string `csv:"TransactionID"`
	Contact       string `csv:"Contact"`
	Type          string `csv:"Type"`
	Amount        string `csv:"Amount"`
	Months        string `csv:"Months"`
	Content       string `csv:"Content"`
}

// ActivityRows flattens an activity feed, recent or filtered.
func ActivityRows(recent []dashboard.RecentActivity) []ActivityRow {
	rows := make([]ActivityRow, 0, len(recent))
	for _, r := range recent {
		row := ActivityRow{
			Date:          dateutils.ToISODate(r.Activity.CreatedAt),
			TransactionID: r.TransactionID,
			Contact:       r.ContactName,
			Type:          string(r.Activity.Type),
			Content:       r.Activity.Content,
		}
		if r.Activity.Amount != nil {
			row.Amount = models.NewMoney(*r.Activity.Amount, r.Currency).String()
		}
		if r.Activity.InterestMonths != nil {
			row.Months = strconv.Itoa(*r.Activity.InterestMonths)
		}
		rows = append(rows, row)
	}
	return rows
}
