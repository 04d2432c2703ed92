package timeseries

import (
	"testing"
	"time"

	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func payment(id string, at time.Time, amount string) models.Activity {
	return models.NewPayment(id, at, dec(amount), nil, false)
}

func fixture() []models.Obligation {
	return []models.Obligation{
		{
			ID: "L1", Direction: models.DirectionLending, Principal: dec("1000"),
			StartDate: day(2024, time.January, 10), Status: models.StatusActive,
			Activities: []models.Activity{
				payment("L1-p1", day(2024, time.February, 5), "200"),
				payment("L1-p2", day(2024, time.April, 10), "100"),
				models.NewComment("L1-c1", day(2024, time.February, 6), "thanks"),
			},
		},
		{
			ID: "B1", Direction: models.DirectionBorrowing, Principal: dec("500"),
			StartDate: day(2024, time.February, 20), Status: models.StatusActive,
			Activities: []models.Activity{
				payment("B1-p1", day(2024, time.March, 1), "50"),
			},
		},
		{
			// Started before the frame: its principal is out, its payment is in
			ID: "L2", Direction: models.DirectionLending, Principal: dec("300"),
			StartDate: day(2023, time.December, 15), Status: models.StatusActive,
			Activities: []models.Activity{
				payment("L2-p1", day(2024, time.January, 20), "100"),
				{ID: "L2-p2", Type: models.ActivityPayment, CreatedAt: day(2024, time.January, 21)},
			},
		},
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func assertCumulativeInvariant(t *testing.T, buckets []Bucket) {
	t.Helper()
	prev := decimal.Zero
	for i, b := range buckets {
		assert.True(t, b.CumulativeNet.Sub(prev).Equal(b.Net()), "bucket %d (%s) breaks the running net", i, b.Period)
		prev = b.CumulativeNet
	}
}

func TestAggregate_Monthly(t *testing.T) {
	frame := Frame{
		Start:       day(2024, time.January, 1),
		End:         dateutils.EndOfDay(day(2024, time.March, 31)),
		Granularity: Month,
	}

	buckets := Aggregate(fixture(), frame)
	require.Len(t, buckets, 3)

	jan, feb, mar := buckets[0], buckets[1], buckets[2]
	assert.Equal(t, day(2024, time.January, 1), jan.Period)
	assert.Equal(t, day(2024, time.February, 1), feb.Period)
	assert.Equal(t, day(2024, time.March, 1), mar.Period)

	assertDecimal(t, "1000", jan.LendingPrincipal)
	assertDecimal(t, "100", jan.LendingPayments)
	assertDecimal(t, "900", jan.CumulativeNet)

	assertDecimal(t, "500", feb.BorrowingPrincipal)
	assertDecimal(t, "200", feb.LendingPayments)
	assertDecimal(t, "200", feb.CumulativeNet)

	assertDecimal(t, "50", mar.BorrowingPayments)
	assertDecimal(t, "0", mar.BorrowingPrincipal)
	assertDecimal(t, "250", mar.CumulativeNet)

	assertCumulativeInvariant(t, buckets)
}

func TestAggregate_EmptyInputEmitsZeroGrid(t *testing.T) {
	frame := Frame{Start: day(2024, time.January, 1), End: day(2024, time.January, 7), Granularity: Day}

	buckets := Aggregate(nil, frame)

	require.Len(t, buckets, 7)
	for i, b := range buckets {
		assert.Equal(t, day(2024, time.January, 1+i), b.Period)
		assert.True(t, b.CumulativeNet.IsZero())
		assert.True(t, b.Net().IsZero())
	}
	assertCumulativeInvariant(t, buckets)
}

func TestAggregate_DayKeysEventsByExactInstant(t *testing.T) {
	afternoon := time.Date(2024, time.January, 2, 15, 0, 0, 0, time.UTC)
	obligations := []models.Obligation{{
		ID: "L1", Direction: models.DirectionLending, Principal: dec("100"), StartDate: afternoon,
	}}
	frame := Frame{Start: day(2024, time.January, 1), End: dateutils.EndOfDay(day(2024, time.January, 3)), Granularity: Day}

	buckets := Aggregate(obligations, frame)

	require.Len(t, buckets, 4)
	assert.Equal(t, day(2024, time.January, 2), buckets[1].Period)
	assert.True(t, buckets[1].LendingPrincipal.IsZero())
	assert.Equal(t, afternoon, buckets[2].Period)
	assertDecimal(t, "100", buckets[2].LendingPrincipal)
	assertDecimal(t, "100", buckets[3].CumulativeNet)
}

func TestAggregate_WeeklyRespectsWeekStart(t *testing.T) {
	obligations := []models.Obligation{{
		ID: "B1", Direction: models.DirectionBorrowing, Principal: dec("80"), StartDate: day(2024, time.May, 16),
	}}
	// Wednesday to Friday two weeks later
	frame := Frame{Start: day(2024, time.May, 15), End: day(2024, time.May, 31), Granularity: Week}

	sunday := Aggregate(obligations, frame)
	require.Len(t, sunday, 3)
	assert.Equal(t, day(2024, time.May, 12), sunday[0].Period)
	assertDecimal(t, "80", sunday[0].BorrowingPrincipal)
	assertDecimal(t, "-80", sunday[2].CumulativeNet)

	monday := NewAggregator(WithWeekStart(time.Monday)).Aggregate(obligations, frame)
	require.Len(t, monday, 3)
	assert.Equal(t, day(2024, time.May, 13), monday[0].Period)
	assert.Equal(t, day(2024, time.May, 27), monday[2].Period)
}

func TestAggregate_Yearly(t *testing.T) {
	frame := Frame{Start: day(2022, time.June, 1), End: day(2024, time.February, 1), Granularity: Year}

	buckets := Aggregate(fixture(), frame)

	require.Len(t, buckets, 3)
	assert.Equal(t, day(2022, time.January, 1), buckets[0].Period)
	// L2 started inside the frame this time
	assertDecimal(t, "300", buckets[1].LendingPrincipal)
	assertDecimal(t, "1000", buckets[2].LendingPrincipal)
	assertDecimal(t, "100", buckets[2].LendingPayments)
	assertDecimal(t, "1200", buckets[2].CumulativeNet)
	assertCumulativeInvariant(t, buckets)
}

func TestAggregate_FrameBoundariesAreInclusive(t *testing.T) {
	obligations := []models.Obligation{{
		ID: "L1", Direction: models.DirectionLending, Principal: dec("10"), StartDate: day(2024, time.January, 1),
		Activities: []models.Activity{payment("p", day(2024, time.January, 31), "4")},
	}}
	frame := Frame{Start: day(2024, time.January, 1), End: day(2024, time.January, 31), Granularity: Month}

	buckets := Aggregate(obligations, frame)

	require.Len(t, buckets, 1)
	assertDecimal(t, "6", buckets[0].CumulativeNet)
}

func TestAggregate_InvertedFrameIsEmpty(t *testing.T) {
	frame := Frame{Start: day(2024, time.March, 1), End: day(2024, time.January, 1), Granularity: Month}

	buckets := Aggregate(fixture(), frame)

	assert.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestAggregate_UnknownGranularityFallsBackToDay(t *testing.T) {
	frame := Frame{Start: day(2024, time.January, 1), End: day(2024, time.January, 3), Granularity: "fortnight"}

	assert.Len(t, Aggregate(nil, frame), 3)
}

func TestAggregate_CustomStrategy(t *testing.T) {
	quarter := Granularity("quarter")
	startOfQuarter := func(t time.Time) time.Time {
		m := dateutils.StartOfMonth(t)
		return m.AddDate(0, -(int(m.Month()-1) % 3), 0)
	}
	agg := NewAggregator(WithStrategy(quarter, Strategy{
		Floor: startOfQuarter,
		Next:  func(t time.Time) time.Time { return t.AddDate(0, 3, 0) },
		Key:   startOfQuarter,
	}))
	frame := Frame{Start: day(2024, time.February, 1), End: day(2024, time.August, 1), Granularity: quarter}

	buckets := agg.Aggregate(fixture(), frame)

	require.Len(t, buckets, 3)
	assert.Equal(t, day(2024, time.January, 1), buckets[0].Period)
	assert.Equal(t, day(2024, time.July, 1), buckets[2].Period)
	// L1 started before the frame, so only its payments count
	assertDecimal(t, "-650", buckets[0].CumulativeNet)
	assertDecimal(t, "-750", buckets[1].CumulativeNet)
	assertDecimal(t, "-750", buckets[2].CumulativeNet)
	assertCumulativeInvariant(t, buckets)
}

func TestAggregate_IdempotentAndNonMutating(t *testing.T) {
	input := fixture()
	frame := Frame{Start: day(2023, time.December, 1), End: day(2024, time.May, 1), Granularity: Week}

	first := Aggregate(input, frame)
	second := Aggregate(input, frame)

	assert.Equal(t, first, second)
	assert.Equal(t, fixture(), input)
	assertCumulativeInvariant(t, first)
}

func TestParseGranularity(t *testing.T) {
	for _, s := range []string{"day", "Daily", "week", "weekly", "month", "MONTHLY", "year", "yearly"} {
		_, err := ParseGranularity(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseGranularity("hour")
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	p := day(2024, time.March, 5)
	assert.Equal(t, "Mar 5", Label(Day, p))
	assert.Equal(t, "Mar 5", Label(Week, p))
	assert.Equal(t, "Mar 2024", Label(Month, p))
	assert.Equal(t, "2024", Label(Year, p))
}
