package reports

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/models"
)

type Period string

const (
	PeriodAllTime   Period = "all_time"
	PeriodThisMonth Period = "this_month"
	PeriodLastMonth Period = "last_month"
	PeriodThisYear  Period = "this_year"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodAllTime, PeriodThisMonth, PeriodLastMonth, PeriodThisYear:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

type MonthBucket struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type MethodCount struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
}

type DonationSummary struct {
	TotalDonations   float64          `json:"totalDonations"`
	MonthlyDonations float64          `json:"monthlyDonations"`
	AverageDonation  float64          `json:"averageDonation"`
	GrowthPercentage float64          `json:"growthPercentage"`
	TotalDonors      int64            `json:"totalDonors"`
	StatusBreakdown  map[string]int64 `json:"statusBreakdown"`
	MonthlyTrend     []MonthBucket    `json:"monthlyTrend"`
	PaymentMethods   []MethodCount    `json:"paymentMethods"`
}

// MonthStart returns the calendar-month boundary containing t, in t's
// location. All period bucketing is done in server-local time.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// GrowthPercent computes a rounded percentage change with the zero rules
// the dashboard and summary share: 0 when both periods are zero, 100 when
// only the previous period is zero.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return math.Round((current - previous) / previous * 100)
}

// PeriodRange resolves a period selector to [start, end) bounds. The
// second return is false for all_time, which has no bounds.
func PeriodRange(p Period, now time.Time) (start, end time.Time, bounded bool) {
	switch p {
	case PeriodThisMonth:
		return MonthStart(now), MonthStart(now).AddDate(0, 1, 0), true
	case PeriodLastMonth:
		return MonthStart(now).AddDate(0, -1, 0), MonthStart(now), true
	case PeriodThisYear:
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return yearStart, yearStart.AddDate(1, 0, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

type bucketBounds struct {
	Start        time.Time
	End          time.Time
	EndInclusive bool
}

// trailingMonthBounds returns the six trailing calendar-month buckets,
// oldest first. Every bucket ends at the next month boundary except the
// last, whose upper bound is now itself.
func trailingMonthBounds(now time.Time) []bucketBounds {
	bounds := make([]bucketBounds, 0, 6)
	for i := 5; i >= 0; i-- {
		start := MonthStart(now).AddDate(0, -i, 0)
		if i == 0 {
			bounds = append(bounds, bucketBounds{Start: start, End: now, EndInclusive: true})
			continue
		}
		bounds = append(bounds, bucketBounds{Start: start, End: start.AddDate(0, 1, 0)})
	}
	return bounds
}

// DonationSummaryReport aggregates completed-donation totals, growth and
// breakdowns for the given period. A non-nil userID scopes the whole
// report to one donor's giving. The six-month trend always trails now
// regardless of the selected period.
func DonationSummaryReport(db *gorm.DB, period Period, now time.Time, userID *uint) (*DonationSummary, error) {
	summary := &DonationSummary{
		StatusBreakdown: map[string]int64{},
	}

	base := func() *gorm.DB {
		q := db.Model(&models.Donation{})
		if userID != nil {
			q = q.Where("user_id = ?", *userID)
		}
		return q
	}
	scoped := func() *gorm.DB {
		q := base()
		if start, end, bounded := PeriodRange(period, now); bounded {
			q = q.Where("created_at >= ? AND created_at < ?", start, end)
		}
		return q
	}

	var total float64
	var completedCount int64
	err := scoped().Where("status = ?", models.DonationCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	if err != nil {
		return nil, err
	}
	err = scoped().Where("status = ?", models.DonationCompleted).Count(&completedCount).Error
	if err != nil {
		return nil, err
	}
	summary.TotalDonations = total
	if completedCount > 0 {
		summary.AverageDonation = total / float64(completedCount)
	}

	err = scoped().Distinct("user_id").
		Where("status = ?", models.DonationCompleted).
		Count(&summary.TotalDonors).Error
	if err != nil {
		return nil, err
	}

	err = base().
		Where("status = ? AND created_at >= ? AND created_at <= ?", models.DonationCompleted, MonthStart(now), now).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.MonthlyDonations).Error
	if err != nil {
		return nil, err
	}

	growth, err := donationGrowth(base, now)
	if err != nil {
		return nil, err
	}
	summary.GrowthPercentage = growth

	type statusRow struct {
		Status string
		Count  int64
	}
	var statusRows []statusRow
	err = scoped().Select("status, COUNT(*) AS count").Group("status").Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		summary.StatusBreakdown[row.Status] = row.Count
	}

	trend, err := monthlyTrend(base, now)
	if err != nil {
		return nil, err
	}
	summary.MonthlyTrend = trend

	type methodRow struct {
		PaymentMethod models.PaymentMethod
		Count         int64
	}
	var methodRows []methodRow
	err = scoped().Select("payment_method, COUNT(*) AS count").Group("payment_method").Scan(&methodRows).Error
	if err != nil {
		return nil, err
	}
	summary.PaymentMethods = make([]MethodCount, 0, len(methodRows))
	for _, row := range methodRows {
		summary.PaymentMethods = append(summary.PaymentMethods, MethodCount{
			Method: row.PaymentMethod.Label(),
			Count:  row.Count,
		})
	}

	return summary, nil
}

// DonationGrowth is the month-over-month percentage change of completed
// donation sums: current calendar month so far against the full previous
// calendar month.
func DonationGrowth(db *gorm.DB, now time.Time) (float64, error) {
	return donationGrowth(func() *gorm.DB {
		return db.Model(&models.Donation{})
	}, now)
}

func donationGrowth(base func() *gorm.DB, now time.Time) (float64, error) {
	currentStart := MonthStart(now)
	previousStart := currentStart.AddDate(0, -1, 0)

	var current, previous float64
	err := base().
		Where("status = ? AND created_at >= ? AND created_at <= ?", models.DonationCompleted, currentStart, now).
		Select("COALESCE(SUM(amount), 0)").Scan(&current).Error
	if err != nil {
		return 0, err
	}
	err = base().
		Where("status = ? AND created_at >= ? AND created_at < ?", models.DonationCompleted, previousStart, currentStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&previous).Error
	if err != nil {
		return 0, err
	}

	return GrowthPercent(current, previous), nil
}

func monthlyTrend(base func() *gorm.DB, now time.Time) ([]MonthBucket, error) {
	buckets := make([]MonthBucket, 0, 6)
	for _, b := range trailingMonthBounds(now) {
		upper := "created_at < ?"
		if b.EndInclusive {
			upper = "created_at <= ?"
		}

		var amount float64
		err := base().
			Where("status = ? AND created_at >= ? AND "+upper, models.DonationCompleted, b.Start, b.End).
			Select("COALESCE(SUM(amount), 0)").Scan(&amount).Error
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, MonthBucket{
			Month:  b.Start.Format("Jan 2006"),
			Amount: amount,
		})
	}
	return buckets, nil
}
