package reports

import (
	"time"

	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/models"
)

type DashboardStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalDonations   float64 `json:"totalDonations"`
	MonthlyDonations float64 `json:"monthlyDonations"`
	UpcomingEvents   int64   `json:"upcomingEvents"`
	RecentContacts   int64   `json:"recentContacts"`
	UnreadContacts   int64   `json:"unreadContacts"`
	UserGrowth       float64 `json:"userGrowth"`
	DonationGrowth   float64 `json:"donationGrowth"`
}

// DashboardStatsReport composes the eight aggregate reads behind the admin
// dashboard. Growth percentages share the zero-handling rule in GrowthPercent.
func DashboardStatsReport(db *gorm.DB, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	err := db.Model(&models.Donation{}).
		Where("status = ?", models.DonationCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalDonations).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Donation{}).
		Where("status = ? AND created_at >= ? AND created_at <= ?", models.DonationCompleted, MonthStart(now), now).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.MonthlyDonations).Error
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.Event{}).Where("date > ?", now).Count(&stats.UpcomingEvents).Error; err != nil {
		return nil, err
	}

	thirtyDaysAgo := now.AddDate(0, 0, -30)
	err = db.Model(&models.Contact{}).
		Where("created_at >= ?", thirtyDaysAgo).
		Count(&stats.RecentContacts).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Contact{}).
		Where("status = ?", models.ContactUnread).
		Count(&stats.UnreadContacts).Error
	if err != nil {
		return nil, err
	}

	var currentUsers, previousUsers int64
	err = db.Model(&models.User{}).
		Where("created_at >= ?", thirtyDaysAgo).
		Count(&currentUsers).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", now.AddDate(0, 0, -60), thirtyDaysAgo).
		Count(&previousUsers).Error
	if err != nil {
		return nil, err
	}
	stats.UserGrowth = GrowthPercent(float64(currentUsers), float64(previousUsers))

	donationGrowth, err := DonationGrowth(db, now)
	if err != nil {
		return nil, err
	}
	stats.DonationGrowth = donationGrowth

	return stats, nil
}
