package analytics

import (
	"context"

	"venue-booking/internal/models"

	"github.com/uptrace/bun"
)

// Service computes the admin dashboard aggregates.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// DashboardSummary is the top line of the admin dashboard.
type DashboardSummary struct {
	TotalBookings      int     `json:"total_bookings"`
	TotalRegistrations int     `json:"total_registrations"`
	TotalRevenue       float64 `json:"total_revenue"`
	OnlinePayments     int     `json:"online_payments"`
}

// SportMetrics aggregates bookings for one sport.
type SportMetrics struct {
	Sport    string  `bun:"sport" json:"sport"`
	Bookings int     `bun:"bookings" json:"bookings"`
	Players  int     `bun:"players" json:"players"`
	Revenue  float64 `bun:"revenue" json:"revenue"`
}

// DailyMetrics aggregates bookings for one calendar day.
type DailyMetrics struct {
	Date     string  `bun:"date" json:"date"`
	Bookings int     `bun:"bookings" json:"bookings"`
	Revenue  float64 `bun:"revenue" json:"revenue"`
}

// SlotUtilization reports how loaded each slot band is for a sport.
type SlotUtilization struct {
	TimeSlot string `bun:"time_slot" json:"time_slot"`
	Bookings int    `bun:"bookings" json:"bookings"`
	Players  int    `bun:"players" json:"players"`
}

// GetDashboardSummary computes the dashboard top line.
func (s *Service) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	bookings, err := s.db.NewSelect().
		Model((*models.Booking)(nil)).
		Count(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalBookings = bookings

	registrations, err := s.db.NewSelect().
		Model((*models.Registration)(nil)).
		Count(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalRegistrations = registrations

	err = s.db.NewSelect().
		ColumnExpr("COALESCE(SUM(total_amount), 0)").
		Table("bookings").
		Scan(ctx, &summary.TotalRevenue)
	if err != nil {
		return nil, err
	}

	online, err := s.db.NewSelect().
		Model((*models.Booking)(nil)).
		Where("payment_mode = ?", "online").
		Count(ctx)
	if err != nil {
		return nil, err
	}
	summary.OnlinePayments = online

	return summary, nil
}

// GetBookingsBySport aggregates bookings, players and revenue per sport.
func (s *Service) GetBookingsBySport(ctx context.Context) ([]SportMetrics, error) {
	var metrics []SportMetrics
	err := s.db.NewSelect().
		ColumnExpr("sport").
		ColumnExpr("COUNT(*) AS bookings").
		ColumnExpr("COALESCE(SUM(players), 0) AS players").
		ColumnExpr("COALESCE(SUM(total_amount), 0) AS revenue").
		Table("bookings").
		GroupExpr("sport").
		OrderExpr("revenue DESC").
		Scan(ctx, &metrics)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = []SportMetrics{}
	}
	return metrics, nil
}

// GetDailyBookings aggregates bookings per calendar day, newest first.
func (s *Service) GetDailyBookings(ctx context.Context, days int) ([]DailyMetrics, error) {
	if days <= 0 {
		days = 30
	}
	var metrics []DailyMetrics
	err := s.db.NewSelect().
		ColumnExpr("date").
		ColumnExpr("COUNT(*) AS bookings").
		ColumnExpr("COALESCE(SUM(total_amount), 0) AS revenue").
		Table("bookings").
		GroupExpr("date").
		OrderExpr("date DESC").
		Limit(days).
		Scan(ctx, &metrics)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = []DailyMetrics{}
	}
	return metrics, nil
}

// GetSlotUtilization aggregates bookings per slot band for one sport.
func (s *Service) GetSlotUtilization(ctx context.Context, sport string) ([]SlotUtilization, error) {
	var metrics []SlotUtilization
	err := s.db.NewSelect().
		ColumnExpr("time_slot").
		ColumnExpr("COUNT(*) AS bookings").
		ColumnExpr("COALESCE(SUM(players), 0) AS players").
		Table("bookings").
		Where("sport = ?", sport).
		GroupExpr("time_slot").
		OrderExpr("time_slot ASC").
		Scan(ctx, &metrics)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = []SlotUtilization{}
	}
	return metrics, nil
}
