package service

import (
	"time"

	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"
)

// DashboardStats is the admin overview for the current park day
type DashboardStats struct {
	RentalCount   int64   `json:"rental_count"`
	RentalRevenue float64 `json:"rental_revenue"`
	TicketCount   int64   `json:"ticket_count"`
	TicketRevenue float64 `json:"ticket_revenue"`
	AdvancesHeld  float64 `json:"advances_held"`
}

// SalesReport is the per-day revenue series for both counters
type SalesReport struct {
	Rentals []repository.DayRevenue `json:"rentals"`
	Tickets []repository.DayRevenue `json:"tickets"`
}

type DashboardService interface {
	GetStats(actor model.AuthContext) (*DashboardStats, error)
	GetSales(startDate, endDate string, actor model.AuthContext) (*SalesReport, error)
}

type dashboardService struct {
	rentalRepo repository.RentalRepository
	ticketRepo repository.TicketRepository
}

func NewDashboardService(rentalRepo repository.RentalRepository, ticketRepo repository.TicketRepository) DashboardService {
	return &dashboardService{rentalRepo: rentalRepo, ticketRepo: ticketRepo}
}

func (s *dashboardService) GetStats(actor model.AuthContext) (*DashboardStats, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	today := model.NowLocal()[:10]
	stats := &DashboardStats{}

	var err error
	if stats.RentalCount, stats.RentalRevenue, err = s.rentalRepo.TodayStats(today); err != nil {
		return nil, err
	}
	if stats.TicketCount, stats.TicketRevenue, err = s.ticketRepo.TodayStats(today); err != nil {
		return nil, err
	}
	if stats.AdvancesHeld, err = s.rentalRepo.ActiveAdvanceTotal(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *dashboardService) GetSales(startDate, endDate string, actor model.AuthContext) (*SalesReport, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if startDate == "" || endDate == "" {
		return nil, invalid("start and end dates are required")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, invalid("invalid end date, expected YYYY-MM-DD")
	}
	endBefore := end.AddDate(0, 0, 1).Format("2006-01-02")

	report := &SalesReport{}
	if report.Rentals, err = s.rentalRepo.RevenueByDay(startDate, endBefore); err != nil {
		return nil, err
	}
	if report.Tickets, err = s.ticketRepo.RevenueByDay(startDate, endBefore); err != nil {
		return nil, err
	}
	return report, nil
}
