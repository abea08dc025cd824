package repository

import (
	"waterpark-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketFilter narrows a ticket-sale listing, same string-compared date
// semantics as RentalFilter.
type TicketFilter struct {
	Start     string
	EndBefore string
	Search    string
	CashierID *uuid.UUID
}

type TicketRepository interface {
	CreateWithTags(t *model.TicketTransaction, datePrefix string, count int) error
	FindByID(id uuid.UUID) (*model.TicketTransaction, error)
	Find(f TicketFilter) ([]model.TicketTransaction, error)
	TodayStats(datePrefix string) (int64, float64, error)
	RevenueByDay(start, endBefore string) ([]DayRevenue, error)
	DeleteAll() (int64, error)
}

// Advisory lock key for physical tag allocation.
const tagAllocLockID = 810041

type ticketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) TicketRepository {
	return &ticketRepo{db}
}

// CreateWithTags assigns the day's next tag range and inserts the sale in
// one transaction. The advisory lock serializes concurrent allocations so
// two counters cannot take overlapping ranges.
func (r *ticketRepo) CreateWithTags(t *model.TicketTransaction, datePrefix string, count int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if count > 0 {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", tagAllocLockID).Error; err != nil {
				return err
			}
			var last int
			if err := tx.Model(&model.TicketTransaction{}).
				Where("created_at_local LIKE ?", datePrefix+"%").
				Select("COALESCE(MAX(tag_number_end), 0)").
				Scan(&last).Error; err != nil {
				return err
			}
			t.TagNumberStart = last + 1
			t.TagNumberEnd = last + count
		}
		return tx.Create(t).Error
	})
}

func (r *ticketRepo) FindByID(id uuid.UUID) (*model.TicketTransaction, error) {
	var t model.TicketTransaction
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) Find(f TicketFilter) ([]model.TicketTransaction, error) {
	q := r.db.Model(&model.TicketTransaction{})

	if f.Start != "" {
		q = q.Where("created_at_local >= ?", f.Start)
	}
	if f.EndBefore != "" {
		q = q.Where("created_at_local < ?", f.EndBefore)
	}
	if f.CashierID != nil {
		q = q.Where("cashier_id = ?", *f.CashierID)
	}
	if f.Search != "" {
		q = q.Where(
			"customer_phone LIKE ? OR customer_name LIKE ? OR CAST(id AS TEXT) LIKE ?",
			"%"+f.Search+"%", "%"+f.Search+"%", "%"+f.Search,
		)
	}

	var transactions []model.TicketTransaction
	err := q.Order("created_at_local DESC").Find(&transactions).Error
	return transactions, err
}

func (r *ticketRepo) TodayStats(datePrefix string) (int64, float64, error) {
	var count int64
	var revenue float64

	q := r.db.Model(&model.TicketTransaction{}).Where("created_at_local LIKE ?", datePrefix+"%")
	if err := q.Count(&count).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.Model(&model.TicketTransaction{}).
		Where("created_at_local LIKE ?", datePrefix+"%").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return count, revenue, err
}

func (r *ticketRepo) RevenueByDay(start, endBefore string) ([]DayRevenue, error) {
	var results []DayRevenue

	rows, err := r.db.Model(&model.TicketTransaction{}).
		Select(`
			SUBSTRING(created_at_local, 1, 10) as date,
			COUNT(*) as count,
			COALESCE(SUM(total_amount), 0) as revenue
		`).
		Where("created_at_local >= ? AND created_at_local < ?", start, endBefore).
		Group("SUBSTRING(created_at_local, 1, 10)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DayRevenue
		if err := rows.Scan(&data.Date, &data.Count, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *ticketRepo) DeleteAll() (int64, error) {
	res := r.db.Unscoped().Where("1 = 1").Delete(&model.TicketTransaction{})
	return res.RowsAffected, res.Error
}
