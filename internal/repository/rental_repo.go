package repository

import (
	"waterpark-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RentalFilter narrows a rental listing. Date bounds are compared as plain
// strings against the stored local-time column: Start is inclusive,
// EndBefore is exclusive.
type RentalFilter struct {
	Start     string
	EndBefore string
	Status    string
	Search    string
	CashierID *uuid.UUID
}

// DayRevenue is one aggregate row for the sales chart
type DayRevenue struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type RentalRepository interface {
	Create(t *model.RentalTransaction) error
	FindByID(id uuid.UUID) (*model.RentalTransaction, error)
	FindChild(parentID uuid.UUID) (*model.RentalTransaction, error)
	FindChildren(parentIDs []uuid.UUID) ([]model.RentalTransaction, error)
	Find(f RentalFilter) ([]model.RentalTransaction, error)
	MarkReturned(parent, child *model.RentalTransaction) error
	TodayStats(datePrefix string) (int64, float64, error)
	ActiveAdvanceTotal() (float64, error)
	RevenueByDay(start, endBefore string) ([]DayRevenue, error)
	DeleteAll() (int64, error)
}

type rentalRepo struct {
	db *gorm.DB
}

func NewRentalRepo(db *gorm.DB) RentalRepository {
	return &rentalRepo{db}
}

func (r *rentalRepo) Create(t *model.RentalTransaction) error {
	return r.db.Create(t).Error
}

func (r *rentalRepo) FindByID(id uuid.UUID) (*model.RentalTransaction, error) {
	var t model.RentalTransaction
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindChild returns the credit transaction linked to a parent, or nil when
// none exists.
func (r *rentalRepo) FindChild(parentID uuid.UUID) (*model.RentalTransaction, error) {
	var t model.RentalTransaction
	err := r.db.First(&t, "parent_transaction_id = ?", parentID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *rentalRepo) FindChildren(parentIDs []uuid.UUID) ([]model.RentalTransaction, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var children []model.RentalTransaction
	err := r.db.Where("parent_transaction_id IN ?", parentIDs).Find(&children).Error
	return children, err
}

func (r *rentalRepo) Find(f RentalFilter) ([]model.RentalTransaction, error) {
	q := r.db.Model(&model.RentalTransaction{})

	if f.Start != "" {
		q = q.Where("created_at_local >= ?", f.Start)
	}
	if f.EndBefore != "" {
		q = q.Where("created_at_local < ?", f.EndBefore)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CashierID != nil {
		q = q.Where("cashier_id = ?", *f.CashierID)
	}
	if f.Search != "" {
		// Substring on phone and name, suffix on the id
		q = q.Where(
			"customer_phone LIKE ? OR customer_name LIKE ? OR CAST(id AS TEXT) LIKE ?",
			"%"+f.Search+"%", "%"+f.Search+"%", "%"+f.Search,
		)
	}

	var transactions []model.RentalTransaction
	err := q.Order("created_at_local DESC").Find(&transactions).Error
	return transactions, err
}

// MarkReturned persists the settled parent and, when present, its child in
// one database transaction so a crash can never leave the pair half
// returned.
func (r *rentalRepo) MarkReturned(parent, child *model.RentalTransaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(parent).Error; err != nil {
			return err
		}
		if child != nil {
			return tx.Save(child).Error
		}
		return nil
	})
}

func (r *rentalRepo) TodayStats(datePrefix string) (int64, float64, error) {
	var count int64
	var revenue float64

	q := r.db.Model(&model.RentalTransaction{}).Where("created_at_local LIKE ?", datePrefix+"%")
	if err := q.Count(&count).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.Model(&model.RentalTransaction{}).
		Where("created_at_local LIKE ?", datePrefix+"%").
		Select("COALESCE(SUM(total_due), 0)").
		Scan(&revenue).Error
	return count, revenue, err
}

// ActiveAdvanceTotal sums the deposits still held at the counter
func (r *rentalRepo) ActiveAdvanceTotal() (float64, error) {
	var total float64
	err := r.db.Model(&model.RentalTransaction{}).
		Where("status = ? AND parent_transaction_id IS NULL", model.RentalActive).
		Select("COALESCE(SUM(advance), 0)").
		Scan(&total).Error
	return total, err
}

func (r *rentalRepo) RevenueByDay(start, endBefore string) ([]DayRevenue, error) {
	var results []DayRevenue

	rows, err := r.db.Model(&model.RentalTransaction{}).
		Select(`
			SUBSTRING(created_at_local, 1, 10) as date,
			COUNT(*) as count,
			COALESCE(SUM(total_due), 0) as revenue
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

func (r *rentalRepo) DeleteAll() (int64, error) {
	res := r.db.Unscoped().Where("1 = 1").Delete(&model.RentalTransaction{})
	return res.RowsAffected, res.Error
}
