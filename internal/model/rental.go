package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalActive          RentalStatus = "active"
	RentalAdvanceReturned RentalStatus = "advance_returned"
)

// RentalItems holds the per-item quantities handed out at the clothes
// counter. Embedded into RentalTransaction as flat columns.
type RentalItems struct {
	MaleCostume   int `gorm:"default:0" json:"male_costume" validate:"gte=0"`
	FemaleCostume int `gorm:"default:0" json:"female_costume" validate:"gte=0"`
	KidsCostume   int `gorm:"default:0" json:"kids_costume" validate:"gte=0"`
	Tube          int `gorm:"default:0" json:"tube" validate:"gte=0"`
	Locker        int `gorm:"default:0" json:"locker" validate:"gte=0"`
}

// Quantities returns the non-zero items keyed the same way Price rows and
// return breakdowns are.
func (i RentalItems) Quantities() map[string]int {
	out := map[string]int{}
	for key, qty := range map[string]int{
		ItemMaleCostume:   i.MaleCostume,
		ItemFemaleCostume: i.FemaleCostume,
		ItemKidsCostume:   i.KidsCostume,
		ItemTube:          i.Tube,
		ItemLocker:        i.Locker,
	} {
		if qty > 0 {
			out[key] = qty
		}
	}
	return out
}

// Total returns the total number of items on the slip
func (i RentalItems) Total() int {
	return i.MaleCostume + i.FemaleCostume + i.KidsCostume + i.Tube + i.Locker
}

// ReturnItem is the itemized outcome for one item type when an advance is
// settled.
type ReturnItem struct {
	ReturnedGood    int     `json:"returned_good"`
	ReturnedDamaged int     `json:"returned_damaged"`
	Lost            int     `json:"lost"`
	Deduction       float64 `json:"deduction"`
}

// ReturnBreakdown maps item key -> return outcome.
type ReturnBreakdown map[string]ReturnItem

// TotalDeduction sums the per-item deductions
func (b ReturnBreakdown) TotalDeduction() float64 {
	var total float64
	for _, item := range b {
		total += item.Deduction
	}
	return total
}

// Encode serializes the breakdown for the return_details column
func (b ReturnBreakdown) Encode() string {
	raw, _ := json.Marshal(b)
	return string(raw)
}

// RentalTransaction is one clothes-counter sale. A transaction carrying a
// ParentTransactionID is a "credit" follow-up whose cost is consumed from
// the parent's still-held advance: it is stored with Advance 0 and
// TotalDue equal to its own Subtotal, and it is settled together with the
// parent when the advance is returned.
type RentalTransaction struct {
	BaseModel
	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name" validate:"required"`
	CustomerPhone string `gorm:"type:varchar(20);not null;index" json:"customer_phone" validate:"required"`
	RentalItems   `gorm:"embedded"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal" validate:"gte=0"`
	Advance  float64 `gorm:"type:decimal(10,2);not null" json:"advance" validate:"gte=0"`
	TotalDue float64 `gorm:"type:decimal(10,2);not null" json:"total_due" validate:"gte=0"`
	IsVIP    bool    `gorm:"column:is_vip;default:false" json:"is_vip"`

	Status RentalStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	CashierID   uuid.UUID `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName string    `gorm:"type:varchar(255)" json:"cashier_name"`

	ParentTransactionID *uuid.UUID `gorm:"type:uuid;index" json:"parent_transaction_id,omitempty"`

	// Operator wall-clock timestamp, lexicographically sortable
	CreatedAtLocal string `gorm:"type:varchar(19);not null;index" json:"created_at_local"`

	// Return audit, filled once Status becomes advance_returned
	ReturnedAtLocal string     `gorm:"type:varchar(19)" json:"returned_at_local,omitempty"`
	ReturnedByID    *uuid.UUID `gorm:"type:uuid" json:"returned_by_id,omitempty"`
	ReturnedByName  string     `gorm:"type:varchar(255)" json:"returned_by_name,omitempty"`
	TotalDeduction  float64    `gorm:"type:decimal(10,2);default:0" json:"total_deduction"`
	AmountReturned  float64    `gorm:"type:decimal(10,2);default:0" json:"amount_returned"`
	ReturnDetails   string     `gorm:"type:text" json:"return_details,omitempty"`

	// Child credit transaction, resolved at read time
	LinkedTransaction *RentalTransaction `gorm:"-" json:"linked_transaction,omitempty"`
}

func (RentalTransaction) TableName() string {
	return "rental_transactions"
}

// IsChild reports whether this transaction consumes a parent's advance
func (t *RentalTransaction) IsChild() bool {
	return t.ParentTransactionID != nil
}
