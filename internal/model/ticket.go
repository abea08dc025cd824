package model

import "github.com/google/uuid"

// Payment methods accepted at the counters
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
)

// TicketTransaction is one entry-ticket sale. It settles in full at
// creation: no advance, no linking.
type TicketTransaction struct {
	BaseModel
	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name" validate:"required"`
	CustomerPhone string `gorm:"type:varchar(20);not null;index" json:"customer_phone" validate:"required"`

	MenCount   int `gorm:"default:0" json:"men_count" validate:"gte=0"`
	WomenCount int `gorm:"default:0" json:"women_count" validate:"gte=0"`
	ChildCount int `gorm:"default:0" json:"child_count" validate:"gte=0"`

	// Sequential physical-token range handed to the group
	TagNumberStart int `gorm:"default:0" json:"tag_number_start"`
	TagNumberEnd   int `gorm:"default:0" json:"tag_number_end"`

	Subtotal      float64 `gorm:"type:decimal(10,2);not null" json:"subtotal" validate:"gte=0"`
	TotalAmount   float64 `gorm:"type:decimal(10,2);not null" json:"total_amount" validate:"gte=0"`
	PaymentMethod string  `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required,oneof=cash upi"`
	IsVIP         bool    `gorm:"column:is_vip;default:false" json:"is_vip"`

	CashierID   uuid.UUID `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName string    `gorm:"type:varchar(255)" json:"cashier_name"`

	CreatedAtLocal string `gorm:"type:varchar(19);not null;index" json:"created_at_local"`
}

func (TicketTransaction) TableName() string {
	return "ticket_transactions"
}

// TotalTickets returns the number of people on the sale
func (t *TicketTransaction) TotalTickets() int {
	return t.MenCount + t.WomenCount + t.ChildCount
}
