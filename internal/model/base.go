package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and standard audit trails
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy string `json:"created_by,omitempty"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// LocalTimeLayout is the civil-time format every counter timestamp is stored
// in. Values sort lexicographically, so date filters can compare them as
// plain strings.
const LocalTimeLayout = "2006-01-02T15:04:05"

// NowLocal returns the operator's wall clock formatted for storage.
func NowLocal() string {
	return time.Now().Format(LocalTimeLayout)
}
