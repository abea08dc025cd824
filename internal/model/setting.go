package model

// Well-known setting keys
const (
	SettingUPIID       = "upi_id"
	SettingUPIName     = "upi_name"
	SettingParkName    = "park_name"
	SettingReceiptNote = "receipt_note"
)

// Setting is one key/value configuration entry. Read publicly, written by
// admins only.
type Setting struct {
	BaseModel
	Key   string `gorm:"type:varchar(100);uniqueIndex;not null" json:"key" validate:"required"`
	Value string `gorm:"type:text" json:"value"`
}

// DefaultSettings are created on first boot if missing.
var DefaultSettings = map[string]string{
	SettingParkName: "Blue Lagoon Water Park",
	SettingUPIName:  "Blue Lagoon",
}
