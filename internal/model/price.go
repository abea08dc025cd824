package model

// Item keys used by the rental and ticket counters. Price rows and rental
// return breakdowns are keyed by these.
const (
	ItemMaleCostume   = "male_costume"
	ItemFemaleCostume = "female_costume"
	ItemKidsCostume   = "kids_costume"
	ItemTube          = "tube"
	ItemLocker        = "locker"
	ItemTicketMen     = "ticket_men"
	ItemTicketWomen   = "ticket_women"
	ItemTicketChild   = "ticket_child"
)

// Price is one configurable line-item price
type Price struct {
	BaseModel
	ItemKey  string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"item_key" validate:"required"`
	ItemName string  `gorm:"type:varchar(100);not null" json:"item_name" validate:"required"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0"`
	IsActive bool    `gorm:"default:true" json:"is_active"`
}

// DefaultPrices are seeded on first boot and edited by admins afterwards.
var DefaultPrices = []Price{
	{ItemKey: ItemMaleCostume, ItemName: "Male Costume", Price: 60, IsActive: true},
	{ItemKey: ItemFemaleCostume, ItemName: "Female Costume", Price: 80, IsActive: true},
	{ItemKey: ItemKidsCostume, ItemName: "Kids Costume", Price: 50, IsActive: true},
	{ItemKey: ItemTube, ItemName: "Swimming Tube", Price: 50, IsActive: true},
	{ItemKey: ItemLocker, ItemName: "Locker", Price: 30, IsActive: true},
	{ItemKey: ItemTicketMen, ItemName: "Entry Ticket (Men)", Price: 300, IsActive: true},
	{ItemKey: ItemTicketWomen, ItemName: "Entry Ticket (Women)", Price: 250, IsActive: true},
	{ItemKey: ItemTicketChild, ItemName: "Entry Ticket (Child)", Price: 150, IsActive: true},
}
