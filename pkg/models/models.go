package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

type NotificationStatus string

const (
	NotificationDelivered NotificationStatus = "delivered"
	NotificationFailed    NotificationStatus = "failed"
)

type Company struct {
	Name      string    `gorm:"primaryKey" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Equipment     []Equipment    `gorm:"foreignKey:Company;references:Name" json:"-"`
	Usage         []UsageRecord  `gorm:"foreignKey:Company;references:Name" json:"-"`
	Notifications []Notification `gorm:"foreignKey:Company;references:Name" json:"-"`
}

// Equipment is one equipment definition row. Per-part columns are delimited
// text aligned by position: consumables and life limits by comma, part
// descriptions by pipe.
type Equipment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Company          string    `gorm:"uniqueIndex:idx_equipment_company_code;not null" json:"company"`
	Code             string    `gorm:"uniqueIndex:idx_equipment_company_code;not null" json:"code"`
	Description      string    `json:"description"`
	Consumables      string    `json:"consumables"`
	LifeLimits       string    `json:"life_limits"`
	PartDescriptions string    `json:"part_descriptions"`
	CreatedAt        time.Time `json:"created_at"`
}

func (e Equipment) Row() wear.DefinitionRow {
	return wear.DefinitionRow{
		Company:          e.Company,
		Code:             e.Code,
		Description:      e.Description,
		Consumables:      e.Consumables,
		LifeLimits:       e.LifeLimits,
		PartDescriptions: e.PartDescriptions,
	}
}

// UsageRecord is an append-only usage log entry. ID is the insertion
// sequence and defines event order.
type UsageRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EventID        string    `gorm:"uniqueIndex;size:36" json:"event_id"`
	Company        string    `gorm:"index:idx_usage_company_code;not null" json:"company"`
	Code           string    `gorm:"index:idx_usage_company_code;not null" json:"code"`
	WorkDate       time.Time `json:"work_date"`
	OrderNumber    string    `json:"order_number"`
	HoursOfUse     string    `json:"hours_of_use"`
	ReplacedParts  string    `json:"replaced_parts"`
	Notes          string    `json:"notes"`
	TechnicalNotes string    `json:"technical_notes"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *UsageRecord) BeforeCreate(tx *gorm.DB) error {
	if u.EventID == "" {
		u.EventID = uuid.NewString()
	}
	return nil
}

func (u UsageRecord) Row() wear.UsageRow {
	return wear.UsageRow{
		Company:       u.Company,
		Code:          u.Code,
		HoursOfUse:    u.HoursOfUse,
		ReplacedParts: u.ReplacedParts,
		Notes:         u.Notes,
	}
}

// Notification logs one delivery attempt. It is never read back for
// deduplication.
type Notification struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	NotificationID string             `gorm:"uniqueIndex;size:36" json:"notification_id"`
	Company        string             `gorm:"index" json:"company"`
	Code           string             `json:"code"`
	Part           string             `json:"part"`
	Tier           string             `gorm:"type:varchar(20);check:tier IN ('good','warning','critical','imminent_failure')" json:"tier"`
	HoursRemaining float64            `json:"hours_remaining"`
	Description    string             `json:"description"`
	Status         NotificationStatus `gorm:"type:varchar(20);check:status IN ('delivered','failed')" json:"status"`
	Error          string             `json:"error"`
	Timestamp      time.Time          `json:"timestamp"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == "" {
		n.NotificationID = uuid.NewString()
	}
	return nil
}

// NewNotification records the outcome of a delivery.
func NewNotification(d wear.Delivery) Notification {
	n := Notification{
		Company:        d.Alert.Company,
		Code:           d.Alert.Code,
		Part:           d.Alert.Part,
		Tier:           d.Alert.Tier.String(),
		HoursRemaining: d.Alert.HoursRemaining,
		Description:    d.Alert.Description,
		Status:         NotificationDelivered,
		Timestamp:      d.Alert.RaisedAt,
	}
	if d.Err != nil {
		n.Status = NotificationFailed
		n.Error = d.Err.Error()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	return n
}

// Shift is a worked window on one date. Start and End are "15:04" clock
// times; an End before Start crosses midnight.
type Shift struct {
	Date  time.Time `json:"date"`
	Start string    `json:"start"`
	End   string    `json:"end"`
	Notes string    `json:"notes"`
}
