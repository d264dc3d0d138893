package model

import "time"

// OrderHistoryStatus values mark how a submission ended.
const (
	OrderHistoryStatusExecuted  = "executed"
	OrderHistoryStatusCancelled = "cancelled"
)

// OrderHistoryEntry is the local record written after every terminal execution
// response. Rows are only ever inserted.
type OrderHistoryEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  string    `gorm:"size:100;index" json:"request_id"`
	Symbol     string    `gorm:"size:100;not null" json:"symbol"`
	Side       string    `gorm:"size:10;not null" json:"side"`
	Qty        int64     `gorm:"not null" json:"qty"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	LimitPrice *float64  `json:"limit_price,omitempty"`
	Status     string    `gorm:"size:20;not null" json:"status"` // see OrderHistoryStatus* constants
	DryRun     bool      `gorm:"not null;default:false" json:"dry_run"`
	Timestamp  time.Time `gorm:"index;not null" json:"timestamp"`
}

// TableName pins history rows to order_history.
func (OrderHistoryEntry) TableName() string {
	return "order_history"
}
