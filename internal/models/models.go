package models

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in-progress"
	OrderStatusCompleted  = "completed"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

const (
	ProjectStatusActive   = "active"
	ProjectStatusPaused   = "paused"
	ProjectStatusComplete = "complete"
)

type Order struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	Client    string    `gorm:"not null"                    json:"client"`
	Project   string    `gorm:"not null"                    json:"project"`
	Total     float64   `gorm:"not null"                    json:"total"`
	Status    string    `gorm:"not null;default:'pending'"  json:"status"`
	DueDate   string    `gorm:"not null"                    json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Payment struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	OrderID   uint      `gorm:"index;not null"              json:"orderId"`
	Reference string    `gorm:"size:36;uniqueIndex"         json:"reference"`
	Amount    float64   `gorm:"not null"                    json:"amount"`
	Status    string    `gorm:"not null;default:'pending'"  json:"status"`
	Method    string    `json:"method,omitempty"`
	PaidAt    string    `json:"paidAt,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Expense struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	Vendor    string    `gorm:"not null"                    json:"vendor"`
	Category  string    `gorm:"not null"                    json:"category"`
	Amount    float64   `gorm:"not null"                    json:"amount"`
	Date      string    `gorm:"not null"                    json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Lead struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	Name      string    `gorm:"not null"                    json:"name"`
	Email     string    `gorm:"not null"                    json:"email"`
	Status    string    `gorm:"not null;default:'new'"      json:"status"`
	Company   string    `json:"company,omitempty"`
	Budget    string    `json:"budget,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Project struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	Name      string    `gorm:"not null"                    json:"name"`
	Slug      string    `gorm:"index;not null"              json:"slug"`
	Category  string    `json:"category,omitempty"`
	Status    string    `gorm:"not null;default:'active'"   json:"status"`
	Owner     string    `json:"owner,omitempty"`
	Budget    float64   `json:"budget,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Setting is a single-row table, lazily created on first read.
type Setting struct {
	ID                uint            `gorm:"primaryKey"       json:"id"`
	MinDepositPercent float64         `gorm:"not null"         json:"minDepositPercent"`
	FeatureFlags      map[string]bool `gorm:"serializer:json"  json:"featureFlags"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
