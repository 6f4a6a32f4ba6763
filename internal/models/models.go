package models

import (
	"time"
)

// Payment methods accepted at the till. "debt" defers payment and must
// carry a customer name so the debt is attributable.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentDebt     = "debt"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentDebt:
		return true
	}
	return false
}

// User - The person operating the till. Access is gated by the
// subscription window, not just the password.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Username           string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash       string    `json:"-"`    // Never return this in JSON
	Role               string    `json:"role"` // 'admin', 'cashier'
	SubscriptionStart  time.Time `json:"subscription_start"`
	SubscriptionMonths int       `json:"subscription_months"`
	SubscriptionEnd    time.Time `json:"subscription_end"`
	CreatedAt          time.Time `json:"created_at"`
}

// SubscriptionActive reports whether the user may still use the system.
func (u *User) SubscriptionActive(now time.Time) bool {
	return now.Before(u.SubscriptionEnd)
}

// Product - The Inventory. Price is in the smallest currency unit (UZS
// has no subunit). Category is a denormalized name, not a foreign key.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Code      string    `gorm:"uniqueIndex;size:50" json:"code"`
	Barcode   string    `gorm:"size:64;index" json:"barcode"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url"`
	Essential bool      `json:"essential"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category - A product department. Products reference it by name only,
// so renames have to cascade and deletes are blocked while in use.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100" json:"name"`
}

// Sale - The Transaction Header. Items, Subtotal and Total are frozen at
// commit time; the debts view may only touch Customer, Note and settle
// the payment method to cash.
type Sale struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ReceiptNo       int        `json:"receipt_no"`
	UserID          uint       `json:"user_id"` // Who processed it
	Customer        string     `json:"customer"`
	Subtotal        int64      `json:"subtotal"`
	DiscountPercent int        `json:"discount"`
	Total           int64      `json:"total"`
	PaymentMethod   string     `gorm:"index;size:20" json:"payment_method"`
	Note            string     `json:"note"`
	Status          string     `json:"status"` // 'completed'
	SaleTime        time.Time  `gorm:"index" json:"sale_time"`
	Items           []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - One cart line frozen into the sale. Name and price are
// snapshots, not live joins, so deleting a product never corrupts history.
type SaleItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SaleID      uint   `gorm:"index" json:"sale_id"`
	ProductID   uint   `json:"product_id"`
	Name        string `json:"name"`
	PriceAtSale int64  `json:"price_at_sale"`
	Quantity    int    `json:"quantity"`
}

// Return - A reversal of part or all of a prior sale. Committing one
// restores stock for every returned line.
type Return struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	SaleID     uint         `gorm:"index" json:"sale_id"`
	Reason     string       `json:"reason"`
	Total      int64        `json:"total"`
	ReturnTime time.Time    `json:"return_time"`
	Items      []ReturnItem `gorm:"foreignKey:ReturnID" json:"items"`
}

// ReturnItem - One returned line, snapshotted like a SaleItem.
type ReturnItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ReturnID  uint   `gorm:"index" json:"return_id"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// DailyReport - Per-calendar-day sales aggregate, upserted inside the
// same transaction as the sale it accounts for.
type DailyReport struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Date        string `gorm:"uniqueIndex;size:10" json:"date"` // "2006-01-02"
	SaleCount   int    `json:"sale_count"`
	TotalItems  int    `json:"total_items"`
	TotalAmount int64  `json:"total_amount"`
}
